package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	// ConditionNew and ConditionUsed are the only accepted book conditions.
	ConditionNew  = "New"
	ConditionUsed = "Used"

	// DefaultGenre is the genre a book reads as before a prediction exists.
	// The stored genre column stays empty until either the seller supplies a
	// genre or the ML gateway persists one; an empty stored genre is what the
	// gateway treats as a cache miss.
	DefaultGenre = "General"

	// DefaultAuthor is rendered when a listing was created without authors.
	DefaultAuthor = "Unknown"
)

// Book represents a listing on the marketplace.
type Book struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	// Index is a sequential listing number, assigned as max existing + 1 at
	// creation. Column renamed because "index" is a reserved word.
	Index     int        `json:"index" gorm:"column:book_index;uniqueIndex"`
	Title     string     `json:"title" validate:"required,min=1,max=200"`
	Author    StringList `json:"author" gorm:"type:text"`
	Summary   string     `json:"summary" gorm:"type:text" validate:"required"`
	Price     float64    `json:"price" validate:"gte=0"`
	Condition string     `json:"condition" gorm:"type:varchar(10)" validate:"omitempty,oneof=New Used"`
	Genre     StringList `json:"genre" gorm:"type:text"`
	Tags      StringList `json:"tags" gorm:"type:text"`
	Image     string     `json:"image,omitempty"`
	SellerID  string     `json:"seller" gorm:"type:varchar(36);index"`
	gorm.Model
}

// MarshalJSON renders the schema defaults for fields whose storage uses an
// empty list as the "unset" marker.
func (b Book) MarshalJSON() ([]byte, error) {
	type bookAlias Book
	out := bookAlias(b)
	if len(out.Author) == 0 {
		out.Author = StringList{DefaultAuthor}
	}
	if len(out.Genre) == 0 {
		out.Genre = StringList{DefaultGenre}
	}
	if out.Tags == nil {
		out.Tags = StringList{}
	}
	return json.Marshal(out)
}

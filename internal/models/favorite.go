package models

import "time"

// UserFavorite links a user to a book they marked as favorite. The composite
// unique index is what prevents duplicate favorites; the application layer
// just upserts.
type UserFavorite struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_user_book"`
	BookID    string    `json:"book_id" gorm:"type:varchar(36);uniqueIndex:idx_user_book"`
	CreatedAt time.Time `json:"created_at"`
}

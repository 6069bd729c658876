package models

import "time"

// OrderItem is a denormalized snapshot of a book at purchase time. It does
// not track live book state.
type OrderItem struct {
	ID       uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID  string  `json:"-" gorm:"type:varchar(36);index"`
	BookID   string  `json:"book_id" gorm:"type:varchar(36)"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Order is a purchase record. Immutable after creation.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string      `json:"user_id" gorm:"type:varchar(36);index"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Total     float64     `json:"total"`
	OrderedAt time.Time   `json:"ordered_at"`
}

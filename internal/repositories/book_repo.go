package repositories

import (
	"bookbazaar/internal/models"
)

// BookFilter narrows down a book listing query. Zero values mean "no filter".
type BookFilter struct {
	Genre     string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	Page      int
	Limit     int
}

// BookRepository defines the interface for book data access.
type BookRepository interface {
	Find(filter BookFilter) (books []models.Book, total int64, err error)
	GetByID(id string) (*models.Book, error)
	GetByIDs(ids []string) ([]models.Book, error)
	GetBySeller(sellerID string) ([]models.Book, error)
	GetByGenre(genre string) ([]models.Book, error)
	NextIndex() (int, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id string) error
	TitlePrefixes(prefix string, limit int) ([]string, error)
	AuthorPrefixes(prefix string, limit int) ([]string, error)
}

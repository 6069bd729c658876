package repositories

import (
	"bookbazaar/internal/models"
)

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	// Add records a favorite; adding the same pair twice is a no-op thanks to
	// the unique (user, book) constraint.
	Add(fav *models.UserFavorite) error
	Remove(userID, bookID string) error
	GetBooks(userID string) ([]models.Book, error)
}

package repositories

import (
	"fmt"

	"bookbazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Add upserts a favorite. Duplicate pairs hit the unique index and are
// silently ignored.
func (r *GORMFavoriteRepository) Add(fav *models.UserFavorite) error {
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(fav).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite pair. Removing a pair that does not exist is not
// an error.
func (r *GORMFavoriteRepository) Remove(userID, bookID string) error {
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.UserFavorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// GetBooks returns the books a user has favorited.
func (r *GORMFavoriteRepository) GetBooks(userID string) ([]models.Book, error) {
	var books []models.Book
	err := r.db.Model(&models.Book{}).
		Joins("JOIN user_favorites ON user_favorites.book_id = books.id").
		Where("user_favorites.user_id = ?", userID).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites for user %s: %w", userID, err)
	}
	return books, nil
}

package services

import (
	"fmt"

	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"
)

// FavoriteService handles business logic related to user favorites.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	bookRepo     repositories.BookRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, bookRepo repositories.BookRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		bookRepo:     bookRepo,
	}
}

// AddFavorite marks a book as a favorite for the user. Adding an existing
// favorite is a no-op.
func (s *FavoriteService) AddFavorite(userID, bookID string) error {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		return fmt.Errorf("cannot favorite: %w", err)
	}
	return s.favoriteRepo.Add(&models.UserFavorite{
		UserID: userID,
		BookID: bookID,
	})
}

// RemoveFavorite clears a favorite for the user.
func (s *FavoriteService) RemoveFavorite(userID, bookID string) error {
	return s.favoriteRepo.Remove(userID, bookID)
}

// GetFavoriteBooks returns the books the user has favorited.
func (s *FavoriteService) GetFavoriteBooks(userID string) ([]models.Book, error) {
	return s.favoriteRepo.GetBooks(userID)
}

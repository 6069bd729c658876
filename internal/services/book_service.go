package services

import (
	"fmt"

	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"
)

// BookService handles business logic related to book listings.
type BookService struct {
	repo repositories.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(repo repositories.BookRepository) *BookService {
	return &BookService{
		repo: repo,
	}
}

// ListBooks retrieves books matching the filter and reports whether more
// pages exist beyond the requested one.
func (s *BookService) ListBooks(filter repositories.BookFilter) ([]models.Book, bool, error) {
	books, total, err := s.repo.Find(filter)
	if err != nil {
		return nil, false, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}
	hasMore := int64((page-1)*limit+len(books)) < total
	return books, hasMore, nil
}

// GetBookByID retrieves a single book by its ID.
func (s *BookService) GetBookByID(id string) (*models.Book, error) {
	return s.repo.GetByID(id)
}

// GetBooksByIDs retrieves the books matching the given IDs.
func (s *BookService) GetBooksByIDs(ids []string) ([]models.Book, error) {
	return s.repo.GetByIDs(ids)
}

// GetBooksBySeller retrieves a seller's own listings.
func (s *BookService) GetBooksBySeller(sellerID string) ([]models.Book, error) {
	return s.repo.GetBySeller(sellerID)
}

// GetBooksByGenre retrieves books carrying the given genre.
func (s *BookService) GetBooksByGenre(genre string) ([]models.Book, error) {
	return s.repo.GetByGenre(genre)
}

// CreateBook creates a new listing, applying schema defaults and assigning
// the next sequential listing number.
func (s *BookService) CreateBook(book *models.Book) error {
	if len(book.Author) == 0 {
		book.Author = models.StringList{models.DefaultAuthor}
	}
	if book.Condition == "" {
		book.Condition = models.ConditionUsed
	}
	if book.Tags == nil {
		book.Tags = models.StringList{}
	}
	// Genre stays exactly as provided: an empty genre marks the listing as
	// "never predicted" for the ML gateway's cache.

	next, err := s.repo.NextIndex()
	if err != nil {
		return fmt.Errorf("failed to assign book index: %w", err)
	}
	book.Index = next

	return s.repo.Create(book)
}

// UpdateBook updates an existing listing.
func (s *BookService) UpdateBook(book *models.Book) error {
	return s.repo.Update(book)
}

// DeleteBook deletes a listing by its ID.
func (s *BookService) DeleteBook(id string) error {
	return s.repo.Delete(id)
}

// Autocomplete returns up to 10 unique title and author suggestions starting
// with the given prefix, titles first.
func (s *BookService) Autocomplete(prefix string) ([]string, error) {
	titles, err := s.repo.TitlePrefixes(prefix, 5)
	if err != nil {
		return nil, err
	}
	authors, err := s.repo.AuthorPrefixes(prefix, 5)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	suggestions := make([]string, 0, len(titles)+len(authors))
	for _, s := range append(titles, authors...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		suggestions = append(suggestions, s)
	}
	if len(suggestions) > 10 {
		suggestions = suggestions[:10]
	}
	return suggestions, nil
}

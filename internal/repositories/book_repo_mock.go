package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"bookbazaar/internal/models"

	"github.com/google/uuid"
)

// MockBookRepository is an in-memory implementation of BookRepository.
type MockBookRepository struct {
	books map[string]models.Book
	mu    sync.RWMutex
}

// NewMockBookRepository creates a new instance of MockBookRepository.
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{
		books: make(map[string]models.Book),
	}
}

func (r *MockBookRepository) all() []models.Book {
	list := make([]models.Book, 0, len(r.books))
	for _, b := range r.books {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	return list
}

// Find returns books matching the filter with the total match count.
func (r *MockBookRepository) Find(filter BookFilter) ([]models.Book, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Book
	for _, b := range r.all() {
		if filter.Genre != "" && !b.Genre.Contains(filter.Genre) {
			continue
		}
		if filter.Condition != "" && b.Condition != filter.Condition {
			continue
		}
		if filter.MinPrice != nil && b.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && b.Price > *filter.MaxPrice {
			continue
		}
		if filter.Search != "" && !matchesSearch(b, filter.Search) {
			continue
		}
		matched = append(matched, b)
	}

	total := int64(len(matched))
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Book{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matchesSearch(b models.Book, search string) bool {
	s := strings.ToLower(search)
	if strings.Contains(strings.ToLower(b.Title), s) || strings.Contains(strings.ToLower(b.Summary), s) {
		return true
	}
	for _, a := range b.Author {
		if strings.Contains(strings.ToLower(a), s) {
			return true
		}
	}
	return false
}

// GetByID returns a book by its ID.
func (r *MockBookRepository) GetByID(id string) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, fmt.Errorf("book with ID %s not found", id)
	}
	return &book, nil
}

// GetByIDs returns the books matching any of the given IDs.
func (r *MockBookRepository) GetByIDs(ids []string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var books []models.Book
	for _, id := range ids {
		if book, ok := r.books[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

// GetBySeller returns all books listed by a seller.
func (r *MockBookRepository) GetBySeller(sellerID string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var books []models.Book
	for _, b := range r.all() {
		if b.SellerID == sellerID {
			books = append(books, b)
		}
	}
	return books, nil
}

// GetByGenre returns all books whose genre list contains the given genre.
func (r *MockBookRepository) GetByGenre(genre string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var books []models.Book
	for _, b := range r.all() {
		if b.Genre.Contains(genre) {
			books = append(books, b)
		}
	}
	return books, nil
}

// NextIndex returns the next sequential listing number.
func (r *MockBookRepository) NextIndex() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for _, b := range r.books {
		if b.Index > max {
			max = b.Index
		}
	}
	return max + 1, nil
}

// Create adds a new book.
func (r *MockBookRepository) Create(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	r.books[book.ID] = *book
	return nil
}

// Update modifies an existing book.
func (r *MockBookRepository) Update(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.books[book.ID]
	if !ok {
		return fmt.Errorf("book with ID %s not found for update", book.ID)
	}
	r.books[book.ID] = *book
	return nil
}

// Delete removes a book by its ID.
func (r *MockBookRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.books[id]
	if !ok {
		return fmt.Errorf("book with ID %s not found for deletion", id)
	}
	delete(r.books, id)
	return nil
}

// TitlePrefixes returns up to limit titles starting with prefix.
func (r *MockBookRepository) TitlePrefixes(prefix string, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lower := strings.ToLower(prefix)
	seen := make(map[string]bool)
	var titles []string
	for _, b := range r.all() {
		if !strings.HasPrefix(strings.ToLower(b.Title), lower) || seen[b.Title] {
			continue
		}
		seen[b.Title] = true
		titles = append(titles, b.Title)
		if len(titles) == limit {
			break
		}
	}
	return titles, nil
}

// AuthorPrefixes returns up to limit author names starting with prefix.
func (r *MockBookRepository) AuthorPrefixes(prefix string, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lower := strings.ToLower(prefix)
	seen := make(map[string]bool)
	var authors []string
	for _, b := range r.all() {
		for _, a := range b.Author {
			if !strings.HasPrefix(strings.ToLower(a), lower) || seen[a] {
				continue
			}
			seen[a] = true
			authors = append(authors, a)
			if len(authors) == limit {
				return authors, nil
			}
		}
	}
	return authors, nil
}

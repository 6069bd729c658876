package repositories

import (
	"fmt"
	"strings"

	"bookbazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// Find retrieves books matching the filter along with the total match count,
// so callers can compute whether more pages exist.
func (r *GORMBookRepository) Find(filter BookFilter) ([]models.Book, int64, error) {
	query := r.db.Model(&models.Book{})

	if filter.Genre != "" {
		// Genre is a JSON-serialized list; match the quoted element.
		query = query.Where("genre LIKE ?", `%"`+filter.Genre+`"%`)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(summary) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}

	var books []models.Book
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find books: %w", err)
	}
	return books, total, nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("book with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}
	return &book, nil
}

// GetByIDs retrieves the books matching any of the given IDs.
func (r *GORMBookRepository) GetByIDs(ids []string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get books by IDs: %w", err)
	}
	return books, nil
}

// GetBySeller retrieves all books listed by a seller.
func (r *GORMBookRepository) GetBySeller(sellerID string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("seller_id = ?", sellerID).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get books for seller %s: %w", sellerID, err)
	}
	return books, nil
}

// GetByGenre retrieves all books whose genre list contains the given genre.
func (r *GORMBookRepository) GetByGenre(genre string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("genre LIKE ?", `%"`+genre+`"%`).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get books by genre %s: %w", genre, err)
	}
	return books, nil
}

// NextIndex returns the next sequential listing number (max existing + 1).
// Soft-deleted rows still hold their index, so the scan is unscoped.
func (r *GORMBookRepository) NextIndex() (int, error) {
	var max int
	err := r.db.Unscoped().Model(&models.Book{}).
		Select("COALESCE(MAX(book_index), 0)").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to determine next book index: %w", err)
	}
	return max + 1, nil
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update updates an existing book in the database.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s not found for update", book.ID)
	}
	return nil
}

// Delete deletes a book by its ID from the database.
func (r *GORMBookRepository) Delete(id string) error {
	res := r.db.Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s not found for deletion", id)
	}
	return nil
}

// TitlePrefixes returns up to limit distinct titles starting with prefix,
// case-insensitively.
func (r *GORMBookRepository) TitlePrefixes(prefix string, limit int) ([]string, error) {
	var titles []string
	err := r.db.Model(&models.Book{}).
		Where("LOWER(title) LIKE ?", strings.ToLower(prefix)+"%").
		Distinct().Limit(limit).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query title suggestions: %w", err)
	}
	return titles, nil
}

// AuthorPrefixes returns up to limit distinct author names starting with
// prefix. Authors live inside a JSON-serialized column, so rows are
// prefiltered with LIKE and the prefix match is finished in Go.
func (r *GORMBookRepository) AuthorPrefixes(prefix string, limit int) ([]string, error) {
	var books []models.Book
	err := r.db.Select("author").
		Where("LOWER(author) LIKE ?", "%"+strings.ToLower(prefix)+"%").
		Limit(limit * 4).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query author suggestions: %w", err)
	}

	lower := strings.ToLower(prefix)
	seen := make(map[string]bool)
	var authors []string
	for _, book := range books {
		for _, author := range book.Author {
			if !strings.HasPrefix(strings.ToLower(author), lower) || seen[author] {
				continue
			}
			seen[author] = true
			authors = append(authors, author)
			if len(authors) == limit {
				return authors, nil
			}
		}
	}
	return authors, nil
}

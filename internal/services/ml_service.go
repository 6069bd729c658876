package services

import (
	"errors"
	"fmt"
	"log"

	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"
	"bookbazaar/pkg/mlclient"
)

// MLClient is the resilient caller into the external ML prediction service.
// Implemented by mlclient.Client; retries are fully contained behind it, so
// this service only ever sees a final success or a final failure.
type MLClient interface {
	PredictGenre(summary string) ([]string, error)
	ExtractTags(summary string) ([]string, error)
}

var (
	fallbackGenre = models.StringList{models.DefaultGenre}
	fallbackTags  = models.StringList{"Book", "Reading", "Fiction"}
)

// GenreResult is a genre prediction plus its cache/degradation indicators.
type GenreResult struct {
	Genre       models.StringList
	Cached      bool
	RateLimited bool
}

// TagsResult is a tag extraction plus its cache/degradation indicators.
type TagsResult struct {
	Tags        models.StringList
	Cached      bool
	RateLimited bool
}

// MLService mediates calls to the ML service, using fields on the Book
// record as a durable result cache so repeat requests for the same book
// avoid recomputation.
type MLService struct {
	bookRepo repositories.BookRepository
	client   MLClient
}

// NewMLService creates a new MLService.
func NewMLService(bookRepo repositories.BookRepository, client MLClient) *MLService {
	return &MLService{
		bookRepo: bookRepo,
		client:   client,
	}
}

// PredictGenreForBook returns the book's genre, serving it from the book
// record when one is already stored. On a miss the prediction is persisted
// back onto the book. When the upstream stays rate limited through all
// retries, the fallback genre is persisted too, so subsequent lookups
// short-circuit instead of hammering a struggling upstream — at the cost of
// freezing the book at the fallback genre until it is cleared.
func (s *MLService) PredictGenreForBook(bookID string) (*GenreResult, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}

	if len(book.Genre) > 0 {
		return &GenreResult{Genre: book.Genre, Cached: true}, nil
	}

	genre, err := s.client.PredictGenre(book.Summary)
	if err != nil {
		if errors.Is(err, mlclient.ErrRateLimited) {
			book.Genre = fallbackGenre
			if updateErr := s.bookRepo.Update(book); updateErr != nil {
				log.Printf("Failed to persist fallback genre for book %s: %v", bookID, updateErr)
			}
			return &GenreResult{Genre: fallbackGenre, RateLimited: true}, nil
		}
		return nil, fmt.Errorf("genre prediction failed for book %s: %w", bookID, err)
	}

	book.Genre = models.StringList(genre)
	if err := s.bookRepo.Update(book); err != nil {
		return nil, fmt.Errorf("failed to cache predicted genre for book %s: %w", bookID, err)
	}
	return &GenreResult{Genre: book.Genre, Cached: false}, nil
}

// ExtractTagsForBook returns the book's tags, serving them from the book
// record when already stored and persisting them on a miss. Unlike the genre
// fallback, the tags fallback is NOT persisted on upstream rate limiting, so
// the next request tries the upstream again.
func (s *MLService) ExtractTagsForBook(bookID string) (*TagsResult, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}

	if len(book.Tags) > 0 {
		return &TagsResult{Tags: book.Tags, Cached: true}, nil
	}

	tags, err := s.client.ExtractTags(book.Summary)
	if err != nil {
		if errors.Is(err, mlclient.ErrRateLimited) {
			return &TagsResult{Tags: fallbackTags, RateLimited: true}, nil
		}
		return nil, fmt.Errorf("tag extraction failed for book %s: %w", bookID, err)
	}

	book.Tags = models.StringList(tags)
	if err := s.bookRepo.Update(book); err != nil {
		return nil, fmt.Errorf("failed to cache extracted tags for book %s: %w", bookID, err)
	}
	return &TagsResult{Tags: book.Tags, Cached: false}, nil
}

// PredictGenre runs a prediction for a raw summary, e.g. from a creation form
// before the book exists. No caching applies.
func (s *MLService) PredictGenre(summary string) (*GenreResult, error) {
	genre, err := s.client.PredictGenre(summary)
	if err != nil {
		if errors.Is(err, mlclient.ErrRateLimited) {
			return &GenreResult{Genre: fallbackGenre, RateLimited: true}, nil
		}
		return nil, fmt.Errorf("genre prediction failed: %w", err)
	}
	return &GenreResult{Genre: models.StringList(genre)}, nil
}

// ExtractTags extracts tags for a raw summary. No caching applies.
func (s *MLService) ExtractTags(summary string) (*TagsResult, error) {
	tags, err := s.client.ExtractTags(summary)
	if err != nil {
		if errors.Is(err, mlclient.ErrRateLimited) {
			return &TagsResult{Tags: fallbackTags, RateLimited: true}, nil
		}
		return nil, fmt.Errorf("tag extraction failed: %w", err)
	}
	return &TagsResult{Tags: models.StringList(tags)}, nil
}

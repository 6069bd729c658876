package handlers

import (
	"log"
	"strings"

	"bookbazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MLHandler exposes the ML gateway: genre prediction, tag extraction and
// autocomplete suggestions.
type MLHandler struct {
	mlService   *services.MLService
	bookService *services.BookService
}

// NewMLHandler creates a new MLHandler.
func NewMLHandler(mlService *services.MLService, bookService *services.BookService) *MLHandler {
	return &MLHandler{
		mlService:   mlService,
		bookService: bookService,
	}
}

// RegisterRoutes registers the ML gateway routes with the Fiber app. throttle
// bounds the per-client request rate for the whole group.
func (h *MLHandler) RegisterRoutes(router fiber.Router, throttle fiber.Handler) {
	mlRoutes := router.Group("/ml", throttle)
	mlRoutes.Post("/predict-genre", h.HandlePredictGenre)
	mlRoutes.Post("/extract-tags", h.HandleExtractTags)
	mlRoutes.Get("/predict-genre/:bookId", h.HandlePredictGenreForBook)
	mlRoutes.Get("/extract-tags/:bookId", h.HandleExtractTagsForBook)
	mlRoutes.Get("/autocomplete", h.HandleAutocomplete)
}

// summaryRequest carries raw summary text, e.g. from a creation form before
// the book is saved.
type summaryRequest struct {
	Summary string `json:"summary"`
}

// HandlePredictGenre predicts a genre for raw summary text. No caching.
func (h *MLHandler) HandlePredictGenre(c *fiber.Ctx) error {
	var req summaryRequest
	if err := c.BodyParser(&req); err != nil || req.Summary == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Summary is required",
		})
	}

	result, err := h.mlService.PredictGenre(req.Summary)
	if err != nil {
		log.Printf("Genre prediction failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Genre prediction failed",
		})
	}
	if result.RateLimited {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"predicted_genre": result.Genre,
		})
	}

	return c.JSON(fiber.Map{
		"predicted_genre": result.Genre,
	})
}

// HandleExtractTags extracts tags for raw summary text. No caching.
func (h *MLHandler) HandleExtractTags(c *fiber.Ctx) error {
	var req summaryRequest
	if err := c.BodyParser(&req); err != nil || req.Summary == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Summary is required",
		})
	}

	result, err := h.mlService.ExtractTags(req.Summary)
	if err != nil {
		log.Printf("Tag extraction failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Tag extraction failed",
		})
	}
	if result.RateLimited {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"tags": result.Tags,
		})
	}

	return c.JSON(fiber.Map{
		"tags": result.Tags,
	})
}

// HandlePredictGenreForBook returns a book's genre, served from the book
// record when already known. Answers 429 with the fallback genre when the
// upstream stayed rate limited through all retries.
func (h *MLHandler) HandlePredictGenreForBook(c *fiber.Ctx) error {
	bookID := c.Params("bookId")
	result, err := h.mlService.PredictGenreForBook(bookID)
	if err != nil {
		log.Printf("Genre prediction failed for book %s: %v", bookID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Book not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Genre prediction failed",
		})
	}
	if result.RateLimited {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"genre": result.Genre,
		})
	}

	return c.JSON(fiber.Map{
		"genre":  result.Genre,
		"cached": result.Cached,
	})
}

// HandleExtractTagsForBook returns a book's tags, served from the book record
// when already known. Answers 429 with the fallback tags when the upstream
// stayed rate limited through all retries.
func (h *MLHandler) HandleExtractTagsForBook(c *fiber.Ctx) error {
	bookID := c.Params("bookId")
	result, err := h.mlService.ExtractTagsForBook(bookID)
	if err != nil {
		log.Printf("Tag extraction failed for book %s: %v", bookID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Book not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Tag extraction failed",
		})
	}
	if result.RateLimited {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"tags": result.Tags,
		})
	}

	return c.JSON(fiber.Map{
		"tags":   result.Tags,
		"cached": result.Cached,
	})
}

// HandleAutocomplete returns title and author suggestions for a prefix.
func (h *MLHandler) HandleAutocomplete(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query (q) is required",
		})
	}

	suggestions, err := h.bookService.Autocomplete(query)
	if err != nil {
		log.Printf("Autocomplete failed for %q: %v", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch suggestions",
		})
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	return c.JSON(fiber.Map{
		"suggestions": suggestions,
	})
}

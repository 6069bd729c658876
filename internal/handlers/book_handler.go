package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"
	"bookbazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for book listings.
type BookHandler struct {
	service   *services.BookService
	validate  *validator.Validate
	uploadDir string
}

// NewBookHandler creates a new BookHandler. Uploaded cover images are stored
// under uploadDir.
func NewBookHandler(service *services.BookService, uploadDir string) *BookHandler {
	return &BookHandler{
		service:   service,
		validate:  validator.New(),
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the book routes with the Fiber app. protect guards
// the seller-facing routes.
func (h *BookHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	bookRoutes := router.Group("/books")
	bookRoutes.Post("/add", protect, h.HandleAddBook)
	bookRoutes.Put("/:id", protect, h.HandleUpdateBook)
	bookRoutes.Delete("/:id", protect, h.HandleDeleteBook)

	bookRoutes.Get("/all", h.HandleGetAllBooks)
	bookRoutes.Get("/my-books", protect, h.HandleGetMyBooks)
	bookRoutes.Get("/genre", h.HandleGetBooksByGenre)
	bookRoutes.Get("/by-ids", h.HandleGetBooksByIDs)

	// Must be last so it does not shadow the named routes above
	bookRoutes.Get("/:id", h.HandleGetBookByID)
}

// BookRequest represents the mutable fields of a listing. Accepted as JSON or
// multipart form (the form carries the optional image file).
type BookRequest struct {
	Title     string   `json:"title" form:"title" validate:"required,min=1,max=200"`
	Author    []string `json:"author" form:"author"`
	Summary   string   `json:"summary" form:"summary" validate:"required"`
	Price     float64  `json:"price" form:"price" validate:"gte=0"`
	Condition string   `json:"condition" form:"condition" validate:"omitempty,oneof=New Used"`
	Genre     []string `json:"genre" form:"genre"`
}

// saveImage stores an uploaded cover image, if any, and returns its stored
// filename. Only jpg/jpeg/png are accepted.
func (h *BookHandler) saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil // no image uploaded
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("only jpg, jpeg and png images are allowed")
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return filename, nil
}

// removeImage deletes a stored cover image. A missing file is not an error.
func (h *BookHandler) removeImage(filename string) {
	if filename == "" {
		return
	}
	if err := os.Remove(filepath.Join(h.uploadDir, filename)); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove image %s: %v", filename, err)
	}
}

// HandleAddBook creates a new listing for the logged-in seller.
func (h *BookHandler) HandleAddBook(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	image, err := h.saveImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image upload failed",
			"error":   err.Error(),
		})
	}

	sellerID, _ := c.Locals("user_id").(string)
	book := models.Book{
		Title:     req.Title,
		Author:    models.StringList(req.Author),
		Summary:   req.Summary,
		Price:     req.Price,
		Condition: req.Condition,
		Genre:     models.StringList(req.Genre),
		Image:     image,
		SellerID:  sellerID,
	}

	if err := h.service.CreateBook(&book); err != nil {
		log.Printf("Error adding book: %v", err)
		h.removeImage(image)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add book",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Book added successfully",
		"book":    book,
	})
}

// HandleUpdateBook updates a listing. Only the seller may edit it.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	bookID := c.Params("id")
	book, err := h.service.GetBookByID(bookID)
	if err != nil {
		return h.bookError(c, bookID, err)
	}

	sellerID, _ := c.Locals("user_id").(string)
	if book.SellerID != sellerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	book.Title = req.Title
	book.Author = models.StringList(req.Author)
	book.Summary = req.Summary
	book.Price = req.Price
	book.Condition = req.Condition
	book.Genre = models.StringList(req.Genre)

	// A replacement image retires the old file
	if image, err := h.saveImage(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image upload failed",
			"error":   err.Error(),
		})
	} else if image != "" {
		h.removeImage(book.Image)
		book.Image = image
	}

	if err := h.service.UpdateBook(book); err != nil {
		log.Printf("Error updating book %s: %v", bookID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error updating book",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Book updated",
		"book":    book,
	})
}

// HandleDeleteBook deletes a listing and its stored image. Only the seller
// may delete it.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	bookID := c.Params("id")
	book, err := h.service.GetBookByID(bookID)
	if err != nil {
		return h.bookError(c, bookID, err)
	}

	sellerID, _ := c.Locals("user_id").(string)
	if book.SellerID != sellerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.service.DeleteBook(bookID); err != nil {
		log.Printf("Error deleting book %s: %v", bookID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Delete failed",
			"error":   err.Error(),
		})
	}
	h.removeImage(book.Image)

	return c.JSON(fiber.Map{
		"message": "Book deleted successfully",
	})
}

// HandleGetAllBooks retrieves books with optional filters and pagination.
func (h *BookHandler) HandleGetAllBooks(c *fiber.Ctx) error {
	filter := repositories.BookFilter{
		Genre:     c.Query("genre"),
		Condition: c.Query("condition"),
		Search:    c.Query("search"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 12),
	}
	if v := c.Query("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}

	books, hasMore, err := h.service.ListBooks(filter)
	if err != nil {
		log.Printf("Error fetching books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch books",
		})
	}

	return c.JSON(fiber.Map{
		"books":   books,
		"hasMore": hasMore,
	})
}

// HandleGetMyBooks retrieves the logged-in seller's listings.
func (h *BookHandler) HandleGetMyBooks(c *fiber.Ctx) error {
	sellerID, _ := c.Locals("user_id").(string)
	books, err := h.service.GetBooksBySeller(sellerID)
	if err != nil {
		log.Printf("Error fetching books for seller %s: %v", sellerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch your books",
		})
	}
	return c.JSON(books)
}

// HandleGetBooksByGenre retrieves books carrying the requested genre.
func (h *BookHandler) HandleGetBooksByGenre(c *fiber.Ctx) error {
	genre := c.Query("genre")
	if genre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Genre is required",
		})
	}

	books, err := h.service.GetBooksByGenre(genre)
	if err != nil {
		log.Printf("Error fetching books by genre %s: %v", genre, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch books by genre",
		})
	}
	return c.JSON(fiber.Map{
		"books": books,
	})
}

// HandleGetBooksByIDs retrieves books matching a comma-separated list of IDs.
func (h *BookHandler) HandleGetBooksByIDs(c *fiber.Ctx) error {
	raw := c.Query("ids")
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or missing IDs",
		})
	}

	books, err := h.service.GetBooksByIDs(ids)
	if err != nil {
		log.Printf("Error fetching books by IDs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch books",
		})
	}
	return c.JSON(books)
}

// HandleGetBookByID retrieves a single book by its ID.
func (h *BookHandler) HandleGetBookByID(c *fiber.Ctx) error {
	bookID := c.Params("id")
	book, err := h.service.GetBookByID(bookID)
	if err != nil {
		return h.bookError(c, bookID, err)
	}
	return c.JSON(book)
}

// bookError maps a book lookup failure to a response.
func (h *BookHandler) bookError(c *fiber.Ctx, bookID string, err error) error {
	log.Printf("Error fetching book %s: %v", bookID, err)
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Book not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to fetch book",
	})
}

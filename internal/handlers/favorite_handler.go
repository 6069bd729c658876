package handlers

import (
	"log"
	"strings"

	"bookbazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles HTTP requests for user favorites.
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

// RegisterRoutes registers the favorite routes with the Fiber app. All
// favorite routes require a logged-in user.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	favoriteRoutes := router.Group("/favorites", protect)
	favoriteRoutes.Post("/", h.HandleAddFavorite)
	favoriteRoutes.Delete("/:bookId", h.HandleRemoveFavorite)
	favoriteRoutes.Get("/", h.HandleGetFavorites)
}

// HandleAddFavorite marks a book as favorite for the logged-in user.
func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	var req struct {
		BookID string `json:"book_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.BookID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or missing book_id",
		})
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.service.AddFavorite(userID, req.BookID); err != nil {
		log.Printf("Error adding favorite for user %s: %v", userID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid or missing book_id",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add to favorites",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleRemoveFavorite clears a favorite for the logged-in user.
func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	bookID := c.Params("bookId")

	if err := h.service.RemoveFavorite(userID, bookID); err != nil {
		log.Printf("Error removing favorite for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove favorite",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleGetFavorites retrieves the logged-in user's favorite books.
func (h *FavoriteHandler) HandleGetFavorites(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	books, err := h.service.GetFavoriteBooks(userID)
	if err != nil {
		log.Printf("Error fetching favorites for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch favorites",
		})
	}

	return c.JSON(fiber.Map{
		"favorites": books,
	})
}

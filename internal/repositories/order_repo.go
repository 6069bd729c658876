package repositories

import (
	"bookbazaar/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable after creation, so there is no update or delete.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
}

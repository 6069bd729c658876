package services

import (
	"fmt"
	"log"
	"time"

	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	bookRepo  repositories.BookRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, bookRepo repositories.BookRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		publisher: publisher,
	}
}

// GetOrdersForUser retrieves a user's orders, newest first.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder creates an order for the user. Each line item snapshots the
// book's title, price and image at purchase time; the total is computed
// server-side from those snapshots.
func (s *OrderService) PlaceOrder(userID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("an order requires at least one item")
	}

	var total float64
	processedItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		book, err := s.bookRepo.GetByID(item.BookID)
		if err != nil {
			return nil, fmt.Errorf("book %s not found: %w", item.BookID, err)
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		processedItems = append(processedItems, models.OrderItem{
			BookID:   book.ID,
			Title:    book.Title,
			Price:    book.Price, // Price at the time of purchase
			Quantity: quantity,
			Image:    book.Image,
		})
		total += book.Price * float64(quantity)
	}

	newOrder := &models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     processedItems,
		Total:     total,
		OrderedAt: time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// Publish an order.created event. A publish failure is logged but does
	// not fail the checkout.
	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID": newOrder.ID,
			"userID":  newOrder.UserID,
			"total":   newOrder.Total,
			"items":   len(newOrder.Items),
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", newOrder.ID, err)
		}
	} else {
		log.Println("Event publisher is not initialized. Skipping order event publication.")
	}

	return newOrder, nil
}

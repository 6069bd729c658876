package services_test

import (
	"fmt"
	"testing"
	"time"

	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"
	"bookbazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCreated(orderData map[string]interface{}) error {
	args := m.Called(orderData)
	return args.Error(0)
}

func seedBooks(t *testing.T, repo repositories.BookRepository) (models.Book, models.Book) {
	t.Helper()
	dune := models.Book{ID: "book-1", Title: "Dune", Summary: "sand", Price: 12.5, Image: "dune.jpg"}
	hyperion := models.Book{ID: "book-2", Title: "Hyperion", Summary: "shrike", Price: 9.0}
	assert.NoError(t, repo.Create(&dune))
	assert.NoError(t, repo.Create(&hyperion))
	return dune, hyperion
}

func TestOrderService_PlaceOrder(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	bookRepo := repositories.NewMockBookRepository()
	publisher := new(MockEventPublisher)
	service := services.NewOrderService(orderRepo, bookRepo, publisher)

	dune, hyperion := seedBooks(t, bookRepo)
	publisher.On("PublishOrderCreated", mock.Anything).Return(nil).Once()

	order, err := service.PlaceOrder("user-1", []models.OrderItem{
		{BookID: dune.ID, Quantity: 2},
		{BookID: hyperion.ID}, // quantity omitted, defaults to 1
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Len(t, order.Items, 2)

	// Line items snapshot the book at purchase time
	assert.Equal(t, "Dune", order.Items[0].Title)
	assert.Equal(t, 12.5, order.Items[0].Price)
	assert.Equal(t, "dune.jpg", order.Items[0].Image)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 1, order.Items[1].Quantity)

	// Total computed server-side: 2*12.5 + 1*9.0
	assert.Equal(t, 34.0, order.Total)

	publisher.AssertExpectations(t)

	// Changing the book afterwards must not affect the stored snapshot
	dune.Price = 99
	assert.NoError(t, bookRepo.Update(&dune))
	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 12.5, stored.Items[0].Price)
}

func TestOrderService_PlaceOrder_InvalidInput(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	bookRepo := repositories.NewMockBookRepository()
	service := services.NewOrderService(orderRepo, bookRepo, nil)

	_, err := service.PlaceOrder("user-1", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")

	_, err = service.PlaceOrder("user-1", []models.OrderItem{{BookID: "ghost"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderService_PlaceOrder_PublishFailureDoesNotFailCheckout(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	bookRepo := repositories.NewMockBookRepository()
	publisher := new(MockEventPublisher)
	service := services.NewOrderService(orderRepo, bookRepo, publisher)

	dune, _ := seedBooks(t, bookRepo)
	publisher.On("PublishOrderCreated", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	order, err := service.PlaceOrder("user-1", []models.OrderItem{{BookID: dune.ID, Quantity: 1}})
	assert.NoError(t, err)
	assert.NotNil(t, order)

	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	publisher.AssertExpectations(t)
}

func TestOrderService_GetOrdersForUser_NewestFirst(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	bookRepo := repositories.NewMockBookRepository()
	service := services.NewOrderService(orderRepo, bookRepo, nil)

	older := &models.Order{UserID: "user-1", Total: 1, OrderedAt: time.Now().Add(-time.Hour)}
	newer := &models.Order{UserID: "user-1", Total: 2, OrderedAt: time.Now()}
	other := &models.Order{UserID: "user-2", Total: 3, OrderedAt: time.Now()}
	assert.NoError(t, orderRepo.Create(older))
	assert.NoError(t, orderRepo.Create(newer))
	assert.NoError(t, orderRepo.Create(other))

	orders, err := service.GetOrdersForUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

package services

import (
	"context"
	"fmt"
	"log"

	"equaline/internal/models"
	"equaline/internal/repositories"
)

// OrderService handles the order log.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// PlaceOrder appends order to the log and announces it.
func (s *OrderService) PlaceOrder(ctx context.Context, order models.Order) error {
	if err := s.orderRepo.Append(ctx, order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.OrderNumber, err)
	}
	log.Printf("Order %s placed for %s (%d items, total %d)", order.OrderNumber, order.Customer.Email, order.Items.TotalItemCount(), order.Total())

	publishEvent(s.publisher, EventOrderCreated, map[string]interface{}{
		"orderNumber": order.OrderNumber,
		"email":       order.Customer.Email,
		"phone":       order.Customer.Phone,
		"status":      order.Status,
		"total":       order.Total(),
		"items":       order.Items,
		"timestamp":   order.Timestamp,
	})
	return nil
}

// GetOrdersFor returns the orders placed by email, oldest first.
func (s *OrderService) GetOrdersFor(ctx context.Context, email string) []models.Order {
	out := []models.Order{}
	for _, o := range s.orderRepo.GetAll(ctx) {
		if o.Customer.Email == email {
			out = append(out, o)
		}
	}
	return out
}

// GetOrderByNumber returns the most recent order with number placed by email.
// Order numbers are not guaranteed unique, so the latest one wins.
func (s *OrderService) GetOrderByNumber(ctx context.Context, number, email string) (*models.Order, error) {
	orders := s.GetOrdersFor(ctx, email)
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].OrderNumber == number {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", number, ErrOrderNotFound)
}

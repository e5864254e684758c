package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"equaline/internal/models"
	"equaline/internal/repositories"
)

// CartSummary is a cart together with its derived totals.
type CartSummary struct {
	Items          models.Cart `json:"items"`
	TotalItemCount int         `json:"total_items"`
	TotalPrice     int         `json:"total_price"`
}

// Summarize derives the totals of cart.
func Summarize(cart models.Cart) CartSummary {
	if cart == nil {
		cart = models.Cart{}
	}
	return CartSummary{
		Items:          cart,
		TotalItemCount: cart.TotalItemCount(),
		TotalPrice:     cart.TotalPrice(),
	}
}

// CartService handles business logic related to a visitor's cart.
// Every mutation is written back to the repository before it returns.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	mu       sync.Mutex
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// GetCart returns the visitor's cart.
func (s *CartService) GetCart(ctx context.Context, visitorID string) CartSummary {
	return Summarize(s.carts.Load(ctx, visitorID))
}

// AddToCart adds one unit of productID. An unknown product leaves the cart as it is.
func (s *CartService) AddToCart(ctx context.Context, visitorID string, productID int) (CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts.Load(ctx, visitorID)
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			log.Printf("Ignoring add to cart of unknown product %d", productID)
			return Summarize(cart), nil
		}
		return CartSummary{}, fmt.Errorf("failed to look up product %d: %w", productID, err)
	}

	cart = cart.Add(*product)
	if err := s.carts.Save(ctx, visitorID, cart); err != nil {
		return CartSummary{}, fmt.Errorf("failed to save cart: %w", err)
	}
	return Summarize(cart), nil
}

// RemoveFromCart drops the line of productID. The cart is saved even when
// there was no such line.
func (s *CartService) RemoveFromCart(ctx context.Context, visitorID string, productID int) (CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts.Load(ctx, visitorID).Remove(productID)
	if err := s.carts.Save(ctx, visitorID, cart); err != nil {
		return CartSummary{}, fmt.Errorf("failed to save cart: %w", err)
	}
	return Summarize(cart), nil
}

// SetQuantity sets the quantity of productID's line. Zero or less removes
// the line. A product that is not in the cart is ignored.
func (s *CartService) SetQuantity(ctx context.Context, visitorID string, productID, quantity int) (CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, visitorID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, changed := s.carts.Load(ctx, visitorID).SetQuantity(productID, quantity)
	if !changed {
		return Summarize(cart), nil
	}
	if err := s.carts.Save(ctx, visitorID, cart); err != nil {
		return CartSummary{}, fmt.Errorf("failed to save cart: %w", err)
	}
	return Summarize(cart), nil
}

// StageForCheckout copies the cart to the staging key read by checkout.
func (s *CartService) StageForCheckout(ctx context.Context, visitorID string) (CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts.Load(ctx, visitorID)
	if err := s.carts.SaveStaged(ctx, visitorID, cart); err != nil {
		return CartSummary{}, fmt.Errorf("failed to stage cart for checkout: %w", err)
	}
	return Summarize(cart), nil
}

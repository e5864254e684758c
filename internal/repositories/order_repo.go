package repositories

import (
	"context"
	"fmt"
	"sync"

	"equaline/internal/models"
)

// OrderRepository defines the interface for the append-only order log.
type OrderRepository interface {
	GetAll(ctx context.Context) []models.Order
	Append(ctx context.Context, order models.Order) error
}

// BlobOrderRepository keeps the order log under the orders key.
type BlobOrderRepository struct {
	store *BlobStore
	mu    sync.Mutex
}

// NewBlobOrderRepository creates a new BlobOrderRepository.
func NewBlobOrderRepository(store *BlobStore) *BlobOrderRepository {
	return &BlobOrderRepository{store: store}
}

func (r *BlobOrderRepository) GetAll(ctx context.Context) []models.Order {
	return ReadOr(ctx, r.store, KeyOrders, []models.Order{})
}

// Append adds order to the end of the log. A log that cannot be read is
// left untouched and the order is rejected.
func (r *BlobOrderRepository) Append(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := readForUpdate(ctx, r.store, KeyOrders, []models.Order{})
	if err != nil {
		return fmt.Errorf("failed to append order %s: %w", order.OrderNumber, err)
	}
	return r.store.Write(ctx, KeyOrders, append(orders, order))
}

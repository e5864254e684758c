package repositories

import (
	"context"

	"equaline/internal/models"
)

// CartRepository defines the interface for a visitor's cart and the copy
// staged for checkout.
type CartRepository interface {
	Load(ctx context.Context, visitorID string) models.Cart
	Save(ctx context.Context, visitorID string, cart models.Cart) error
	Clear(ctx context.Context, visitorID string) error
	LoadStaged(ctx context.Context, visitorID string) models.Cart
	SaveStaged(ctx context.Context, visitorID string, cart models.Cart) error
	ClearStaged(ctx context.Context, visitorID string) error
}

// BlobCartRepository keeps carts in a BlobStore under the cart and cartItems keys.
type BlobCartRepository struct {
	store *BlobStore
}

// NewBlobCartRepository creates a new BlobCartRepository.
func NewBlobCartRepository(store *BlobStore) *BlobCartRepository {
	return &BlobCartRepository{store: store}
}

func (r *BlobCartRepository) Load(ctx context.Context, visitorID string) models.Cart {
	return ReadOr(ctx, r.store, VisitorKey(visitorID, KeyCart), models.Cart{})
}

func (r *BlobCartRepository) Save(ctx context.Context, visitorID string, cart models.Cart) error {
	return r.store.Write(ctx, VisitorKey(visitorID, KeyCart), nonNil(cart))
}

func (r *BlobCartRepository) Clear(ctx context.Context, visitorID string) error {
	return r.store.Remove(ctx, VisitorKey(visitorID, KeyCart))
}

func (r *BlobCartRepository) LoadStaged(ctx context.Context, visitorID string) models.Cart {
	return ReadOr(ctx, r.store, VisitorKey(visitorID, KeyCartItems), models.Cart{})
}

func (r *BlobCartRepository) SaveStaged(ctx context.Context, visitorID string, cart models.Cart) error {
	return r.store.Write(ctx, VisitorKey(visitorID, KeyCartItems), nonNil(cart))
}

func (r *BlobCartRepository) ClearStaged(ctx context.Context, visitorID string) error {
	return r.store.Remove(ctx, VisitorKey(visitorID, KeyCartItems))
}

// nonNil keeps an empty cart encoded as [] rather than null.
func nonNil(cart models.Cart) models.Cart {
	if cart == nil {
		return models.Cart{}
	}
	return cart
}

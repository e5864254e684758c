package repositories

import (
	"context"
	"sync"

	"equaline/internal/models"
)

// ContactRepository defines the interface for callback requests and
// newsletter subscriptions.
type ContactRepository interface {
	GetCallbacks(ctx context.Context) []models.Callback
	AppendCallback(ctx context.Context, callback models.Callback) error
	GetSubscriptions(ctx context.Context) []models.Subscription
	// LoadSubscriptions fails instead of defaulting when the stored list is malformed.
	LoadSubscriptions(ctx context.Context) ([]models.Subscription, error)
	SaveSubscriptions(ctx context.Context, subs []models.Subscription) error
}

// BlobContactRepository keeps contact data under the callbacks and newsletter keys.
type BlobContactRepository struct {
	store *BlobStore
	mu    sync.Mutex
}

// NewBlobContactRepository creates a new BlobContactRepository.
func NewBlobContactRepository(store *BlobStore) *BlobContactRepository {
	return &BlobContactRepository{store: store}
}

func (r *BlobContactRepository) GetCallbacks(ctx context.Context) []models.Callback {
	return ReadOr(ctx, r.store, KeyCallbacks, []models.Callback{})
}

func (r *BlobContactRepository) AppendCallback(ctx context.Context, callback models.Callback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	callbacks, err := readForUpdate(ctx, r.store, KeyCallbacks, []models.Callback{})
	if err != nil {
		return err
	}
	return r.store.Write(ctx, KeyCallbacks, append(callbacks, callback))
}

func (r *BlobContactRepository) GetSubscriptions(ctx context.Context) []models.Subscription {
	return ReadOr(ctx, r.store, KeyNewsletter, []models.Subscription{})
}

func (r *BlobContactRepository) LoadSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	return readForUpdate(ctx, r.store, KeyNewsletter, []models.Subscription{})
}

func (r *BlobContactRepository) SaveSubscriptions(ctx context.Context, subs []models.Subscription) error {
	if subs == nil {
		subs = []models.Subscription{}
	}
	return r.store.Write(ctx, KeyNewsletter, subs)
}

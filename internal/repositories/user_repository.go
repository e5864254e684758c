package repositories

import (
	"context"

	"equaline/internal/models"
)

// UserRepository defines the interface for the user directory.
type UserRepository interface {
	// GetAll returns an empty directory when the stored one cannot be read.
	GetAll(ctx context.Context) []models.User
	// Load is GetAll for callers that write the directory back; it fails
	// instead of defaulting when the stored directory is malformed.
	Load(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, users []models.User) error
}

// SessionRepository defines the interface for a visitor's signed-in user.
type SessionRepository interface {
	// Current returns nil when nobody is signed in.
	Current(ctx context.Context, visitorID string) *models.Session
	Set(ctx context.Context, visitorID string, session models.Session) error
	Clear(ctx context.Context, visitorID string) error
}

// BlobUserRepository keeps the user directory under the users key.
type BlobUserRepository struct {
	store *BlobStore
}

// NewBlobUserRepository creates a new BlobUserRepository.
func NewBlobUserRepository(store *BlobStore) *BlobUserRepository {
	return &BlobUserRepository{store: store}
}

func (r *BlobUserRepository) GetAll(ctx context.Context) []models.User {
	return ReadOr(ctx, r.store, KeyUsers, []models.User{})
}

func (r *BlobUserRepository) Load(ctx context.Context) ([]models.User, error) {
	return readForUpdate(ctx, r.store, KeyUsers, []models.User{})
}

func (r *BlobUserRepository) Save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return r.store.Write(ctx, KeyUsers, users)
}

// BlobSessionRepository keeps each visitor's session under currentUser.
type BlobSessionRepository struct {
	store *BlobStore
}

// NewBlobSessionRepository creates a new BlobSessionRepository.
func NewBlobSessionRepository(store *BlobStore) *BlobSessionRepository {
	return &BlobSessionRepository{store: store}
}

func (r *BlobSessionRepository) Current(ctx context.Context, visitorID string) *models.Session {
	return ReadOr[*models.Session](ctx, r.store, VisitorKey(visitorID, KeyCurrentUser), nil)
}

func (r *BlobSessionRepository) Set(ctx context.Context, visitorID string, session models.Session) error {
	return r.store.Write(ctx, VisitorKey(visitorID, KeyCurrentUser), session)
}

func (r *BlobSessionRepository) Clear(ctx context.Context, visitorID string) error {
	return r.store.Remove(ctx, VisitorKey(visitorID, KeyCurrentUser))
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Keys of the persisted blobs. Cart, staged cart and current user are kept
// per visitor; the rest are site-wide.
const (
	KeyCart        = "cart"
	KeyCartItems   = "cartItems"
	KeyCurrentUser = "currentUser"
	KeyUsers       = "users"
	KeyOrders      = "orders"
	KeyCallbacks   = "callbacks"
	KeyNewsletter  = "newsletter"
)

// VisitorKey scopes key to a visitor. An empty visitor id yields the bare key.
func VisitorKey(visitorID, key string) string {
	if visitorID == "" {
		return key
	}
	return "visitor:" + visitorID + ":" + key
}

// BlobStore stores JSON documents in a KeyValueStore. Reads never fail:
// anything missing, unparseable or not matching the expected shape is
// replaced by the caller's default.
type BlobStore struct {
	kv       KeyValueStore
	validate *validator.Validate
}

// NewBlobStore creates a BlobStore on top of kv.
func NewBlobStore(kv KeyValueStore) *BlobStore {
	return &BlobStore{
		kv:       kv,
		validate: validator.New(),
	}
}

// ErrMalformed is returned by Read when the stored document does not parse
// or fails its validate tags.
var ErrMalformed = errors.New("malformed stored value")

// Read decodes the document stored under key into a T. A missing key yields
// ErrKeyNotFound and a document that does not parse or validate yields
// ErrMalformed; backend failures are returned as they are.
func Read[T any](ctx context.Context, s *BlobStore, key string) (T, error) {
	var value T
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w: %v", key, ErrMalformed, err)
	}
	if err := s.checkShape(reflect.ValueOf(value)); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w: %v", key, ErrMalformed, err)
	}
	return value, nil
}

// ReadOr is Read with def standing in for any failure. Failures other than a
// missing key are logged.
func ReadOr[T any](ctx context.Context, s *BlobStore, key string, def T) T {
	value, err := Read[T](ctx, s, key)
	switch {
	case err == nil:
		return value
	case errors.Is(err, ErrKeyNotFound):
	case errors.Is(err, ErrMalformed):
		log.Printf("Discarding malformed value under %s, using default: %v", key, err)
	default:
		log.Printf("Error reading %s, using default: %v", key, err)
	}
	return def
}

// readForUpdate is the read half of a read-modify-write. Only a missing key
// falls back to def; a malformed document or a backend failure is returned
// so the caller does not write over data it could not read.
func readForUpdate[T any](ctx context.Context, s *BlobStore, key string, def T) (T, error) {
	value, err := Read[T](ctx, s, key)
	if errors.Is(err, ErrKeyNotFound) {
		return def, nil
	}
	if err != nil {
		log.Printf("Refusing to update %s: %v", key, err)
		return def, err
	}
	return value, nil
}

// Write encodes value as JSON and stores it under key.
func (s *BlobStore) Write(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *BlobStore) Remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// checkShape runs struct validation on v, on the struct v points to, or on
// every struct element when v is a slice.
func (s *BlobStore) checkShape(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return s.checkShape(v.Elem())
	case reflect.Struct:
		return s.validate.Struct(v.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := s.checkShape(v.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}

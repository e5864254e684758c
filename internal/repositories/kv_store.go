package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a KeyValueStore when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the byte-level store every persisted blob lives in.
// Implementations make no attempt at cross-writer coordination: the last
// Set on a key wins.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

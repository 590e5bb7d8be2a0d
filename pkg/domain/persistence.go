package domain

import "context"

// KeyValueStore is the minimal abstraction over durable backends used by the
// feedback repository. Payloads are opaque to the store.
type KeyValueStore interface {
	// Get returns the payload stored at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	// Set replaces the payload stored at key.
	Set(ctx context.Context, key string, payload []byte) error
	// Delete removes key, returning false when it did not exist.
	Delete(ctx context.Context, key string) (bool, error)
	// Close releases backend resources.
	Close() error
}

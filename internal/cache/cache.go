// Package cache provides a small read cache for the loan list.
//
// The service keeps the serialized loan list under a single key and deletes
// it on every mutation, so a read after a write always comes from the store.
package cache

import "context"

// Cache is the interface the service depends on. Backends: Memory (default)
// and Redis (when REDIS_ADDR is configured).
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

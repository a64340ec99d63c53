package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so that a retried
// mutation (for example a material issue resubmitted after a timeout) is not applied twice.
type IdempotencyStore interface {
	// Reserve claims key for ttl. Returns false if the key is already held.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key whose operation failed, so the client may retry it.
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}

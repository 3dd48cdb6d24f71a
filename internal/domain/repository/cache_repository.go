package repository

import (
	"context"
	"time"
)

// CacheRepository is the byte-level cache used for suggestion results
// and budget breakdowns.
type CacheRepository interface {
	// Get returns the cached value, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error
}

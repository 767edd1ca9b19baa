package cache

import (
	"context"
	"time"
)

// CacheService stores JSON-encodable values under string keys.
type CacheService interface {
	// Get decodes the cached value into dest.
	// Returns false when the key is missing or expired.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with the given TTL; zero means the backend default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Flush removes all items owned by this cache
	Flush(ctx context.Context) error
}

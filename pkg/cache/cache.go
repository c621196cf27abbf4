package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted or cleared.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Counter is implemented by caches that can count their entries. Counts
// are keyed by KeyKind.
type Counter interface {
	Count(ctx context.Context) (map[string]int, error)
}

// NullCache stores nothing. A router given one skips key hashing and
// result encoding altogether; see Enabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

// Enabled reports whether c can ever return an entry.
func Enabled(c Cache) bool {
	_, null := c.(*NullCache)
	return c != nil && !null
}

// Default TTLs. Route entries are keyed by their full input, so they never
// go stale; the TTLs only bound storage growth.
const (
	TTLRoute = 7 * 24 * time.Hour
	TTLScene = 24 * time.Hour
)

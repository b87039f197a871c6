// Package cache provides byte-oriented caching for downloaded artifacts.
//
// The Cache interface abstracts over storage backends so callers can swap
// between a persistent file cache, a shared Redis instance, or no caching at
// all without changing call sites. Entries carry an optional TTL; expired
// entries are treated as misses.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Implementations must treat an expired entry as a miss. They are not
// required to be goroutine-safe unless documented otherwise.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found (and fresh).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

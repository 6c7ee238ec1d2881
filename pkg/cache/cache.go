// Package cache provides the artifact cache used to skip re-exporting
// unchanged diagrams.
//
// Layout is cheap but the rendered artifacts (Graphviz SVG/PNG in
// particular) are not, and the server hands out the same diagram many
// times. Artifacts are cached under a key derived from the input descriptor
// and the render options ([ArtifactKey]), so any change to either misses
// cleanly.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache] - hash-sharded JSON entries on disk, for the CLI
//   - [RedisCache] - shared cache for server deployments
//   - [NullCache] - no-op, for tests and --no-cache
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
// [Cache.Get] itself reports misses via its bool return.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented key-value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// Package cache stores rendered artifacts so repeated renders of the same
// graph in the same format skip the rendering engine.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are built with [ArtifactKey] from the engine token, layout, backend,
// engine binary and a [Hash] of the DOT source.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts identifies how an artifact was rendered.
type ArtifactKeyOpts struct {
	Token   string `json:"token"`
	Layout  string `json:"layout"`
	Backend string `json:"backend"`
	Engine  string `json:"engine,omitempty"` // engine binary, exec backend only
}

// ArtifactKey returns the cache key for a rendered artifact.
// dotHash is the [Hash] of the DOT source.
func ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}

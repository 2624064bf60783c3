// Package cache stores raw cargo metadata between runs.
//
// Running `cargo metadata` on a large workspace can take seconds, while the
// graph pipeline itself is instant. The CLI therefore keeps the provider's raw
// JSON in a small file cache keyed by a fingerprint of the workspace manifest
// and lockfile. Any edit to either file yields a new key.
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// when caching is disabled (--no-cache).
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. The boolean reports a hit;
	// expired and unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores the entry without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache for runs with --no-cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }

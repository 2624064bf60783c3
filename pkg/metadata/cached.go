package metadata

import (
	"context"
	"time"

	"github.com/matzehuels/cargo-dep/pkg/cache"
	"github.com/matzehuels/cargo-dep/pkg/observability"
)

const cacheKeyType = "metadata"

// Cached serves documents from a cache, falling back to Inner on a miss.
// Only documents that decode successfully are stored.
type Cached struct {
	Inner   Provider
	Cache   cache.Cache
	Key     string
	TTL     time.Duration
	Refresh bool // skip the lookup but still store the fresh document
}

// Name implements [Provider].
func (c *Cached) Name() string { return c.Inner.Name() + " (cached)" }

// Fetch implements [Provider]. Cache read and write failures degrade to
// fetching from Inner; they never fail the run.
func (c *Cached) Fetch(ctx context.Context) ([]byte, error) {
	hooks := observability.Cache()
	if !c.Refresh {
		if data, hit, err := c.Cache.Get(ctx, c.Key); err == nil && hit {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return data, nil
		}
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	data, err := c.Inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := Parse(data); err != nil {
		return data, nil
	}
	if err := c.Cache.Set(ctx, c.Key, data, c.TTL); err == nil {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return data, nil
}

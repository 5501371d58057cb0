package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// CacheStats summarizes the activity of one FareCache.
type CacheStats struct {
	// Lookups is the number of fare tables fetched through the lookup function
	Lookups int

	// Failed is how many of those lookups were unavailable
	Failed int

	// Hits is the number of Get calls served without a fetch
	Hits int
}

// FareCache memoizes fare lookups for the lifetime of one search. Empty and
// unavailable results are stored like any other, so a key is fetched at most
// once. It is safe for concurrent use.
type FareCache struct {
	lookup FareLookupFunc

	mu      sync.RWMutex
	entries map[domain.FareCacheKey]domain.FareLookup
	group   singleflight.Group

	gets    atomic.Int64
	lookups atomic.Int64
	failed  atomic.Int64
}

// NewFareCache creates an empty cache backed by lookup.
func NewFareCache(lookup FareLookupFunc) *FareCache {
	return &FareCache{
		lookup:  lookup,
		entries: make(map[domain.FareCacheKey]domain.FareLookup),
	}
}

// Get returns the cached lookup for key, fetching it on first use. Concurrent
// callers for the same key share a single fetch.
func (c *FareCache) Get(ctx context.Context, key domain.FareCacheKey) domain.FareLookup {
	c.gets.Add(1)

	if lookup, ok := c.load(key); ok {
		return lookup
	}

	v, _, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if lookup, ok := c.load(key); ok {
			return lookup, nil
		}

		lookup := c.lookup(ctx, key)
		c.lookups.Add(1)
		if lookup.Failed() {
			c.failed.Add(1)
		}

		c.mu.Lock()
		c.entries[key] = lookup
		c.mu.Unlock()
		return lookup, nil
	})
	return v.(domain.FareLookup)
}

// Prefetch fills the cache for every key with at most concurrency fetches in
// flight. It returns the context error if ctx ends before all keys are loaded.
func (c *FareCache) Prefetch(ctx context.Context, keys []domain.FareCacheKey, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, key := range keys {
		key := key
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.Get(gctx, key)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Len returns the number of cached keys.
func (c *FareCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *FareCache) Stats() CacheStats {
	lookups := c.lookups.Load()
	return CacheStats{
		Lookups: int(lookups),
		Failed:  int(c.failed.Load()),
		Hits:    int(c.gets.Load() - lookups),
	}
}

func (c *FareCache) load(key domain.FareCacheKey) (domain.FareLookup, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lookup, ok := c.entries[key]
	return lookup, ok
}

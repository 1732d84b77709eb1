package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/manifestry/regmanifest/internal/manifest"
)

// IdentityCache memoizes registry identity lookups keyed by source-control
// URL (spec.md §4.1). A failed lookup is stored as manifest.LookupOutcome
// with Failed=true, replayed on the next request without re-querying the
// registry, and overwritten in place the next time a lookup is stored for
// the same URL — there is no separate negative-cache table.
type IdentityCache struct {
	manager Manager[manifest.SCMURL, manifest.LookupOutcome]
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewIdentityCache builds an identity cache with the given default TTL.
// A ttl of zero falls back to DefaultExpiration (300s, spec.md §4.1).
func NewIdentityCache(ttl time.Duration) *IdentityCache {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &IdentityCache{
		manager: NewInMemoryManager[manifest.SCMURL, manifest.LookupOutcome]("identity", ttl, DefaultCleanupInterval),
		ttl:     ttl,
	}
}

// Lookup returns the cached outcome for url, if any.
func (c *IdentityCache) Lookup(ctx context.Context, url manifest.SCMURL) (manifest.LookupOutcome, bool) {
	outcome, ok := c.manager.Get(ctx, url)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return outcome, ok
}

// Store records outcome for url under the cache's default TTL, replacing
// any prior entry.
func (c *IdentityCache) Store(ctx context.Context, url manifest.SCMURL, outcome manifest.LookupOutcome) {
	c.manager.Set(ctx, url, outcome, c.ttl)
}

// Reset clears every cached outcome, forcing the next lookup for every URL
// back through the registry client.
func (c *IdentityCache) Reset(ctx context.Context) error {
	return c.manager.Flush(ctx)
}

// Purge removes cached outcomes for the given URLs only, leaving the rest
// of the cache intact.
func (c *IdentityCache) Purge(ctx context.Context, urls ...manifest.SCMURL) error {
	return c.manager.Delete(ctx, urls...)
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Stats reports cumulative hit/miss counters and current entry count.
// Counters are process-lifetime totals, not reset by Reset/Purge.
func (c *IdentityCache) Stats() Stats {
	size := 0
	if im, ok := c.manager.(*InMemoryManager[manifest.SCMURL, manifest.LookupOutcome]); ok {
		size = im.Len()
	}
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   size,
	}
}

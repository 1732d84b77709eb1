package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/manifestry/regmanifest/internal/log"
)

const DefaultExpiration = 300 * time.Second
const DefaultCleanupInterval = 10 * time.Minute

// NewInMemoryManager builds a process-local cache with the given default
// expiration and janitor sweep interval.
func NewInMemoryManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryManager[K, V] {
	return &InMemoryManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// InMemoryManager is the concrete Manager implementation backed by
// patrickmn/go-cache. It never survives process exit — spec.md §6 requires
// that the identity cache be rebuilt from nothing on each new process.
type InMemoryManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

func (c *InMemoryManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(string(key))
	if !found {
		return zeroValue, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", string(key), "use_case", c.useCase)
		return zeroValue, false
	}

	log.Debug(log.CatCache, "cache hit", "key", string(key), "use_case", c.useCase)
	return v, true
}

func (c *InMemoryManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

func (c *InMemoryManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
	return nil
}

func (c *InMemoryManager[K, V]) Flush(ctx context.Context) error {
	c.cache.Flush()
	return nil
}

// Len reports the number of entries currently held, which can include
// expired entries the janitor has not swept yet.
func (c *InMemoryManager[K, V]) Len() int {
	return c.cache.ItemCount()
}

// Package cache provides the generic, TTL-based caching abstraction the
// identity cache (spec.md §4.1) is built on.
package cache

import (
	"context"
	"time"
)

// Manager is a generic key/value cache with per-entry TTLs. It is the
// seam the identity cache is built against, so a different backend
// (distributed, disk-backed) can be substituted without touching callers.
type Manager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}

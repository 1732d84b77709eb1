package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/manifestry/regmanifest/internal/manifest"
)

func TestIdentityCache_MissThenHit(t *testing.T) {
	c := NewIdentityCache(time.Minute)
	ctx := context.Background()
	url := manifest.SCMURL("https://example.com/repo.git")

	_, ok := c.Lookup(ctx, url)
	require.False(t, ok)

	c.Store(ctx, url, manifest.LookupOutcome{Identity: manifest.Identity("pkg.repo")})

	outcome, ok := c.Lookup(ctx, url)
	require.True(t, ok)
	require.True(t, outcome.HasIdentity())
	require.Equal(t, manifest.Identity("pkg.repo"), outcome.Identity)
}

func TestIdentityCache_CachesFailureSameAsSuccess(t *testing.T) {
	c := NewIdentityCache(time.Minute)
	ctx := context.Background()
	url := manifest.SCMURL("https://example.com/unknown.git")

	c.Store(ctx, url, manifest.LookupOutcome{Failed: true})

	outcome, ok := c.Lookup(ctx, url)
	require.True(t, ok)
	require.True(t, outcome.Failed)
	require.False(t, outcome.HasIdentity())
}

func TestIdentityCache_StoreOverwritesInPlace(t *testing.T) {
	c := NewIdentityCache(time.Minute)
	ctx := context.Background()
	url := manifest.SCMURL("https://example.com/repo.git")

	c.Store(ctx, url, manifest.LookupOutcome{Failed: true})
	c.Store(ctx, url, manifest.LookupOutcome{Identity: manifest.Identity("pkg.repo")})

	outcome, ok := c.Lookup(ctx, url)
	require.True(t, ok)
	require.True(t, outcome.HasIdentity())
}

func TestIdentityCache_Reset(t *testing.T) {
	c := NewIdentityCache(time.Minute)
	ctx := context.Background()
	url := manifest.SCMURL("https://example.com/repo.git")

	c.Store(ctx, url, manifest.LookupOutcome{Identity: manifest.Identity("pkg.repo")})
	require.NoError(t, c.Reset(ctx))

	_, ok := c.Lookup(ctx, url)
	require.False(t, ok)
}

func TestIdentityCache_Purge(t *testing.T) {
	c := NewIdentityCache(time.Minute)
	ctx := context.Background()
	a := manifest.SCMURL("https://example.com/a.git")
	b := manifest.SCMURL("https://example.com/b.git")

	c.Store(ctx, a, manifest.LookupOutcome{Identity: manifest.Identity("pkg.a")})
	c.Store(ctx, b, manifest.LookupOutcome{Identity: manifest.Identity("pkg.b")})

	require.NoError(t, c.Purge(ctx, a))

	_, ok := c.Lookup(ctx, a)
	require.False(t, ok)
	_, ok = c.Lookup(ctx, b)
	require.True(t, ok)
}

func TestIdentityCache_Stats(t *testing.T) {
	c := NewIdentityCache(time.Minute)
	ctx := context.Background()
	url := manifest.SCMURL("https://example.com/repo.git")

	c.Lookup(ctx, url)
	c.Store(ctx, url, manifest.LookupOutcome{Identity: manifest.Identity("pkg.repo")})
	c.Lookup(ctx, url)

	stats := c.Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, int64(1), stats.Misses)
	require.Equal(t, 1, stats.Size)
}

func TestIdentityCache_DefaultTTLWhenZero(t *testing.T) {
	c := NewIdentityCache(0)
	require.Equal(t, DefaultExpiration, c.ttl)
}

// Package mapper implements the Identity Mapper (spec.md §4.2): for one
// source-control URL, consult the cache or call the registry, normalize
// the result, and write back.
package mapper

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/manifestry/regmanifest/internal/cache"
	"github.com/manifestry/regmanifest/internal/manifest"
	"github.com/manifestry/regmanifest/internal/registryclient"
)

// ErrLookupFailure wraps a registry client error. It never escapes the
// mapper's caller; the dispatcher converts it to a warning.
var ErrLookupFailure = errors.New("mapper: registry lookup failed")

// Mapper resolves a single source-control URL to a registry identity,
// using cache as the Identity Cache (spec.md §4.1) in front of client.
type Mapper struct {
	cache  *cache.IdentityCache
	client registryclient.Client
}

// New builds a Mapper over cache and client.
func New(cache *cache.IdentityCache, client registryclient.Client) *Mapper {
	return &Mapper{cache: cache, client: client}
}

// Map resolves url to an identity, or the zero Identity ("") if none was
// found. A non-nil error is always ErrLookupFailure-wrapped and carries
// the registry's underlying error; a cancelled ctx is returned unwrapped
// so errors.Is(err, context.Canceled) keeps working.
//
// Steps follow spec.md §4.2 exactly: a cached success entry (positive or
// negative) is returned without touching the registry; a cache miss calls
// the registry, sorts the returned identities, stores and returns the
// first.
func (m *Mapper) Map(ctx context.Context, url manifest.SCMURL) (manifest.Identity, error) {
	if outcome, ok := m.cache.Lookup(ctx, url); ok {
		return outcome.Identity, nil
	}

	identities, err := m.client.LookupIdentities(ctx, url)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		m.cache.Store(ctx, url, manifest.LookupOutcome{Failed: true})
		return "", fmt.Errorf("%w: %w", ErrLookupFailure, err)
	}

	identity := selectFirst(identities)
	m.cache.Store(ctx, url, manifest.LookupOutcome{Identity: identity})
	return identity, nil
}

// selectFirst sorts identities by canonical lexicographic order and
// returns the first, or "" if identities is empty. Stable tie-break per
// spec.md §4.2; open question 1 explicitly flags this policy as
// provisional — do not change it without an explicit decision.
func selectFirst(identities []manifest.Identity) manifest.Identity {
	if len(identities) == 0 {
		return ""
	}
	sorted := make([]manifest.Identity, len(identities))
	copy(sorted, identities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})
	return sorted[0]
}

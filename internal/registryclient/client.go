// Package registryclient provides the registry-side external collaborator
// the core depends on only through the Client interface (spec.md §6,
// "Registry client"). The core never imports a concrete implementation;
// these exist so the decorator can be exercised end to end without a real
// registry service.
package registryclient

import (
	"context"

	"github.com/manifestry/regmanifest/internal/manifest"
)

// Client resolves a source-control URL to the set of registry identities
// that claim it. The core takes the sorted-first element and ignores the
// rest (spec.md §4.2, open question 1 — provisional, not to be changed
// without an explicit policy decision).
type Client interface {
	LookupIdentities(ctx context.Context, url manifest.SCMURL) ([]manifest.Identity, error)
}

// Package dispatcher implements the Transformation Dispatcher (spec.md
// §4.3): for one manifest, fan out one lookup task per eligible dependency
// and gather the results deterministically by dependency position.
package dispatcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/manifestry/regmanifest/internal/manifest"
	"github.com/manifestry/regmanifest/internal/mapper"
	"github.com/manifestry/regmanifest/internal/obs"
)

// Result is keyed by dependency index in the manifest's dependency list.
// Only indices that should be rewritten are present.
type Result map[int]manifest.Identity

// Dispatch walks deps, spawning one concurrent lookup per
// sourceControl(remote(url)) dependency, and returns a Result mapping the
// index of every dependency that resolved to a non-empty identity.
//
// A lookup failure never fails the overall call: it is absorbed into a
// warning on channel and the dependency is left out of Result (spec.md
// §4.3 step 3, §7 LookupFailure). Cancellation propagates: once ctx is
// cancelled, Dispatch returns ctx.Err() and commits no result at all — the
// structured-concurrency scope only publishes after every child has
// joined, so a cancelled run cannot produce a partial Result.
func Dispatch(ctx context.Context, m *mapper.Mapper, channel obs.Channel, deps []manifest.Dependency) (Result, error) {
	type taskResult struct {
		index    int
		identity manifest.Identity
		found    bool
	}

	results := make([]taskResult, len(deps))
	var wg sync.WaitGroup

	for i, dep := range deps {
		sc, remote, ok := manifest.IsRemoteSourceControl(dep)
		if !ok {
			continue
		}

		wg.Add(1)
		go func(index int, sc manifest.SourceControlDependency, url manifest.SCMURL) {
			defer wg.Done()

			identity, err := m.Map(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				channel.Warning(fmt.Sprintf("failed querying registry identity for '%s'", url), err)
				return
			}
			if identity == "" {
				return
			}
			results[index] = taskResult{index: index, identity: identity, found: true}
		}(i, sc, remote.URL)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(Result)
	for _, r := range results {
		if r.found {
			out[r.index] = r.identity
		}
	}
	return out, nil
}

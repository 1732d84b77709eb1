// Package rewriter implements the Manifest Rewriter (spec.md §4.4): given
// the dispatcher's identity assignments and a transformation mode, produce
// a new manifest with rewritten dependencies and, if a rewrite changed a
// declared name, rewritten target cross-references.
package rewriter

import (
	"fmt"
	"strings"

	"github.com/manifestry/regmanifest/internal/dispatcher"
	"github.com/manifestry/regmanifest/internal/manifest"
	"github.com/manifestry/regmanifest/internal/obs"
)

// Rewrite applies mode to man's dependencies using assignments (the
// dispatcher's Result), rewrites target cross-references if any
// declared-name change occurred, and returns a new manifest. man is never
// mutated.
//
// Returns manifest.ErrInternalInvariant if assignments names an index that
// is not a sourceControl(remote(_)) dependency, or if a requirement
// conversion reaches an unreachable case — both indicate a dispatcher/
// rewriter contract violation, never a malformed input.
func Rewrite(channel obs.Channel, man manifest.Manifest, mode manifest.Mode, assignments dispatcher.Result) (manifest.Manifest, error) {
	deps, crossRefs, err := rewriteDependencies(channel, man.Dependencies, mode, assignments)
	if err != nil {
		return manifest.Manifest{}, err
	}

	targets := man.Targets
	if len(crossRefs) > 0 {
		targets = rewriteTargets(man.Targets, crossRefs)
	}

	return man.WithDependenciesAndTargets(deps, targets), nil
}

// rewriteDependencies implements Step A. crossRefs maps a lowercased
// declared name to the registry identity's canonical string, populated
// only by swizzle rewrites of exact/range requirements (spec.md §4.4 Step A).
func rewriteDependencies(channel obs.Channel, deps []manifest.Dependency, mode manifest.Mode, assignments dispatcher.Result) ([]manifest.Dependency, map[string]string, error) {
	out := make([]manifest.Dependency, len(deps))
	crossRefs := make(map[string]string)

	for i, dep := range deps {
		identity, assigned := assignments[i]
		if !assigned {
			out[i] = dep
			continue
		}

		sc, remote, ok := manifest.IsRemoteSourceControl(dep)
		if !ok {
			return nil, nil, fmt.Errorf("%w: dispatcher assigned identity %q to non-eligible dependency at index %d", manifest.ErrInternalInvariant, identity, i)
		}

		rewritten, crossRef, err := rewriteOne(channel, sc, remote, mode, identity)
		if err != nil {
			return nil, nil, err
		}
		out[i] = rewritten
		if crossRef != "" {
			crossRefs[strings.ToLower(sc.DeclaredName)] = crossRef
		}
	}

	return out, crossRefs, nil
}

func rewriteOne(channel obs.Channel, sc manifest.SourceControlDependency, remote manifest.RemoteLocation, mode manifest.Mode, identity manifest.Identity) (manifest.Dependency, string, error) {
	switch mode {
	case manifest.ModeIdentity:
		return identityRewrite(channel, sc, remote, identity), "", nil

	case manifest.ModeSwizzle:
		if manifest.RepresentableInRegistry(sc.Requirement) {
			converted, err := convertRequirement(sc.Requirement)
			if err != nil {
				return nil, "", err
			}
			reg := manifest.RegistryDependency{
				Identity:      identity,
				Requirement:   converted,
				ProductFilter: sc.ProductFilter,
				Traits:        sc.Traits,
			}
			channel.Info(fmt.Sprintf("swizzling '%s' with registry dependency '%s'.", remote.URL, identity))
			return reg, identity.String(), nil
		}
		// branch/revision requirements can't be represented in a registry
		// dependency; fall back to an identity rewrite with no cross-reference.
		return identityRewrite(channel, sc, remote, identity), "", nil

	default:
		return nil, "", fmt.Errorf("%w: rewrite invoked with mode %q", manifest.ErrInternalInvariant, mode)
	}
}

func identityRewrite(channel obs.Channel, sc manifest.SourceControlDependency, remote manifest.RemoteLocation, identity manifest.Identity) manifest.Dependency {
	channel.Info(fmt.Sprintf("adjusting '%s' identity to registry identity of '%s'.", remote.URL, identity))
	out := sc
	out.Identity = identity
	return out
}

// convertRequirement implements the source-control-to-registry conversion
// spec.md §4.4 defines only for exact and range requirements. Every other
// input indicates the caller failed to guard with RepresentableInRegistry.
func convertRequirement(r manifest.Requirement) (manifest.Requirement, error) {
	switch v := r.(type) {
	case manifest.ExactRequirement:
		return manifest.ExactRequirement{Version: v.Version}, nil
	case manifest.RangeRequirement:
		return manifest.RangeRequirement{Low: v.Low, High: v.High}, nil
	default:
		return nil, fmt.Errorf("%w: requirement conversion reached an unreachable case: %T", manifest.ErrInternalInvariant, r)
	}
}

// rewriteTargets implements Step B: updates cross-references inside every
// target's dependency list. target(...) items (PlainTargetDependency) are
// never mutated (invariant 4).
func rewriteTargets(targets []manifest.Target, crossRefs map[string]string) []manifest.Target {
	out := make([]manifest.Target, len(targets))
	for i, t := range targets {
		out[i] = t.WithDependencies(rewriteTargetDeps(t.Dependencies, crossRefs))
	}
	return out
}

func rewriteTargetDeps(deps []manifest.TargetDependency, crossRefs map[string]string) []manifest.TargetDependency {
	out := make([]manifest.TargetDependency, len(deps))
	for i, dep := range deps {
		switch d := dep.(type) {
		case manifest.ProductTargetDependency:
			if d.PackageName != nil {
				if mapped, ok := crossRefs[strings.ToLower(*d.PackageName)]; ok {
					replaced := mapped
					d.PackageName = &replaced
				}
			}
			out[i] = d

		case manifest.ByNameTargetDependency:
			if mapped, ok := crossRefs[strings.ToLower(d.Name)]; ok {
				replaced := mapped
				out[i] = manifest.ProductTargetDependency{
					Name:          d.Name,
					PackageName:   &replaced,
					ModuleAliases: map[string]string{},
					Condition:     d.Condition,
				}
				continue
			}
			out[i] = d

		default:
			// PlainTargetDependency and any other kind: never mutated.
			out[i] = dep
		}
	}
	return out
}

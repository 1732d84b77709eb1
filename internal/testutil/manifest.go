// Package testutil provides fluent builders for constructing manifest
// fixtures in tests, mirroring the way real manifests are put together
// without hand-rolling every struct literal at each call site.
package testutil

import "github.com/manifestry/regmanifest/internal/manifest"

// ManifestBuilder accumulates dependencies and targets and assembles them
// into a manifest.Manifest.
type ManifestBuilder struct {
	displayName  string
	identity     string
	path         string
	kind         string
	location     string
	toolsVersion string
	dependencies []manifest.Dependency
	targets      []manifest.Target
}

// NewManifest creates a builder for the given display name.
func NewManifest(displayName string) *ManifestBuilder {
	return &ManifestBuilder{displayName: displayName}
}

// WithIdentity sets the manifest's own registry identity.
func (b *ManifestBuilder) WithIdentity(identity string) *ManifestBuilder {
	b.identity = identity
	return b
}

// WithPath sets the manifest's on-disk path.
func (b *ManifestBuilder) WithPath(path string) *ManifestBuilder {
	b.path = path
	return b
}

// WithToolsVersion sets the declared tools version.
func (b *ManifestBuilder) WithToolsVersion(version string) *ManifestBuilder {
	b.toolsVersion = version
	return b
}

// WithDependency appends a dependency.
func (b *ManifestBuilder) WithDependency(dep manifest.Dependency) *ManifestBuilder {
	b.dependencies = append(b.dependencies, dep)
	return b
}

// WithDependencies appends multiple dependencies.
func (b *ManifestBuilder) WithDependencies(deps ...manifest.Dependency) *ManifestBuilder {
	b.dependencies = append(b.dependencies, deps...)
	return b
}

// WithTarget appends a target.
func (b *ManifestBuilder) WithTarget(target manifest.Target) *ManifestBuilder {
	b.targets = append(b.targets, target)
	return b
}

// WithTargets appends multiple targets.
func (b *ManifestBuilder) WithTargets(targets ...manifest.Target) *ManifestBuilder {
	b.targets = append(b.targets, targets...)
	return b
}

// Build assembles the accumulated state into a manifest.Manifest.
func (b *ManifestBuilder) Build() manifest.Manifest {
	return manifest.Manifest{
		DisplayName:  b.displayName,
		Identity:     manifest.Identity(b.identity),
		Path:         b.path,
		ToolsVersion: b.toolsVersion,
		Dependencies: b.dependencies,
		Targets:      b.targets,
	}
}

package testutil

import "github.com/manifestry/regmanifest/internal/manifest"

// TargetBuilder accumulates target-dependency items for a manifest.Target.
type TargetBuilder struct {
	name         string
	kind         string
	path         string
	dependencies []manifest.TargetDependency
}

// NewTarget creates a builder for the given target name.
func NewTarget(name string) *TargetBuilder {
	return &TargetBuilder{name: name, kind: "regular"}
}

// WithKind overrides the target kind (default "regular").
func (b *TargetBuilder) WithKind(kind string) *TargetBuilder {
	b.kind = kind
	return b
}

// WithPath sets the target's source path.
func (b *TargetBuilder) WithPath(path string) *TargetBuilder {
	b.path = path
	return b
}

// WithDependency appends a target dependency item.
func (b *TargetBuilder) WithDependency(dep manifest.TargetDependency) *TargetBuilder {
	b.dependencies = append(b.dependencies, dep)
	return b
}

// WithDependencies appends multiple target dependency items.
func (b *TargetBuilder) WithDependencies(deps ...manifest.TargetDependency) *TargetBuilder {
	b.dependencies = append(b.dependencies, deps...)
	return b
}

// Build assembles the accumulated state into a manifest.Target.
func (b *TargetBuilder) Build() manifest.Target {
	return manifest.Target{
		Name:         b.name,
		Kind:         b.kind,
		Path:         b.path,
		Dependencies: b.dependencies,
	}
}

// ProductTargetDep builds a ProductTargetDependency, optionally qualified
// by a declaring package name.
func ProductTargetDep(name string, packageName ...string) manifest.TargetDependency {
	dep := manifest.ProductTargetDependency{Name: name}
	if len(packageName) > 0 {
		dep.PackageName = &packageName[0]
	}
	return dep
}

// ByNameTargetDep builds a ByNameTargetDependency.
func ByNameTargetDep(name string) manifest.TargetDependency {
	return manifest.ByNameTargetDependency{Name: name}
}

// PlainTargetDep builds a PlainTargetDependency.
func PlainTargetDep(name string) manifest.TargetDependency {
	return manifest.PlainTargetDependency{Name: name}
}

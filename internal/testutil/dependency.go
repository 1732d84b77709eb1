package testutil

import "github.com/manifestry/regmanifest/internal/manifest"

// SourceControlDep builds a SourceControlDependency cloned from a remote
// URL, pinned by an exact version unless a RequirementOption overrides it.
func SourceControlDep(declaredName, url string, opts ...SCDepOption) manifest.Dependency {
	dep := manifest.SourceControlDependency{
		DeclaredName: declaredName,
		Location:     manifest.RemoteLocation{URL: manifest.SCMURL(url)},
		Requirement:  manifest.ExactRequirement{Version: "1.0.0"},
	}
	for _, opt := range opts {
		opt(&dep)
	}
	return dep
}

// LocalSourceControlDep builds a SourceControlDependency cloned from a
// local filesystem path — never eligible for registry-aware rewriting.
func LocalSourceControlDep(declaredName, path string, opts ...SCDepOption) manifest.Dependency {
	dep := manifest.SourceControlDependency{
		DeclaredName: declaredName,
		Location:     manifest.LocalLocation{Path: path},
		Requirement:  manifest.ExactRequirement{Version: "1.0.0"},
	}
	for _, opt := range opts {
		opt(&dep)
	}
	return dep
}

// RegistryDep builds a RegistryDependency for an already-known identity.
func RegistryDep(identity string, opts ...RegistryDepOption) manifest.Dependency {
	dep := manifest.RegistryDependency{
		Identity:    manifest.Identity(identity),
		Requirement: manifest.ExactRequirement{Version: "1.0.0"},
	}
	for _, opt := range opts {
		opt(&dep)
	}
	return dep
}

// FilesystemDep builds a FilesystemDependency, never eligible for
// transformation.
func FilesystemDep(path string) manifest.Dependency {
	return manifest.FilesystemDependency{Path: path}
}

// SCDepOption configures a SourceControlDependency during construction.
type SCDepOption func(*manifest.SourceControlDependency)

// RegistryDepOption configures a RegistryDependency during construction.
type RegistryDepOption func(*manifest.RegistryDependency)

// WithRequirement overrides a SourceControlDependency's requirement.
func WithRequirement(req manifest.Requirement) SCDepOption {
	return func(d *manifest.SourceControlDependency) { d.Requirement = req }
}

// WithRegistryRequirement overrides a RegistryDependency's requirement.
func WithRegistryRequirement(req manifest.Requirement) RegistryDepOption {
	return func(d *manifest.RegistryDependency) { d.Requirement = req }
}

// WithProductFilter sets a SourceControlDependency's product filter.
func WithProductFilter(products ...string) SCDepOption {
	return func(d *manifest.SourceControlDependency) { d.ProductFilter = products }
}

// WithRegistryProductFilter sets a RegistryDependency's product filter.
func WithRegistryProductFilter(products ...string) RegistryDepOption {
	return func(d *manifest.RegistryDependency) { d.ProductFilter = products }
}

// WithIdentity pre-seeds a SourceControlDependency's identity field, as if
// a prior transformation pass had already resolved it.
func WithIdentity(identity string) SCDepOption {
	return func(d *manifest.SourceControlDependency) { d.Identity = manifest.Identity(identity) }
}

// Exact builds an ExactRequirement.
func Exact(version string) manifest.Requirement {
	return manifest.ExactRequirement{Version: version}
}

// Range builds a RangeRequirement.
func Range(low, high string) manifest.Requirement {
	return manifest.RangeRequirement{Low: low, High: high}
}

// Branch builds a BranchRequirement.
func Branch(name string) manifest.Requirement {
	return manifest.BranchRequirement{Name: name}
}

// Revision builds a RevisionRequirement.
func Revision(id string) manifest.Requirement {
	return manifest.RevisionRequirement{ID: id}
}

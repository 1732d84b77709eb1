package manifest

// Location is a closed variant over where a source-control dependency is
// cloned from: a local path, or a remote URL. Only Remote is eligible for
// registry-aware transformation.
type Location interface {
	locationVariant()
}

// LocalLocation is a dependency checked out from a path on disk. Never
// eligible for transformation.
type LocalLocation struct {
	Path string
}

func (LocalLocation) locationVariant() {}

// RemoteLocation is a dependency cloned from a VCS URL. Eligible for
// transformation.
type RemoteLocation struct {
	URL SCMURL
}

func (RemoteLocation) locationVariant() {}

// Dependency is a closed variant over the kinds of dependency a manifest
// can declare. FilesystemDependency stands in for "other kinds (local
// filesystem etc.)" from the spec: passed through unchanged by every
// component in this core.
type Dependency interface {
	dependencyVariant()
}

// SourceControlDependency is resolved by cloning a VCS location at some
// ref that satisfies Requirement.
type SourceControlDependency struct {
	Identity     Identity
	DeclaredName string
	Location     Location
	Requirement  Requirement
	ProductFilter []string
	Traits       []string
}

func (SourceControlDependency) dependencyVariant() {}

// RegistryDependency is resolved by fetching a named package at a version
// from a registry service. Requirement must never be a branch or revision
// requirement — invariant 3 of the spec.
type RegistryDependency struct {
	Identity      Identity
	Requirement   Requirement
	ProductFilter []string
	Traits        []string
}

func (RegistryDependency) dependencyVariant() {}

// FilesystemDependency is a local, non-remote dependency. Never eligible
// for transformation; carried through by value.
type FilesystemDependency struct {
	Path string
}

func (FilesystemDependency) dependencyVariant() {}

// IsRemoteSourceControl reports whether dep is a SourceControlDependency
// whose Location is a RemoteLocation, i.e. the only shape eligible for
// registry-aware transformation.
func IsRemoteSourceControl(dep Dependency) (SourceControlDependency, RemoteLocation, bool) {
	scd, ok := dep.(SourceControlDependency)
	if !ok {
		return SourceControlDependency{}, RemoteLocation{}, false
	}
	remote, ok := scd.Location.(RemoteLocation)
	if !ok {
		return SourceControlDependency{}, RemoteLocation{}, false
	}
	return scd, remote, true
}

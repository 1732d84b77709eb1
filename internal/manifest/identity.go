// Package manifest defines the data model for the registry-aware manifest
// transformation core: package identities, version requirements, the
// dependency and target-dependency variants, and the manifest record
// itself. Nothing in this package talks to a registry, a filesystem, or a
// cache — it is pure data.
package manifest

// Identity is the opaque, comparable, sortable canonical name of a logical
// package, independent of its origin (source control or registry). Two
// identities compare equal iff they denote the same logical package.
type Identity string

// Less orders identities by their canonical string form. The mapper uses
// this for the deterministic "sorted-first" tie-break among multiple
// registry-reported identities for the same URL.
func (i Identity) Less(other Identity) bool {
	return string(i) < string(other)
}

// String returns the canonical string form of the identity.
func (i Identity) String() string {
	return string(i)
}

// SCMURL is the opaque source-control URL used as the identity cache key.
// Equality is byte-exact; no normalization is performed by this core.
type SCMURL string

// String returns the URL's literal form.
func (u SCMURL) String() string {
	return string(u)
}

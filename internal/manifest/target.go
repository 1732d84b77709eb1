package manifest

// Condition is an opaque build condition (platform filters and the like)
// attached to a target-dependency item. This core never inspects it; it is
// carried through by value.
type Condition struct {
	Platforms []string
}

// TargetDependency is a closed variant over the ways a target can
// reference a dependency. Only Product and ByName carry a cross-reference
// to a declaring package name that may need rewriting when that package's
// declared name changes.
type TargetDependency interface {
	targetDependencyVariant()
}

// ProductTargetDependency references a product by name, optionally
// qualified by the package that declares it. PackageName is nil when the
// manifest author left the package unqualified (single-package lookup).
type ProductTargetDependency struct {
	Name          string
	PackageName   *string
	ModuleAliases map[string]string
	Condition     *Condition
}

func (ProductTargetDependency) targetDependencyVariant() {}

// ByNameTargetDependency references a dependency by a bare name that is
// resolved against either a product or a target at build time. It carries
// a cross-reference to a declaring package name only implicitly — via
// Name — and gets promoted to a ProductTargetDependency when that name is
// rewritten (spec.md §4.4 Step B).
type ByNameTargetDependency struct {
	Name      string
	Condition *Condition
}

func (ByNameTargetDependency) targetDependencyVariant() {}

// PlainTargetDependency references another target in the same manifest by
// name. Never carries a package cross-reference and is never mutated by
// this core (invariant 4 of the spec).
type PlainTargetDependency struct {
	Name string
}

func (PlainTargetDependency) targetDependencyVariant() {}

// Target is a manifest target description. Extra carries every field this
// core does not model explicitly (resources, settings, plugin usages, ...)
// so that round-tripping a manifest never drops information the core
// doesn't understand.
type Target struct {
	Name         string
	Kind         string
	Path         string
	Dependencies []TargetDependency
	Extra        map[string]any
}

// WithDependencies returns a copy of t with Dependencies replaced, every
// other field — including Extra — carried through by value.
func (t Target) WithDependencies(deps []TargetDependency) Target {
	out := t
	out.Dependencies = deps
	return out
}

package rewriter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manifestry/regmanifest/internal/dispatcher"
	"github.com/manifestry/regmanifest/internal/manifest"
)

type noopChannel struct {
	infos    []string
	warnings []string
}

func (c *noopChannel) Info(msg string, fields ...any)               { c.infos = append(c.infos, msg) }
func (c *noopChannel) Warning(msg string, err error, fields ...any) { c.warnings = append(c.warnings, msg) }
func (c *noopChannel) Error(msg string, err error, fields ...any)   {}

func swiftNioDep() manifest.SourceControlDependency {
	return manifest.SourceControlDependency{
		Identity:     "swift-nio",
		DeclaredName: "swift-nio",
		Location:     manifest.RemoteLocation{URL: "https://github.com/apple/swift-nio"},
		Requirement:  manifest.ExactRequirement{Version: "2.0.0"},
	}
}

// S1: identity mode, happy path.
func TestRewrite_S1_IdentityMode(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{
			swiftNioDep(),
			manifest.FilesystemDependency{Path: "/local/pkg"},
		},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeIdentity, assignments)
	require.NoError(t, err)

	got := out.Dependencies[0].(manifest.SourceControlDependency)
	require.Equal(t, manifest.Identity("apple.swift-nio"), got.Identity)
	require.Equal(t, manifest.ExactRequirement{Version: "2.0.0"}, got.Requirement)
	require.Equal(t, man.Dependencies[1], out.Dependencies[1])
	require.Len(t, ch.infos, 1)
}

// S2: swizzle mode, exact requirement, with a by_name cross-reference.
func TestRewrite_S2_SwizzleModeExact(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{swiftNioDep()},
		Targets: []manifest.Target{
			{
				Name: "MyTarget",
				Dependencies: []manifest.TargetDependency{
					manifest.ByNameTargetDependency{Name: "swift-nio"},
				},
			},
		},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeSwizzle, assignments)
	require.NoError(t, err)

	reg := out.Dependencies[0].(manifest.RegistryDependency)
	require.Equal(t, manifest.Identity("apple.swift-nio"), reg.Identity)
	require.Equal(t, manifest.ExactRequirement{Version: "2.0.0"}, reg.Requirement)

	promoted := out.Targets[0].Dependencies[0].(manifest.ProductTargetDependency)
	require.Equal(t, "swift-nio", promoted.Name)
	require.NotNil(t, promoted.PackageName)
	require.Equal(t, "apple.swift-nio", *promoted.PackageName)
	require.Empty(t, promoted.ModuleAliases)
}

// S3: swizzle mode, branch requirement falls back to identity rewrite.
func TestRewrite_S3_SwizzleModeBranchFallsBackToIdentity(t *testing.T) {
	ch := &noopChannel{}
	dep := swiftNioDep()
	dep.Requirement = manifest.BranchRequirement{Name: "main"}
	man := manifest.Manifest{Dependencies: []manifest.Dependency{dep}}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeSwizzle, assignments)
	require.NoError(t, err)

	got, ok := out.Dependencies[0].(manifest.SourceControlDependency)
	require.True(t, ok, "branch requirement must stay sourceControl, not be swizzled")
	require.Equal(t, manifest.Identity("apple.swift-nio"), got.Identity)
	require.Equal(t, manifest.BranchRequirement{Name: "main"}, got.Requirement)
}

// S6: multiple identities returned by the registry select "a.foo" — this
// is exercised at the mapper layer; here we confirm the rewriter applies
// whatever the dispatcher assigned without re-deriving it.
func TestRewrite_S6_UsesAssignedIdentityVerbatim(t *testing.T) {
	ch := &noopChannel{}
	dep := manifest.SourceControlDependency{
		DeclaredName: "foo",
		Location:     manifest.RemoteLocation{URL: "https://example.com/foo.git"},
		Requirement:  manifest.ExactRequirement{Version: "1.0.0"},
	}
	man := manifest.Manifest{Dependencies: []manifest.Dependency{dep}}
	assignments := dispatcher.Result{0: "a.foo"}

	out, err := Rewrite(ch, man, manifest.ModeIdentity, assignments)
	require.NoError(t, err)
	got := out.Dependencies[0].(manifest.SourceControlDependency)
	require.Equal(t, manifest.Identity("a.foo"), got.Identity)
}

func TestRewrite_NoAssignmentsCarriesThroughUnchanged(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{swiftNioDep()},
		Targets: []manifest.Target{
			{Dependencies: []manifest.TargetDependency{manifest.ByNameTargetDependency{Name: "swift-nio"}}},
		},
	}

	out, err := Rewrite(ch, man, manifest.ModeIdentity, dispatcher.Result{})
	require.NoError(t, err)
	require.Equal(t, man.Dependencies, out.Dependencies)
	require.Equal(t, man.Targets, out.Targets)
}

func TestRewrite_InvariantViolation_AssignedToIneligibleDependency(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{manifest.FilesystemDependency{Path: "/local/pkg"}},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	_, err := Rewrite(ch, man, manifest.ModeIdentity, assignments)
	require.ErrorIs(t, err, manifest.ErrInternalInvariant)
}

func TestRewrite_ProductDependency_PackageNameRewrite(t *testing.T) {
	ch := &noopChannel{}
	pkgName := "swift-nio"
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{swiftNioDep()},
		Targets: []manifest.Target{
			{
				Dependencies: []manifest.TargetDependency{
					manifest.ProductTargetDependency{Name: "NIO", PackageName: &pkgName},
				},
			},
		},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeSwizzle, assignments)
	require.NoError(t, err)

	got := out.Targets[0].Dependencies[0].(manifest.ProductTargetDependency)
	require.Equal(t, "apple.swift-nio", *got.PackageName)
}

func TestRewrite_PlainTargetDependencyNeverMutated(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{swiftNioDep()},
		Targets: []manifest.Target{
			{Dependencies: []manifest.TargetDependency{manifest.PlainTargetDependency{Name: "swift-nio"}}},
		},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeSwizzle, assignments)
	require.NoError(t, err)
	require.Equal(t, manifest.PlainTargetDependency{Name: "swift-nio"}, out.Targets[0].Dependencies[0])
}

func TestRewrite_CrossReferenceCaseInsensitive(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		Dependencies: []manifest.Dependency{swiftNioDep()},
		Targets: []manifest.Target{
			{Dependencies: []manifest.TargetDependency{manifest.ByNameTargetDependency{Name: "Swift-NIO"}}},
		},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeSwizzle, assignments)
	require.NoError(t, err)

	got := out.Targets[0].Dependencies[0].(manifest.ProductTargetDependency)
	require.Equal(t, "apple.swift-nio", *got.PackageName)
}

func TestRewrite_UnrelatedFieldsCarriedThrough(t *testing.T) {
	ch := &noopChannel{}
	man := manifest.Manifest{
		DisplayName:  "MyPackage",
		Version:      "1.2.3",
		ToolsVersion: "5.9",
		Extra:        map[string]any{"swiftLanguageVersion": "5"},
		Dependencies: []manifest.Dependency{swiftNioDep()},
	}
	assignments := dispatcher.Result{0: "apple.swift-nio"}

	out, err := Rewrite(ch, man, manifest.ModeIdentity, assignments)
	require.NoError(t, err)
	require.Equal(t, "MyPackage", out.DisplayName)
	require.Equal(t, "1.2.3", out.Version)
	require.Equal(t, "5.9", out.ToolsVersion)
	require.Equal(t, man.Extra, out.Extra)
}

package yamlloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manifestry/regmanifest/internal/loader"
	"github.com/manifestry/regmanifest/internal/manifest"
)

const fixtureYAML = `
display_name: MyPackage
identity: my.package
tools_version: "5.9"
dependencies:
  - type: sourceControl
    declared_name: swift-nio
    location:
      type: remote
      url: https://github.com/apple/swift-nio
    requirement:
      type: exact
      version: "2.0.0"
  - type: filesystem
    path: /local/pkg
targets:
  - name: MyTarget
    kind: regular
    dependencies:
      - type: byName
        name: swift-nio
`

func writeYAML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestYAMLLoader_Load(t *testing.T) {
	path := writeYAML(t, fixtureYAML)
	l := NewYAMLLoader(path)

	man, err := l.Load(context.Background(), loader.LoadRequest{})
	require.NoError(t, err)

	require.Equal(t, "MyPackage", man.DisplayName)
	require.Len(t, man.Dependencies, 2)

	sc, ok := man.Dependencies[0].(manifest.SourceControlDependency)
	require.True(t, ok)
	require.Equal(t, "swift-nio", sc.DeclaredName)
	require.Equal(t, manifest.RemoteLocation{URL: "https://github.com/apple/swift-nio"}, sc.Location)
	require.Equal(t, manifest.ExactRequirement{Version: "2.0.0"}, sc.Requirement)

	fs, ok := man.Dependencies[1].(manifest.FilesystemDependency)
	require.True(t, ok)
	require.Equal(t, "/local/pkg", fs.Path)

	require.Len(t, man.Targets, 1)
	byName, ok := man.Targets[0].Dependencies[0].(manifest.ByNameTargetDependency)
	require.True(t, ok)
	require.Equal(t, "swift-nio", byName.Name)
}

func TestYAMLLoader_UnknownDependencyType(t *testing.T) {
	path := writeYAML(t, "dependencies:\n  - type: bogus\n")
	l := NewYAMLLoader(path)

	_, err := l.Load(context.Background(), loader.LoadRequest{})
	require.Error(t, err)
}

func TestYAMLLoader_ResetAndPurgeAreNoOps(t *testing.T) {
	path := writeYAML(t, fixtureYAML)
	l := NewYAMLLoader(path)

	require.NoError(t, l.ResetCache(context.Background()))
	require.NoError(t, l.PurgeCache(context.Background()))
}

func TestYAMLLoader_MissingFile(t *testing.T) {
	l := NewYAMLLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := l.Load(context.Background(), loader.LoadRequest{})
	require.Error(t, err)
}

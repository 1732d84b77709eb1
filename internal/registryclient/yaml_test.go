package registryclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manifestry/regmanifest/internal/manifest"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "identities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestYAMLClient_LookupKnownURL(t *testing.T) {
	path := writeFixture(t, `
https://github.com/apple/swift-nio:
  - apple.swift-nio
`)

	c, err := NewYAMLClient(path)
	require.NoError(t, err)

	ids, err := c.LookupIdentities(context.Background(), "https://github.com/apple/swift-nio")
	require.NoError(t, err)
	require.Equal(t, []manifest.Identity{"apple.swift-nio"}, ids)
}

func TestYAMLClient_LookupUnknownURL(t *testing.T) {
	path := writeFixture(t, `
https://github.com/apple/swift-nio:
  - apple.swift-nio
`)

	c, err := NewYAMLClient(path)
	require.NoError(t, err)

	ids, err := c.LookupIdentities(context.Background(), "https://github.com/unknown/repo")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestYAMLClient_MultipleIdentities(t *testing.T) {
	path := writeFixture(t, `
https://github.com/example/foo:
  - z.foo
  - a.foo
`)

	c, err := NewYAMLClient(path)
	require.NoError(t, err)

	ids, err := c.LookupIdentities(context.Background(), "https://github.com/example/foo")
	require.NoError(t, err)
	require.ElementsMatch(t, []manifest.Identity{"z.foo", "a.foo"}, ids)
}

func TestYAMLClient_MissingFile(t *testing.T) {
	_, err := NewYAMLClient(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

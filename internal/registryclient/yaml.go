package registryclient

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/manifestry/regmanifest/internal/manifest"
)

// yamlFixture is the on-disk shape read by YAMLClient: a flat map from
// source-control URL to the registry identities that claim it.
//
//	https://github.com/apple/swift-nio:
//	  - apple.swift-nio
type yamlFixture map[string][]string

// YAMLClient is a Client backed by a static YAML fixture file, used by the
// demo CLI and integration tests in place of a real registry service. It
// never writes back to the file.
type YAMLClient struct {
	mu   sync.RWMutex
	data map[manifest.SCMURL][]manifest.Identity
}

// NewYAMLClient reads and parses the fixture at path.
func NewYAMLClient(path string) (*YAMLClient, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-supplied fixture path
	if err != nil {
		return nil, fmt.Errorf("registryclient: read fixture %q: %w", path, err)
	}

	var fixture yamlFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("registryclient: parse fixture %q: %w", path, err)
	}

	data := make(map[manifest.SCMURL][]manifest.Identity, len(fixture))
	for url, ids := range fixture {
		converted := make([]manifest.Identity, len(ids))
		for i, id := range ids {
			converted[i] = manifest.Identity(id)
		}
		data[manifest.SCMURL(url)] = converted
	}

	return &YAMLClient{data: data}, nil
}

func (c *YAMLClient) LookupIdentities(ctx context.Context, url manifest.SCMURL) ([]manifest.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, ok := c.data[url]
	if !ok {
		return nil, nil
	}
	return ids, nil
}

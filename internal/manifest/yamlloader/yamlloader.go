// Package yamlloader is a reference implementation of loader.Loader that
// reads a manifest fixture from YAML, so the decorator can be driven end
// to end without a real package-manifest parser. It is a demo/test
// collaborator, not part of the core's contract surface.
package yamlloader

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/manifestry/regmanifest/internal/loader"
	"github.com/manifestry/regmanifest/internal/log"
	"github.com/manifestry/regmanifest/internal/manifest"
)

// YAMLLoader loads a single manifest fixture from a YAML file on disk.
// ResetCache and PurgeCache are no-ops that just log — this reference
// loader has no cache of its own to clear.
type YAMLLoader struct {
	mu   sync.Mutex
	path string
}

// NewYAMLLoader builds a loader that reads the fixture at path on every
// Load call, re-reading the file so `regmanifest watch` sees edits.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{path: path}
}

var _ loader.Loader = (*YAMLLoader)(nil)

type fixtureManifest struct {
	DisplayName  string          `yaml:"display_name"`
	Identity     string          `yaml:"identity"`
	Path         string          `yaml:"path"`
	Kind         string          `yaml:"kind"`
	Location     string          `yaml:"location"`
	Platforms    []string        `yaml:"platforms"`
	Version      string          `yaml:"version"`
	Revision     string          `yaml:"revision"`
	ToolsVersion string          `yaml:"tools_version"`
	Products     []string        `yaml:"products"`
	Traits       []string        `yaml:"traits"`
	Extra        map[string]any  `yaml:"extra"`
	Dependencies []fixtureDep    `yaml:"dependencies"`
	Targets      []fixtureTarget `yaml:"targets"`
}

type fixtureLocation struct {
	Type string `yaml:"type"` // "local" | "remote"
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

type fixtureRequirement struct {
	Type    string `yaml:"type"` // "exact" | "range" | "branch" | "revision"
	Version string `yaml:"version"`
	Low     string `yaml:"low"`
	High    string `yaml:"high"`
	Name    string `yaml:"name"`
	ID      string `yaml:"id"`
}

type fixtureDep struct {
	Type          string              `yaml:"type"` // "sourceControl" | "registry" | "filesystem"
	Identity      string              `yaml:"identity"`
	DeclaredName  string              `yaml:"declared_name"`
	Path          string              `yaml:"path"`
	Location      *fixtureLocation    `yaml:"location"`
	Requirement   *fixtureRequirement `yaml:"requirement"`
	ProductFilter []string            `yaml:"product_filter"`
	Traits        []string            `yaml:"traits"`
}

type fixtureCondition struct {
	Platforms []string `yaml:"platforms"`
}

type fixtureTargetDep struct {
	Type          string            `yaml:"type"` // "product" | "byName" | "target"
	Name          string            `yaml:"name"`
	PackageName   *string           `yaml:"package_name"`
	ModuleAliases map[string]string `yaml:"module_aliases"`
	Condition     *fixtureCondition `yaml:"condition"`
}

type fixtureTarget struct {
	Name         string             `yaml:"name"`
	Kind         string             `yaml:"kind"`
	Path         string             `yaml:"path"`
	Dependencies []fixtureTargetDep `yaml:"dependencies"`
	Extra        map[string]any     `yaml:"extra"`
}

// Load reads and converts the YAML file, ignoring req — this reference
// loader is fixture-driven, not path-templated; the fixture path was fixed
// at construction.
func (l *YAMLLoader) Load(ctx context.Context, req loader.LoadRequest) (manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return manifest.Manifest{}, err
	}

	l.mu.Lock()
	path := l.path
	l.mu.Unlock()

	raw, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-supplied fixture path
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("yamlloader: read %q: %w", path, err)
	}

	var fx fixtureManifest
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return manifest.Manifest{}, fmt.Errorf("yamlloader: parse %q: %w", path, err)
	}

	return convert(fx)
}

func (l *YAMLLoader) ResetCache(ctx context.Context) error {
	log.Debug(log.CatLoader, "yamlloader reset_cache no-op")
	return nil
}

func (l *YAMLLoader) PurgeCache(ctx context.Context) error {
	log.Debug(log.CatLoader, "yamlloader purge_cache no-op")
	return nil
}

func convert(fx fixtureManifest) (manifest.Manifest, error) {
	deps := make([]manifest.Dependency, len(fx.Dependencies))
	for i, d := range fx.Dependencies {
		converted, err := convertDependency(d)
		if err != nil {
			return manifest.Manifest{}, fmt.Errorf("dependency %d: %w", i, err)
		}
		deps[i] = converted
	}

	targets := make([]manifest.Target, len(fx.Targets))
	for i, t := range fx.Targets {
		converted, err := convertTarget(t)
		if err != nil {
			return manifest.Manifest{}, fmt.Errorf("target %d: %w", i, err)
		}
		targets[i] = converted
	}

	return manifest.Manifest{
		DisplayName:  fx.DisplayName,
		Identity:     manifest.Identity(fx.Identity),
		Path:         fx.Path,
		Kind:         fx.Kind,
		Location:     fx.Location,
		Platforms:    fx.Platforms,
		Version:      fx.Version,
		Revision:     fx.Revision,
		ToolsVersion: fx.ToolsVersion,
		Dependencies: deps,
		Products:     fx.Products,
		Targets:      targets,
		Traits:       fx.Traits,
		Extra:        fx.Extra,
	}, nil
}

func convertDependency(d fixtureDep) (manifest.Dependency, error) {
	switch d.Type {
	case "sourceControl":
		loc, err := convertLocation(d.Location)
		if err != nil {
			return nil, err
		}
		req, err := convertRequirement(d.Requirement)
		if err != nil {
			return nil, err
		}
		return manifest.SourceControlDependency{
			Identity:      manifest.Identity(d.Identity),
			DeclaredName:  d.DeclaredName,
			Location:      loc,
			Requirement:   req,
			ProductFilter: d.ProductFilter,
			Traits:        d.Traits,
		}, nil

	case "registry":
		req, err := convertRequirement(d.Requirement)
		if err != nil {
			return nil, err
		}
		return manifest.RegistryDependency{
			Identity:      manifest.Identity(d.Identity),
			Requirement:   req,
			ProductFilter: d.ProductFilter,
			Traits:        d.Traits,
		}, nil

	case "filesystem":
		return manifest.FilesystemDependency{Path: d.Path}, nil

	default:
		return nil, fmt.Errorf("yamlloader: unknown dependency type %q", d.Type)
	}
}

func convertLocation(l *fixtureLocation) (manifest.Location, error) {
	if l == nil {
		return nil, fmt.Errorf("yamlloader: sourceControl dependency missing location")
	}
	switch l.Type {
	case "local":
		return manifest.LocalLocation{Path: l.Path}, nil
	case "remote":
		return manifest.RemoteLocation{URL: manifest.SCMURL(l.URL)}, nil
	default:
		return nil, fmt.Errorf("yamlloader: unknown location type %q", l.Type)
	}
}

func convertRequirement(r *fixtureRequirement) (manifest.Requirement, error) {
	if r == nil {
		return nil, fmt.Errorf("yamlloader: dependency missing requirement")
	}
	switch r.Type {
	case "exact":
		return manifest.ExactRequirement{Version: r.Version}, nil
	case "range":
		return manifest.RangeRequirement{Low: r.Low, High: r.High}, nil
	case "branch":
		return manifest.BranchRequirement{Name: r.Name}, nil
	case "revision":
		return manifest.RevisionRequirement{ID: r.ID}, nil
	default:
		return nil, fmt.Errorf("yamlloader: unknown requirement type %q", r.Type)
	}
}

func convertTarget(t fixtureTarget) (manifest.Target, error) {
	deps := make([]manifest.TargetDependency, len(t.Dependencies))
	for i, d := range t.Dependencies {
		converted, err := convertTargetDep(d)
		if err != nil {
			return manifest.Target{}, fmt.Errorf("target dependency %d: %w", i, err)
		}
		deps[i] = converted
	}
	return manifest.Target{
		Name:         t.Name,
		Kind:         t.Kind,
		Path:         t.Path,
		Dependencies: deps,
		Extra:        t.Extra,
	}, nil
}

func convertTargetDep(d fixtureTargetDep) (manifest.TargetDependency, error) {
	var condition *manifest.Condition
	if d.Condition != nil {
		condition = &manifest.Condition{Platforms: d.Condition.Platforms}
	}

	switch d.Type {
	case "product":
		return manifest.ProductTargetDependency{
			Name:          d.Name,
			PackageName:   d.PackageName,
			ModuleAliases: d.ModuleAliases,
			Condition:     condition,
		}, nil
	case "byName":
		return manifest.ByNameTargetDependency{Name: d.Name, Condition: condition}, nil
	case "target":
		return manifest.PlainTargetDependency{Name: d.Name}, nil
	default:
		return nil, fmt.Errorf("yamlloader: unknown target dependency type %q", d.Type)
	}
}

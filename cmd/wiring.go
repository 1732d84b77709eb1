package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/manifestry/regmanifest/internal/config"
	"github.com/manifestry/regmanifest/internal/loader"
	"github.com/manifestry/regmanifest/internal/log"
	"github.com/manifestry/regmanifest/internal/manifest/yamlloader"
	"github.com/manifestry/regmanifest/internal/obs"
	"github.com/manifestry/regmanifest/internal/registryclient"
	"github.com/manifestry/regmanifest/internal/tracing"
	"github.com/manifestry/regmanifest/internal/watcher"
)

// buildDecorator wires a Loader Decorator from the resolved config: a
// YAML-fixture underlying loader reading manifestPath, the registry client
// named by cfg.RegistryClient.Kind, and a LogChannel observability
// channel. Returns the decorator, a shutdown func for the tracing
// provider, and an error.
func buildDecorator(cfg config.Config, manifestPath string) (*loader.Decorator, func(context.Context) error, error) {
	mode, err := cfg.ParsedMode()
	if err != nil {
		return nil, nil, fmt.Errorf("cmd: %w", err)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		ServiceName:  cfg.Tracing.ServiceName,
		SampleRate:   1.0,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cmd: constructing trace provider: %w", err)
	}

	client, err := registryclient.New(registryclient.Options{
		Kind:        registryclient.Kind(cfg.RegistryClient.Kind),
		BaseURL:     cfg.RegistryClient.BaseURL,
		FixturePath: cfg.RegistryClient.FixturePath,
		MaxRetries:  uint(cfg.RegistryClient.MaxRetries), //nolint:gosec // G115: CLI-supplied, always small and non-negative
		Tracer:      provider.Tracer(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cmd: %w", err)
	}

	underlying := yamlloader.NewYAMLLoader(manifestPath)
	channel := obs.Multi{obs.NewLogChannel(log.CatLoader)}

	dec, err := loader.New(underlying, client, mode,
		loader.WithCacheTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second),
		loader.WithObservability(channel),
		loader.WithTracer(provider.Tracer()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("cmd: %w", err)
	}

	return dec, provider.Shutdown, nil
}

// newManifestWatcher builds a fsnotify-backed watcher over manifestPath
// using the package's default debounce window.
func newManifestWatcher(manifestPath string) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.DefaultConfig(manifestPath))
	if err != nil {
		return nil, fmt.Errorf("cmd: %w", err)
	}
	return w, nil
}

// Package config provides configuration types and defaults for regmanifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifestry/regmanifest/internal/log"
	"github.com/manifestry/regmanifest/internal/manifest"
)

// Config holds all configuration options for regmanifest.
type Config struct {
	Mode           string               `mapstructure:"mode"`
	Cache          CacheConfig          `mapstructure:"cache"`
	RegistryClient RegistryClientConfig `mapstructure:"registry_client"`
	Tracing        TracingConfig        `mapstructure:"tracing"`
}

// CacheConfig holds Identity Cache configuration.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// RegistryClientConfig selects and configures the registry client
// implementation used to resolve SCM URLs to registry identities.
type RegistryClientConfig struct {
	Kind        string `mapstructure:"kind"` // "mock" (default), "yaml", or "http"
	BaseURL     string `mapstructure:"base_url"`
	FixturePath string `mapstructure:"fixture_path"` // used when kind is "yaml"
	MaxRetries  int    `mapstructure:"max_retries"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// ServiceName identifies this process in exported spans.
	ServiceName string `mapstructure:"service_name"`
}

// ParsedMode parses Mode into a manifest.Mode, defaulting to
// manifest.ModeDisabled when empty.
func (c Config) ParsedMode() (manifest.Mode, error) {
	if c.Mode == "" {
		return manifest.ModeDisabled, nil
	}
	return manifest.ParseMode(c.Mode)
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/regmanifest/traces/traces.jsonl or empty string if the
// home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "regmanifest", "traces", "traces.jsonl")
}

// Validate checks the configuration for errors. Returns nil if the
// configuration is valid (empty values use defaults).
func Validate(cfg Config) error {
	if cfg.Mode != "" {
		if _, err := manifest.ParseMode(cfg.Mode); err != nil {
			return fmt.Errorf("mode: %w", err)
		}
	}

	if cfg.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be >= 0, got %d", cfg.Cache.TTLSeconds)
	}

	switch cfg.RegistryClient.Kind {
	case "", "mock":
	case "yaml":
		if cfg.RegistryClient.FixturePath == "" {
			return fmt.Errorf("registry_client.fixture_path is required when kind is \"yaml\"")
		}
	case "http":
		if cfg.RegistryClient.BaseURL == "" {
			return fmt.Errorf("registry_client.base_url is required when kind is \"http\"")
		}
	default:
		return fmt.Errorf("registry_client.kind must be \"mock\", \"yaml\", or \"http\", got %q", cfg.RegistryClient.Kind)
	}

	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}

	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Mode: "disabled",
		Cache: CacheConfig{
			TTLSeconds: 300,
		},
		RegistryClient: RegistryClientConfig{
			Kind:       "mock",
			MaxRetries: 3,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "none",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			ServiceName:  "regmanifest-core",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# regmanifest configuration

# Transformation mode: "disabled" (default), "identity", or "swizzle"
mode: disabled

# Identity Cache settings
cache:
  ttl_seconds: 300

# Registry client used to resolve SCM URLs to registry identities
registry_client:
  kind: mock       # mock (default), yaml, or http
  # base_url: https://registry.example.com   # required when kind: http
  # fixture_path: ./testdata/identities.yaml  # required when kind: yaml
  max_retries: 3

# Distributed tracing configuration
# tracing:
#   enabled: false
#   exporter: none                 # none, file, stdout, or otlp
#   file_path: ~/.config/regmanifest/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   service_name: regmanifest-core
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}

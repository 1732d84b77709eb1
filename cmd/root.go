// Package cmd implements the regmanifest demo CLI: a thin front-end over
// the loader decorator, useful for driving it against a real manifest
// fixture without embedding it in a package manager.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifestry/regmanifest/internal/config"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "regmanifest",
	Short:   "Registry-aware manifest transformation core",
	Long:    `regmanifest resolves VCS-URL dependencies to registry identities and rewrites package manifests so URL-declared and registry-declared dependencies converge on one identity.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/regmanifest/config.yaml)")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(watchCmd)
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("mode", defaults.Mode)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("registry_client.kind", defaults.RegistryClient.Kind)
	viper.SetDefault("registry_client.max_retries", defaults.RegistryClient.MaxRetries)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .regmanifest/config.yaml (current directory)
		// 2. ~/.config/regmanifest/config.yaml (user config)
		if _, err := os.Stat(".regmanifest/config.yaml"); err == nil {
			viper.SetConfigFile(".regmanifest/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "regmanifest"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".regmanifest/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manifestry/regmanifest/internal/loader"
	"github.com/manifestry/regmanifest/internal/log"
)

var watchCmd = &cobra.Command{
	Use:   "watch <manifest.yaml>",
	Short: "Watch a manifest file and re-run the transformation core on every change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(c *cobra.Command, args []string) error {
	manifestPath := args[0]

	dec, shutdown, err := buildDecorator(cfg, manifestPath)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	w, err := newManifestWatcher(manifestPath)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return fmt.Errorf("cmd: starting watcher: %w", err)
	}

	ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info(log.CatWatcher, "watching manifest for changes", "path", manifestPath)
	reload(ctx, dec, manifestPath)

	for {
		select {
		case <-onChange:
			reload(ctx, dec, manifestPath)
		case <-ctx.Done():
			return nil
		}
	}
}

func reload(ctx context.Context, dec *loader.Decorator, manifestPath string) {
	man, err := dec.Load(ctx, loader.LoadRequest{})
	if err != nil {
		log.ErrorErr(log.CatWatcher, "reload failed", err, "path", manifestPath)
		return
	}
	stats := dec.CacheStats()
	log.Info(log.CatWatcher, "reloaded manifest", "path", manifestPath,
		"dependency_count", len(man.Dependencies), "cache_hits", stats.Hits, "cache_misses", stats.Misses)
}

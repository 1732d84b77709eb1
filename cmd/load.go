package cmd

import (
	"context"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/manifestry/regmanifest/internal/loader"
	"github.com/manifestry/regmanifest/internal/manifest/yamlloader"
)

var (
	loadModeFlag string
	loadDiffFlag bool
)

var loadCmd = &cobra.Command{
	Use:   "load <manifest.yaml>",
	Short: "Load a manifest fixture and run it through the transformation core once",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadModeFlag, "mode", "",
		"transformation mode: identity or swizzle (overrides config)")
	loadCmd.Flags().BoolVar(&loadDiffFlag, "diff", false,
		"print a unified diff between the pre- and post-rewrite manifest")
}

func runLoad(c *cobra.Command, args []string) error {
	manifestPath := args[0]

	effective := cfg
	if loadModeFlag != "" {
		effective.Mode = loadModeFlag
	}

	dec, shutdown, err := buildDecorator(effective, manifestPath)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx := c.Context()

	before, err := yamlloader.NewYAMLLoader(manifestPath).Load(ctx, loader.LoadRequest{})
	if err != nil {
		return fmt.Errorf("cmd: loading manifest: %w", err)
	}

	after, err := dec.Load(ctx, loader.LoadRequest{})
	if err != nil {
		return fmt.Errorf("cmd: transforming manifest: %w", err)
	}

	out, err := yaml.Marshal(after)
	if err != nil {
		return fmt.Errorf("cmd: marshaling result: %w", err)
	}

	if loadDiffFlag {
		beforeYAML, err := yaml.Marshal(before)
		if err != nil {
			return fmt.Errorf("cmd: marshaling original: %w", err)
		}
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(beforeYAML), string(out), false)
		fmt.Fprintln(c.OutOrStdout(), dmp.DiffPrettyText(diffs))
		return nil
	}

	fmt.Fprint(c.OutOrStdout(), string(out))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cumulus/pkg/layout"
	"github.com/matzehuels/cumulus/pkg/pipeline"
)

// layoutCommand creates the layout command for computing cloud layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{Layout: c.Config.Layout.ToCloud()}

	cmd := &cobra.Command{
		Use:   "layout [items.json]",
		Short: "Compute a cloud layout from a weighted item set",
		Long: `Compute a cloud layout from a weighted item set.

The layout command takes an items.json file (written by hand or with
'cumulus items new') and computes the spiral arrangement. The output is a
layout.json document holding positions, font sizes, opacity, and scale for
every item, ready for any frontend to paint.

Results are cached locally for faster subsequent runs. Layouts with jitter
enabled and no seed differ run to run and bypass the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "override the set's name")

	// Layout flags (defaults come from the config file, then the engine)
	cmd.Flags().Float64Var(&opts.Layout.MinFontSize, "min-font-size", opts.Layout.MinFontSize, "smallest font size")
	cmd.Flags().Float64Var(&opts.Layout.MaxFontSize, "max-font-size", opts.Layout.MaxFontSize, "largest font size")
	cmd.Flags().IntVar(&opts.Layout.MaxAttempts, "max-attempts", opts.Layout.MaxAttempts, "spiral candidates per item")
	cmd.Flags().Float64Var(&opts.Layout.Padding, "padding", opts.Layout.Padding, "minimum clearance between items")
	cmd.Flags().Float64Var(&opts.Layout.SizeExponent, "size-exponent", opts.Layout.SizeExponent, "weight-to-size curve exponent")
	cmd.Flags().Float64Var(&opts.Layout.Jitter, "jitter", opts.Layout.Jitter, "random offset per candidate (0 disables)")
	cmd.Flags().Uint64Var(&opts.Layout.Seed, "seed", opts.Layout.Seed, "jitter seed (0 draws fresh entropy)")

	return cmd
}

// runLayout executes the pipeline and writes the layout document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.ItemCount, result.Stats.Degraded, result.CacheInfo.LayoutHit)
	if result.Stats.Degraded > 0 {
		printWarning("%d items exhausted the spiral search and were placed best-effort", result.Stats.Degraded)
	}
	printNewline()
	printNextStep("Serve over HTTP", "cumulus serve")

	return nil
}

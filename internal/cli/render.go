package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// renderCommand creates the render command (dataset → artifacts in one step).
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf      layoutFlags
		rf      renderFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset as a stacked area chart",
		Long: `Render a dataset as a stacked area chart.

Runs load, layout and render in one step. With a single format, -o names
the output file ("-" writes to stdout); with several formats it is used as
the base path and each format gets its own extension.

Examples:
  stackviz render sales.csv
  stackviz render sales.csv -f svg,png --labels --axis
  stackviz render sales.csv --normalized --orientation left-right -o share.svg
  stackviz render sales.csv --config chart.toml --animate --duration 750ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Input: args[0]}
			rf.apply(&opts)
			if err := lf.apply(cmd, &opts); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	spinner := newSpinner(ctx, "Rendering "+opts.Input+"...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	written, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   formats,
		input:     opts.Input,
		output:    output,
	})
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	printSuccess("Rendered %s", opts.Input)
	for _, path := range written {
		printFile(path)
	}
	printStats(chartStats{
		series:  res.Stats.SeriesCount,
		columns: res.Stats.ColumnCount,
		hidden:  res.Stats.HiddenCount,
		cached:  res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit,
	})
	return nil
}

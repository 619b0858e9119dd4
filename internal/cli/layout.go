package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/pipeline"
	"github.com/matzehuels/stackviz/pkg/render/area"
)

// layoutCommand creates the layout command for computing layout frames.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf      layoutFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute a stacked layout frame from a dataset",
		Long: `Compute a stacked layout frame from a dataset.

The dataset is a CSV file with an "id,label,<column>..." header or a JSON
document. The output is a layout.json frame (same format as
'render -f json') that 'visualize' turns into SVG/PNG/PDF.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := lf.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)

	return cmd
}

// runLayout loads the dataset, computes the frame, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	d, err := pipeline.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Loaded %d series over %d columns", len(d.Series), len(d.Columns)))

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	frame, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := area.RenderJSON(frame)
	if err != nil {
		return err
	}
	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeFile(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(chartStats{
		series:  len(frame.Layers),
		columns: len(frame.Columns),
		hidden:  len(frame.Layers) - len(frame.VisibleLayers()),
		cached:  cacheHit,
	})
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

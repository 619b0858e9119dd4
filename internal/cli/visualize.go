package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/pipeline"
	"github.com/matzehuels/stackviz/pkg/render/area"
)

// visualizeCommand creates the visualize command for rendering a saved frame.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		rf      renderFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout frame",
		Long: `Render a computed layout frame.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or JSON. The frame holds every polygon, so
this step only draws.

Use 'render' as a shortcut to go directly from a dataset to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			rf.apply(&opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if opts.Style != "" {
				if err := pipeline.ValidateStyle(opts.Style); err != nil {
					return err
				}
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	rf.register(cmd)

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open layout %s: %w", input, err)
	}
	frame, err := area.ReadFrame(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	spinner := newSpinner(ctx, "Rendering frame...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, frame, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		input:     strings.TrimSuffix(input, ".layout.json") + ".json",
		output:    output,
	})
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	printSuccess("Visualization complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(chartStats{
		series:  len(frame.Layers),
		columns: len(frame.Columns),
		hidden:  len(frame.Layers) - len(frame.VisibleLayers()),
		cached:  cacheHit,
	})
	return nil
}

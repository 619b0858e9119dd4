package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/graph"
	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// neighborExt maps neighborhood formats to file extensions.
var neighborExt = map[string]string{
	pipeline.FormatSVG:      "svg",
	pipeline.FormatPNG:      "png",
	pipeline.FormatPDF:      "pdf",
	pipeline.FormatJSON:     "json",
	pipeline.FormatDOT:      "dot",
	pipeline.FormatText:     "txt",
	pipeline.FormatGraphviz: "svg",
}

// neighborsCommand creates the neighbors command.
func (c *CLI) neighborsCommand() *cobra.Command {
	var (
		opts    pipeline.NeighborOptions
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "neighbors [graph.json] --pivot NODE",
		Short: "List or draw the neighbors of a graph node",
		Long: `List or draw the neighbors of a graph node.

The graph is a node-link JSON document ({"nodes": [...], "edges": [...]}).
Edges in either direction make two nodes neighbors.

Formats:
  text      neighbor IDs, one per line (default, printed to stdout)
  svg       radial diagram with the pivot in the center
  png, pdf  the radial diagram converted with rsvg-convert
  json      radial diagram geometry
  dot       Graphviz source of the neighborhood
  graphviz  the DOT source laid out and rendered to SVG by Graphviz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNeighbors(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Pivot, "pivot", "p", "", "node whose neighborhood is drawn")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", pipeline.FormatText, "output format: text, svg, png, pdf, json, dot, graphviz")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "diagram width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "diagram height (default 600)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include node metadata in DOT labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for text, <input>_<pivot>.<ext> otherwise)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("pivot")

	return cmd
}

func (c *CLI) runNeighbors(ctx context.Context, input string, opts pipeline.NeighborOptions, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	g, err := graph.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Loaded graph with %d nodes and %d edges", g.NodeCount(), g.EdgeCount()))

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, cacheHit, err := runner.NeighborhoodWithCacheInfo(ctx, g, opts)
	if err != nil {
		return err
	}
	logger.Debug("neighborhood ready", "pivot", opts.Pivot, "bytes", len(data), "cached", cacheHit)

	if output == "" {
		if opts.Format == pipeline.FormatText {
			_, err := os.Stdout.Write(data)
			return err
		}
		output = basePath("", input) + "_" + opts.Pivot + "." + neighborExt[opts.Format]
	}
	if err := writeFile(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if output == "-" {
		return nil
	}
	printSuccess("Neighborhood of %s", opts.Pivot)
	printFile(output)
	return nil
}

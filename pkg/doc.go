// Package pkg provides the core libraries for stackviz.
//
// # Overview
//
// Stackviz turns tabular series into stacked area charts: each row of a
// dataset becomes a layer whose thickness at every column is proportional
// to its value, stacked on top of the layers before it. The same library
// draws the immediate neighborhood of a node in a graph.
//
// The typical data flow:
//
//	CSV / JSON dataset
//	         ↓
//	    [dataset] package (load, validate, convert to a visual table)
//	         ↓
//	    [stacked] package (stacked area layout over [visual] items)
//	         ↓
//	    [render/area] package (frame → SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	d, _ := dataset.ImportCSV("sales.csv")
//
//	opts := pipeline.Options{Normalized: true}
//	_ = opts.ValidateForLayout()
//	frame, _ := pipeline.ComputeLayout(d, opts)
//
//	svg := area.RenderSVG(frame, area.WithLabels(), area.WithAxis())
//
// Or let the runner do everything with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{Input: "sales.csv", Formats: []string{"svg", "png"}})
//
// # Main Packages
//
// ## Layout
//
// [stacked] - The stacked area layout. Computes per-column peaks, scales
// values into the layout bounds in one of four orientations, writes each
// item's polygon, and hides layers thinner than the threshold.
//
// [visual] - Visual tables and items: the records a layout positions, with
// their polygons (start, current, end) and visibility.
//
// [geom] - Points, rectangles and line/rectangle intersection.
//
// [graph] - A small directed multigraph with a neighbor iterator and a
// node-link JSON format.
//
// ## Rendering
//
// [render/area] - Frames (serializable layout snapshots) and their SVG, PNG,
// PDF and JSON sinks.
//
// [render/nodelink] - Radial neighborhood diagrams and Graphviz DOT output.
//
// [render] - SVG to PDF/PNG conversion through rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Load → layout → render orchestration with caching, used by
// the CLI and the HTTP API.
//
// [cache] - File, Redis and null caches plus the key scheme.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by every layer.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/stacked/...     # Specific package
//	go test -run Example ./pkg/...
package pkg

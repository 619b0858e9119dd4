package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackviz/pkg/cache"
	"github.com/matzehuels/stackviz/pkg/dataset"
	"github.com/matzehuels/stackviz/pkg/graph"
	"github.com/matzehuels/stackviz/pkg/observability"
	"github.com/matzehuels/stackviz/pkg/render/area"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := Load(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SeriesCount = len(d.Series)
	result.Stats.ColumnCount = len(d.Columns)

	r.Logger.Info("loaded dataset",
		"series", len(d.Series),
		"columns", len(d.Columns),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	frame, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Frame = frame
	result.DatasetHash, _ = DatasetHash(d)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.HiddenCount = len(frame.Layers) - len(frame.VisibleLayers())
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"layers", len(frame.Layers),
		"hidden", result.Stats.HiddenCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, frame, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DatasetHash returns the content hash of d used in layout cache keys.
func DatasetHash(d *dataset.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := dataset.WriteJSON(&buf, d); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// ComputeLayoutWithCacheInfo lays out d with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, d *dataset.Dataset, opts Options) (area.Frame, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return area.Frame{}, false, err
	}

	datasetHash, err := DatasetHash(d)
	if err != nil {
		return area.Frame{}, false, fmt.Errorf("serialize dataset for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(datasetHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := area.ReadFrame(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKey)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, cacheKey)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Orientation, len(d.Series))
	start := time.Now()
	frame, err := ComputeLayout(d, opts)
	hooks.OnLayoutComplete(ctx, opts.Orientation, time.Since(start), err)
	if err != nil {
		return area.Frame{}, false, err
	}

	if data, err := area.RenderJSON(frame); err == nil {
		r.store(ctx, cacheKey, data, cache.TTLLayout)
	}
	return frame, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, d *dataset.Dataset, opts Options) (area.Frame, error) {
	frame, _, err := r.ComputeLayoutWithCacheInfo(ctx, d, opts)
	return frame, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f area.Frame, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	frameData, err := area.RenderJSON(f)
	if err != nil {
		return nil, false, fmt.Errorf("serialize frame for cache key: %w", err)
	}
	frameHash := cache.Hash(frameData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, cacheKey)
			break
		}
		observability.Cache().OnCacheHit(ctx, cacheKey)
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(f, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, f area.Frame, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, opts)
	return artifacts, err
}

// NeighborhoodWithCacheInfo renders the neighborhood of a node with caching
// and returns cache hit info.
func (r *Runner) NeighborhoodWithCacheInfo(ctx context.Context, g *graph.Graph, opts NeighborOptions) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := graph.WriteJSON(g, &buf); err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.NeighborhoodKey(cache.Hash(buf.Bytes()), opts.Pivot, opts.KeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, cacheKey)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, cacheKey)

	start := time.Now()
	data, err := RenderNeighborhood(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered neighborhood",
		"pivot", opts.Pivot,
		"format", opts.Format,
		"duration", time.Since(start))

	r.store(ctx, cacheKey, data, cache.TTLNeighborhood)
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// store writes to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

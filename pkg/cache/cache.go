// Package cache provides the caching layer shared by the CLI, the HTTP API
// and the pipeline.
//
// # Backends
//
//   - [FileCache] stores entries as JSON files under a directory (CLI default)
//   - [RedisCache] stores entries in Redis (shared deployments)
//   - [NullCache] never stores anything (caching disabled)
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes and the options that
// affect a result. Keys embed a SHA-256 of the options, so any option change
// produces a new key. [ScopedKeyer] prefixes keys to isolate namespaces.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default time-to-live values per entry type.
const (
	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 7 * 24 * time.Hour
	// TTLArtifact is how long rendered artifacts are kept.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLNeighborhood is how long rendered neighborhoods are kept.
	TTLNeighborhood = 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a stacked layout of a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// NeighborhoodKey identifies a rendered neighborhood of a graph node.
	NeighborhoodKey(graphHash, pivot string, opts NeighborhoodKeyOpts) string
}

// LayoutKeyOpts lists the options that change a layout.
type LayoutKeyOpts struct {
	Orientation string  `json:"orientation"`
	Normalized  bool    `json:"normalized"`
	Padding     float64 `json:"padding"`
	Threshold   float64 `json:"threshold"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string        `json:"format"`
	Style    string        `json:"style"`
	Animate  bool          `json:"animate"`
	Duration time.Duration `json:"duration"`
	Palette  []string      `json:"palette,omitempty"`
	Labels   bool          `json:"labels"`
	Axis     bool          `json:"axis"`
}

// NeighborhoodKeyOpts lists the options that change a neighborhood render.
type NeighborhoodKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultKeyer produces unscoped keys of the form "<kind>:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

func (DefaultKeyer) NeighborhoodKey(graphHash, pivot string, opts NeighborhoodKeyOpts) string {
	return hashKey("neighborhood", graphHash, pivot, opts)
}

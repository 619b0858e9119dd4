package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/stackviz/pkg/dataset"
	"github.com/matzehuels/stackviz/pkg/observability"
)

// Load reads and validates the dataset at path. The format follows the
// file extension.
func Load(ctx context.Context, path string) (*dataset.Dataset, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, format, path)
	start := time.Now()

	d, err := dataset.Import(path)
	if err == nil {
		err = d.Validate()
	}

	count := 0
	if d != nil {
		count = len(d.Series)
	}
	hooks.OnLoadComplete(ctx, format, path, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

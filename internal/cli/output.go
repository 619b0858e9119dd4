package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// nopCloser makes os.Stdout usable as an io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for "" or "-", else creates the file at path.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each requested format. A single format goes to
// output verbatim (stdout for "-"); several formats go to base.<format>.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	formats := slices.Clone(p.formats)
	if len(formats) == 0 {
		for f := range p.artifacts {
			formats = append(formats, f)
		}
		slices.Sort(formats)
	}

	var written []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			return written, errs.New(errs.ErrCodeInternal, "no %s artifact was rendered", format)
		}
		path := basePath(p.output, p.input) + "." + format
		if len(formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

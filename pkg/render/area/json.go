package area

import (
	"encoding/json"
	"io"

	errs "github.com/matzehuels/stackviz/pkg/errors"
)

// RenderJSON serializes the frame as indented JSON.
func RenderJSON(f Frame) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadFrame decodes a frame written by RenderJSON.
func ReadFrame(r io.Reader) (Frame, error) {
	var f Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Frame{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode frame")
	}
	n := len(f.Columns)
	for _, ly := range f.Layers {
		for _, p := range [][]float64{ly.Current, ly.Start, ly.End} {
			if len(p) != 0 && len(p) != 4*n {
				return Frame{}, errs.New(errs.ErrCodeInvalidFormat, "layer %q: polygon has %d coordinates, want %d", ly.ID, len(p), 4*n)
			}
		}
	}
	return f, nil
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	errs "github.com/matzehuels/stackviz/pkg/errors"
)

// ReadCSV decodes a dataset from CSV with an "id,label,<column>..." header.
// Empty cells are rejected.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "empty CSV input")
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read CSV header")
	}
	if len(header) < 2 || !strings.EqualFold(header[0], "id") || !strings.EqualFold(header[1], "label") {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "CSV header must start with id,label")
	}

	d := &Dataset{Columns: header[2:]}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read CSV")
		}
		line, _ := cr.FieldPos(0)
		s := Series{ID: rec[0], Label: rec[1], Values: make(map[string]float64, len(d.Columns))}
		for i, c := range d.Columns {
			cell := strings.TrimSpace(rec[i+2])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errs.New(errs.ErrCodeInvalidData, "line %d: column %q: %q is not a number", line, c, cell)
			}
			s.Values[c] = v
		}
		d.Series = append(d.Series, s)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// ImportCSV reads the CSV dataset stored at path. The file name without
// extension becomes the dataset name.
func ImportCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	d, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return d, nil
}

// WriteCSV encodes d as CSV. Values use the shortest exact representation.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"id", "label"}, d.Columns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(d.Columns)+2)
	for _, s := range d.Series {
		row[0], row[1] = s.ID, s.Label
		for i, c := range d.Columns {
			row[i+2] = strconv.FormatFloat(s.Values[c], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads a dataset, choosing the decoder from the extension
// (.json or .csv).
func Import(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".csv":
		return ImportCSV(path)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported dataset format %q (want .json or .csv)", filepath.Ext(path))
	}
}

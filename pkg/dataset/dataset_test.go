package dataset

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/stacked"
)

const sampleJSON = `{
  "name": "revenue",
  "columns": ["2021", "2022"],
  "series": [
    {"id": "emea", "label": "EMEA", "values": {"2021": 12, "2022": 15}},
    {"id": "apac", "values": {"2021": 4, "2022": 9}, "hidden": true}
  ]
}`

const sampleCSV = `id,label,2021,2022
emea,EMEA,12,15
apac,,4,9
`

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if d.Name != "revenue" || len(d.Series) != 2 {
		t.Fatalf("ReadJSON = %+v", d)
	}
	if got := d.Series[1].DisplayLabel(); got != "apac" {
		t.Errorf("DisplayLabel() = %q, want apac", got)
	}
	if !d.Series[1].Hidden {
		t.Error("Series[1].Hidden = false, want true")
	}
	if got := d.Totals(); !slices.Equal(got, []float64{16, 24}) {
		t.Errorf("Totals() = %v, want [16 24]", got)
	}
}

func TestReadCSV(t *testing.T) {
	d, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !slices.Equal(d.Columns, []string{"2021", "2022"}) {
		t.Errorf("Columns = %v", d.Columns)
	}
	if s, ok := d.Lookup("apac"); !ok || s.Values["2022"] != 9 {
		t.Errorf("Lookup(apac) = %+v, %v", s, ok)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	d, _ := ReadCSV(strings.NewReader(sampleCSV))
	var buf strings.Builder
	if err := WriteCSV(&buf, d); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != sampleCSV {
		t.Errorf("WriteCSV =\n%s\nwant\n%s", buf.String(), sampleCSV)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, _ := ReadJSON(strings.NewReader(sampleJSON))
	var buf strings.Builder
	if err := WriteJSON(&buf, d); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if back.Series[0].Values["2022"] != 15 || back.Series[0].Label != "EMEA" {
		t.Errorf("round trip lost data: %+v", back.Series[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Dataset
		code errs.Code
	}{
		{"one column", Dataset{Columns: []string{"a"}}, errs.ErrCodeInvalidConfig},
		{"empty id", Dataset{Columns: []string{"a", "b"}, Series: []Series{{Values: map[string]float64{"a": 1, "b": 1}}}}, errs.ErrCodeInvalidInput},
		{"duplicate id", Dataset{Columns: []string{"a", "b"}, Series: []Series{
			{ID: "x", Values: map[string]float64{"a": 1, "b": 1}},
			{ID: "x", Values: map[string]float64{"a": 1, "b": 1}},
		}}, errs.ErrCodeInvalidData},
		{"missing value", Dataset{Columns: []string{"a", "b"}, Series: []Series{{ID: "x", Values: map[string]float64{"a": 1}}}}, errs.ErrCodeInvalidData},
		{"infinite value", Dataset{Columns: []string{"a", "b"}, Series: []Series{{ID: "x", Values: map[string]float64{"a": 1, "b": math.Inf(-1)}}}}, errs.ErrCodeInvalidData},
		{"valid", Dataset{Columns: []string{"a", "b"}, Series: []Series{{ID: "x", Values: map[string]float64{"a": 1, "b": 2}}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.GetCode(tt.d.Validate()); got != tt.code {
				t.Errorf("Validate() code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		read func() error
		code errs.Code
	}{
		{"malformed json", func() error { _, err := ReadJSON(strings.NewReader("{")); return err }, errs.ErrCodeInvalidFormat},
		{"unknown json field", func() error {
			_, err := ReadJSON(strings.NewReader(`{"columns":["a","b"],"series":[],"colour":"red"}`))
			return err
		}, errs.ErrCodeInvalidFormat},
		{"empty csv", func() error { _, err := ReadCSV(strings.NewReader("")); return err }, errs.ErrCodeInvalidFormat},
		{"bad header", func() error { _, err := ReadCSV(strings.NewReader("name,a,b\n")); return err }, errs.ErrCodeInvalidFormat},
		{"ragged row", func() error { _, err := ReadCSV(strings.NewReader("id,label,a,b\nx,,1\n")); return err }, errs.ErrCodeInvalidFormat},
		{"non-numeric", func() error { _, err := ReadCSV(strings.NewReader("id,label,a,b\nx,,1,two\n")); return err }, errs.ErrCodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.GetCode(tt.read()); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "revenue.json")
	csvPath := filepath.Join(dir, "regions.csv")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	if d, err := Import(jsonPath); err != nil || d.Name != "revenue" {
		t.Errorf("Import(json) = %v, %v", d, err)
	}
	if d, err := Import(csvPath); err != nil || d.Name != "regions" {
		t.Errorf("Import(csv) = %v, %v", d, err)
	}
	if _, err := Import(filepath.Join(dir, "data.xlsx")); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Import(xlsx) = %v, want INVALID_FORMAT", err)
	}
	if _, err := Import(filepath.Join(dir, "missing.json")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestToTable(t *testing.T) {
	d, _ := ReadJSON(strings.NewReader(sampleJSON))
	tbl, err := ToTable(d, "areas", geom.NewRect(0, 0, 200, 100))
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if tbl.Len() != 2 || tbl.Name() != "areas" {
		t.Fatalf("ToTable = %d records in %q", tbl.Len(), tbl.Name())
	}
	if r := tbl.Record(0); r.ID != "emea" || r.Label != "EMEA" || !r.Visible() {
		t.Errorf("Record(0) = %+v", r)
	}
	if r := tbl.Record(1); r.Visible() {
		t.Error("hidden series should be invisible")
	}
	if got := tbl.Bounds().Width(); got != 200 {
		t.Errorf("Bounds().Width() = %v, want 200", got)
	}
}

func TestDecodeConfig(t *testing.T) {
	in := `
[layout]
orientation = "left-right"
normalized = true
padding = 0.1
width = 640

[render]
formats = ["svg", "json"]
animate = true
duration = "750ms"
palette = ["#112233"]
`
	cfg, err := DecodeConfig(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Layout.Orientation == nil || *cfg.Layout.Orientation != stacked.LeftRight {
		t.Errorf("Orientation = %v, want left-right", cfg.Layout.Orientation)
	}
	if cfg.Layout.Normalized == nil || !*cfg.Layout.Normalized {
		t.Error("Normalized not decoded")
	}
	if cfg.Layout.Threshold != nil {
		t.Errorf("Threshold = %v, want unset", *cfg.Layout.Threshold)
	}
	if cfg.Layout.Width != 640 {
		t.Errorf("Width = %v, want 640", cfg.Layout.Width)
	}
	if cfg.Render.Duration.Duration != 750*time.Millisecond {
		t.Errorf("Duration = %v, want 750ms", cfg.Render.Duration)
	}
	if !slices.Equal(cfg.Render.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errs.Code
	}{
		{"bad orientation", "[layout]\norientation = \"sideways\"\n", errs.ErrCodeInvalidConfig},
		{"padding range", "[layout]\npadding = 2.0\n", errs.ErrCodeInvalidConfig},
		{"negative threshold", "[layout]\nthreshold = -1.0\n", errs.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\ncolour = \"red\"\n", errs.ErrCodeInvalidConfig},
		{"bad duration", "[render]\nduration = \"soon\"\n", errs.ErrCodeInvalidConfig},
		{"syntax", "[layout\n", errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(tt.in))
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("DecodeConfig code = %q, want %q (err=%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "chart.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

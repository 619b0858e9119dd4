package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackviz/pkg/render/area"
)

const salesCSV = `id,label,q1,q2,q3
north,North,10,20,30
south,South,15,10,5
west,West & Co,8,12,16
`

const depsGraph = `{
  "nodes": [{"id": "app"}, {"id": "log"}, {"id": "http"}, {"id": "db"}],
  "edges": [
    {"source": "app", "target": "log"},
    {"source": "app", "target": "http"},
    {"source": "db", "target": "app"}
  ]
}`

// captureUI redirects status output for the duration of the test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envRedisURL, "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{" svg , json ,", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseFormats(tt.input), "parseFormats(%q)", tt.input)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"layout", "render", "visualize", "neighbors", "inspect", "serve", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRenderCommand(t *testing.T) {
	ui := captureUI(t)
	input := writeTemp(t, "sales.csv", salesCSV)

	_, err := execute(t, "render", input, "-f", "svg,json", "--labels", "--no-cache")
	require.NoError(t, err)

	base := strings.TrimSuffix(input, ".csv")
	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), `id="layer-north"`)
	assert.Contains(t, string(svg), "West &amp; Co")

	f, err := os.Open(base + ".json")
	require.NoError(t, err)
	defer f.Close()
	frame, err := area.ReadFrame(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2", "q3"}, frame.Columns)
	assert.Len(t, frame.Layers, 3)

	assert.Contains(t, ui.String(), "3 series")
}

func TestRenderCommandSingleOutput(t *testing.T) {
	captureUI(t)
	input := writeTemp(t, "sales.csv", salesCSV)
	output := filepath.Join(t.TempDir(), "charts", "share.svg")

	_, err := execute(t, "render", input, "--normalized", "--orientation", "left-right", "-o", output, "--no-cache")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
}

func TestRenderCommandConfigFile(t *testing.T) {
	captureUI(t)
	input := writeTemp(t, "sales.csv", salesCSV)
	config := writeTemp(t, "chart.toml", `
[layout]
width = 300
height = 200

[render]
formats = ["json"]
`)

	_, err := execute(t, "render", input, "--config", config, "--height", "150", "--no-cache")
	require.NoError(t, err)

	base := strings.TrimSuffix(input, ".csv")
	_, err = os.Stat(base + ".svg")
	assert.True(t, os.IsNotExist(err), "svg should not be rendered when the config selects json")

	f, err := os.Open(base + ".json")
	require.NoError(t, err)
	defer f.Close()
	frame, err := area.ReadFrame(f)
	require.NoError(t, err)
	assert.Equal(t, 300.0, frame.Width)
	assert.Equal(t, 150.0, frame.Height, "flag should override the config file")
}

func TestRenderCommandErrors(t *testing.T) {
	captureUI(t)
	input := writeTemp(t, "sales.csv", salesCSV)

	_, err := execute(t, "render", input, "-f", "gif")
	assert.ErrorContains(t, err, "invalid format")

	_, err = execute(t, "render", input, "--style", "wavy", "--no-cache")
	assert.ErrorContains(t, err, "INVALID_STYLE")

	_, err = execute(t, "render", filepath.Join(t.TempDir(), "missing.csv"), "--no-cache")
	assert.ErrorContains(t, err, "FILE_NOT_FOUND")
}

func TestLayoutThenVisualize(t *testing.T) {
	ui := captureUI(t)
	input := writeTemp(t, "sales.csv", salesCSV)

	_, err := execute(t, "layout", input, "--width", "400", "--height", "300", "--no-cache")
	require.NoError(t, err)
	layoutPath := strings.TrimSuffix(input, ".csv") + ".layout.json"
	require.FileExists(t, layoutPath)
	assert.Contains(t, ui.String(), "stackviz visualize "+layoutPath)

	_, err = execute(t, "visualize", layoutPath, "--axis", "--no-cache")
	require.NoError(t, err)

	svg, err := os.ReadFile(strings.TrimSuffix(input, ".csv") + ".svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), `viewBox="0 0 400 300"`)
	assert.Contains(t, string(svg), `class="axis-label"`)
}

func TestNeighborsCommand(t *testing.T) {
	captureUI(t)
	input := writeTemp(t, "deps.json", depsGraph)
	dir := t.TempDir()

	txt := filepath.Join(dir, "app.txt")
	_, err := execute(t, "neighbors", input, "--pivot", "app", "-o", txt, "--no-cache")
	require.NoError(t, err)
	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	ids := strings.Fields(string(data))
	slices.Sort(ids)
	assert.Equal(t, []string{"db", "http", "log"}, ids)

	dot := filepath.Join(dir, "app.dot")
	_, err = execute(t, "neighbors", input, "-p", "app", "-f", "dot", "-o", dot, "--no-cache")
	require.NoError(t, err)
	data, err = os.ReadFile(dot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph G {"))

	_, err = execute(t, "neighbors", input, "-p", "app", "-f", "svg", "--no-cache")
	require.NoError(t, err)
	assert.FileExists(t, strings.TrimSuffix(input, ".json")+"_app.svg")

	_, err = execute(t, "neighbors", input, "-p", "nope", "--no-cache")
	assert.ErrorContains(t, err, "NODE_NOT_FOUND")

	_, err = execute(t, "neighbors", input)
	assert.ErrorContains(t, err, "pivot")
}

func TestInspectPlain(t *testing.T) {
	ui := captureUI(t)
	input := writeTemp(t, "sales.csv", salesCSV)

	_, err := execute(t, "inspect", input, "--plain", "--no-cache")
	require.NoError(t, err)
	out := ui.String()
	for _, want := range []string{"north", "South", "West & Co", "60"} {
		assert.Contains(t, out, want)
	}
}

func TestCacheCommands(t *testing.T) {
	captureUI(t)
	cacheHome := t.TempDir()
	input := writeTemp(t, "sales.csv", salesCSV)

	run := func(args ...string) string {
		t.Helper()
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.ExecuteContext(context.Background()))
		return out.String()
	}
	t.Setenv(envRedisURL, "")
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	assert.Equal(t, filepath.Join(cacheHome, appName)+"\n", run("cache", "path"))

	run("render", input)
	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "render should populate the cache")

	ui := captureUI(t)
	run("cache", "clear")
	assert.Contains(t, ui.String(), "Cleared")
	entries, err = os.ReadDir(filepath.Join(cacheHome, appName))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "stackviz")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json"},
		input:     filepath.Join(dir, "sales.csv"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "sales.svg"), filepath.Join(dir, "sales.json")}, written)

	single := filepath.Join(dir, "chart.out")
	written, err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg"},
		input:     "sales.csv",
		output:    single,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{single}, written)

	_, err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"pdf"},
		input:     filepath.Join(dir, "sales.csv"),
	})
	assert.ErrorContains(t, err, "no pdf artifact")
}

func TestFormatStats(t *testing.T) {
	got := formatStats(chartStats{series: 4, columns: 12, hidden: 1, cached: true})
	for _, want := range []string{"4 series", "12 columns", "1 hidden", iconCached} {
		assert.Contains(t, got, want)
	}
	assert.Contains(t, formatStats(chartStats{}), iconFresh)
}

func TestLayerListModel(t *testing.T) {
	f := area.Frame{
		Columns: []string{"a", "b"},
		Layers: []area.Layer{
			{ID: "small", Values: []float64{1, 1}, Visible: true},
			{ID: "big", Values: []float64{10, 20}, Visible: true},
			{ID: "mid", Values: []float64{5, 5}, Visible: false},
		},
	}
	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
	step := func(m LayerListModel, msg tea.Msg) LayerListModel {
		next, _ := m.Update(msg)
		return next.(LayerListModel)
	}

	m := NewLayerListModel(f)
	m = step(m, key("j"))
	assert.Equal(t, 1, m.Cursor)
	m = step(m, key("k"))
	m = step(m, key("k"))
	assert.Equal(t, 0, m.Cursor, "cursor stops at the top")

	m = step(m, key("s"))
	assert.True(t, m.Sorted)
	assert.Equal(t, []int{1, 2, 0}, m.Order)
	assert.Equal(t, 2, m.Cursor, "cursor follows the selected layer")

	m = step(m, key("s"))
	assert.Equal(t, []int{0, 1, 2}, m.Order)
	assert.Equal(t, 0, m.Cursor)

	view := m.View()
	assert.Contains(t, view, "big")
	assert.Contains(t, view, "hidden")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

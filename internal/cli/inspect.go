package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/pipeline"
	"github.com/matzehuels/stackviz/pkg/render/area"
)

// inspectCommand creates the inspect command, an interactive layer browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		lf      layoutFlags
		plain   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Browse the layers of a dataset after layout",
		Long: `Browse the layers of a dataset after layout.

Shows every series with its total, its peak and whether the threshold hid
it. Use ↑/↓ to move, s to sort by total, q to quit. --plain prints the
table once instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := lf.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], opts, plain, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the layer table and exit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, plain, noCache bool) error {
	d, err := pipeline.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	frame, _, err := runner.ComputeLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	m := NewLayerListModel(frame)
	if plain {
		m.Height = len(frame.Layers)
		fmt.Fprintln(uiOut, m.table())
		return nil
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// LayerListModel - Interactive layer browser
// =============================================================================

// List styles
var (
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listCursorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	listHiddenStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// LayerListModel is the bubbletea model for browsing frame layers.
type LayerListModel struct {
	Frame  area.Frame
	Order  []int // indexes into Frame.Layers in display order
	Cursor int
	Offset int
	Height int
	Sorted bool
}

// NewLayerListModel creates a browser over the layers of f in stacking order.
func NewLayerListModel(f area.Frame) LayerListModel {
	order := make([]int, len(f.Layers))
	for i := range order {
		order[i] = i
	}
	return LayerListModel{Frame: f, Order: order, Height: 15}
}

func (m LayerListModel) Init() tea.Cmd {
	return nil
}

func (m LayerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Order)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m = m.toggleSort()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// toggleSort switches between stacking order and descending totals. The
// cursor stays on the same layer.
func (m LayerListModel) toggleSort() LayerListModel {
	var current int
	if len(m.Order) > 0 {
		current = m.Order[m.Cursor]
	}
	order := slices.Clone(m.Order)
	m.Sorted = !m.Sorted
	if m.Sorted {
		slices.SortStableFunc(order, func(a, b int) int {
			ta, tb := m.Frame.Layers[a].Total(), m.Frame.Layers[b].Total()
			switch {
			case ta > tb:
				return -1
			case ta < tb:
				return 1
			}
			return 0
		})
	} else {
		slices.Sort(order)
	}
	m.Order = order
	m.Cursor = max(slices.Index(order, current), 0)
	m.Offset = max(0, min(m.Offset, m.Cursor))
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m LayerListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layers"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %d columns", m.Frame.Orientation, len(m.Frame.Columns))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  s sort by total  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.table())
	b.WriteString("\n\n")
	if len(m.Order) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Order))))
	}
	return b.String()
}

// table renders the visible window of rows.
func (m LayerListModel) table() string {
	end := min(m.Offset+m.Height, len(m.Order))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		ly := m.Frame.Layers[m.Order[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		visible := "✓"
		if !ly.Visible {
			visible = "hidden"
		}
		rows = append(rows, []string{
			cursor,
			ly.ID,
			ly.Label,
			formatValue(ly.Total()),
			formatValue(slices.Max(append([]float64{0}, ly.Values...))),
			visible,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Series", "Label", "Total", "Peak", "Visible").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Order) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				base = base.Align(lipgloss.Right)
			}
			switch {
			case idx == m.Cursor:
				return base.Inherit(listCursorStyle)
			case !m.Frame.Layers[m.Order[idx]].Visible:
				return base.Inherit(listHiddenStyle)
			}
			return base
		})
	return t.Render()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

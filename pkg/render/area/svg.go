package area

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	labelFontSize = 11.0
	axisFontSize  = 10.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette  []string
	style    Style
	animate  bool
	duration time.Duration
	labels   bool
	axis     bool
}

// WithPalette sets the fill colors, cycled by layer index.
func WithPalette(colors []string) SVGOption { return func(r *svgRenderer) { r.palette = colors } }

// WithStyle selects filled or outlined layers.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithLabels draws each layer's label at its thickest column.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithAxis draws the column identifiers along the time axis.
func WithAxis() SVGOption { return func(r *svgRenderer) { r.axis = true } }

// WithAnimation morphs every layer from its start polygon to its end
// polygon over d. Non-positive durations disable the animation.
func WithAnimation(d time.Duration) SVGOption {
	return func(r *svgRenderer) {
		r.animate = d > 0
		r.duration = d
	}
}

// RenderSVG draws the visible layers of f as SVG polygons.
func RenderSVG(f Frame, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette, style: StyleFilled}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(f.X), num(f.Y), num(f.Width), num(f.Height), f.Width, f.Height)

	for i, ly := range f.Layers {
		if !ly.Visible || len(ly.Current) == 0 {
			continue
		}
		r.renderLayer(&buf, ly, colorAt(r.palette, i))
	}
	if r.labels {
		for _, ly := range f.VisibleLayers() {
			renderLabel(&buf, ly, len(f.Columns))
		}
	}
	if r.axis {
		renderAxis(&buf, f)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderLayer(buf *bytes.Buffer, ly Layer, color string) {
	paint := fmt.Sprintf(`fill="%s" fill-opacity="0.85" stroke="#ffffff" stroke-width="0.5"`, color)
	if r.style == StyleOutline {
		paint = fmt.Sprintf(`fill="none" stroke="%s" stroke-width="1.5"`, color)
	}
	fmt.Fprintf(buf, `  <polygon id="layer-%s" class="layer" points="%s" %s>`+"\n",
		escapeXML(ly.ID), points(ly.Current), paint)
	fmt.Fprintf(buf, "    <title>%s: %s</title>\n", escapeXML(ly.Label), num(ly.Total()))
	if r.animate && len(ly.Start) == len(ly.End) && len(ly.Start) > 0 {
		fmt.Fprintf(buf, `    <animate attributeName="points" from="%s" to="%s" dur="%s" fill="freeze"/>`+"\n",
			points(ly.Start), points(ly.End), seconds(r.duration))
	}
	buf.WriteString("  </polygon>\n")
}

func renderLabel(buf *bytes.Buffer, ly Layer, columns int) {
	_, bottom, top, ok := ly.Span(columns)
	if !ok {
		return
	}
	if math.Max(math.Abs(top.X-bottom.X), math.Abs(top.Y-bottom.Y)) < labelFontSize {
		return
	}
	fmt.Fprintf(buf, `  <text class="layer-label" x="%s" y="%s" font-size="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		num((bottom.X+top.X)/2), num((bottom.Y+top.Y)/2), num(labelFontSize), escapeXML(ly.Label))
}

func renderAxis(buf *bytes.Buffer, f Frame) {
	n := len(f.Columns)
	if n < 2 {
		return
	}
	b := f.Bounds()
	for i, c := range f.Columns {
		t := float64(i) / float64(n-1)
		var x, y float64
		if f.Orientation.Horizontal() {
			x, y = b.MinX+axisFontSize/2, b.MaxY-t*f.Height
		} else {
			x, y = b.MinX+t*f.Width, b.MaxY-axisFontSize/2
		}
		fmt.Fprintf(buf, `  <text class="axis-label" x="%s" y="%s" font-size="%s" fill="#555555">%s</text>`+"\n",
			num(x), num(y), num(axisFontSize), escapeXML(c))
	}
}

func points(p []float64) string {
	var buf bytes.Buffer
	for i := 0; i+1 < len(p); i += 2 {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(num(p[i]))
		buf.WriteByte(',')
		buf.WriteString(num(p[i+1]))
	}
	return buf.String()
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

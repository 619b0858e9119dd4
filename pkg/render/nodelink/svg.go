package nodelink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/stackviz/pkg/geom"
	"github.com/matzehuels/stackviz/pkg/render"
)

// RenderSVG draws a radial neighborhood. Links are drawn first so boxes
// cover nothing but their own labels.
func RenderSVG(n Neighborhood) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		n.Width, n.Height, n.Width, n.Height)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#666666"/></marker></defs>` + "\n")

	for _, l := range n.Links {
		width := 1.0
		if l.Edges > 1 {
			width = float64(min(l.Edges, 5))
		}
		fmt.Fprintf(&buf, `  <line class="link" data-target="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#666666" stroke-width="%.0f" marker-end="url(#arrow)"/>`+"\n",
			escapeXML(l.Target), l.From.X, l.From.Y, l.To.X, l.To.Y, width)
	}

	renderBox(&buf, n.Pivot, "pivot", "#fde68a")
	for _, b := range n.Neighbors {
		renderBox(&buf, b, "neighbor", "#ffffff")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBox(buf *bytes.Buffer, b Box, class, fill string) {
	r := b.Rect
	c := geom.Center(r)
	fmt.Fprintf(buf, `  <g class="%s" id="node-%s">`+"\n", class, escapeXML(b.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s" stroke="#333333"/>`+"\n",
		r.MinX, r.MinY, r.Width(), r.Height(), fill)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="12" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		c.X, c.Y, escapeXML(b.Label))
	buf.WriteString("  </g>\n")
}

// RenderPNG renders the neighborhood as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(n Neighborhood, scale float64) ([]byte, error) {
	return render.ToPNG(RenderSVG(n), scale)
}

// RenderPDF renders the neighborhood as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(n Neighborhood) ([]byte, error) {
	return render.ToPDF(RenderSVG(n))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

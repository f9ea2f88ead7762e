package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// dotColors are fill colors for net tiles, cycled like netColors.
var dotColors = []string{"#8dd3c7", "#ffd27f", "#80b1d3", "#e5a0d6", "#b3de69", "#fccde5", "#fb8072", "#bebada", "#ccebc5", "#fdb462"}

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Title is drawn above the map when set.
	Title string
	// CellSize is the cell width and height in points. Zero means 24.
	CellSize int
}

// ToDOT renders the map as a Graphviz graph holding a single HTML table with
// one cell per tile. The result can be passed to [RenderSVG].
func ToDOT(m *grid.Map, opts DOTOptions) string {
	size := opts.CellSize
	if size <= 0 {
		size = 24
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=plaintext, fontname=\"Courier\"];\n")
	buf.WriteString("  map [label=<\n")
	buf.WriteString("    <TABLE BORDER=\"1\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"2\">\n")
	for p, t := range m.All() {
		if p.X == 0 {
			buf.WriteString("      <TR>")
		}
		fmt.Fprintf(&buf, "<TD WIDTH=\"%d\" HEIGHT=\"%d\" FIXEDSIZE=\"TRUE\"%s>%s</TD>",
			size, size, cellFill(t), html.EscapeString(cellText(t)))
		if p.X == m.Width()-1 {
			buf.WriteString("</TR>\n")
		}
	}
	buf.WriteString("    </TABLE>\n")
	buf.WriteString("  >];\n")
	buf.WriteString("}\n")
	return buf.String()
}

func cellFill(t grid.Tile) string {
	switch {
	case t.HasBelt():
		return fmt.Sprintf(" BGCOLOR=%q", dotColors[t.Owner%len(dotColors)])
	case t.IsEndpoint():
		return fmt.Sprintf(" BGCOLOR=%q", dotColors[t.Endpoint%len(dotColors)])
	case t.Obstacle:
		return " BGCOLOR=\"#555555\""
	}
	return ""
}

func cellText(t grid.Tile) string {
	if t.Obstacle && !t.HasBelt() {
		return " "
	}
	return Glyph(t)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a plain
// viewBox so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

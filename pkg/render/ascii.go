package render

import (
	"fmt"
	"strings"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// Belt glyphs indexed by grid.Direction.
var (
	surfaceGlyphs     = [4]string{"^", ">", "v", "<"}
	undergroundGlyphs = [4]string{"-", "]", "_", "["}
)

// Glyph returns the two-column cell text of a tile: the net id followed by a
// direction glyph for belts, "N!" for endpoints, "+ " for obstacles and two
// spaces otherwise.
func Glyph(t grid.Tile) string {
	switch {
	case t.HasBelt():
		glyphs := surfaceGlyphs
		if t.Underground {
			glyphs = undergroundGlyphs
		}
		return fmt.Sprintf("%d%s", t.Owner, glyphs[t.Dir])
	case t.IsEndpoint():
		return fmt.Sprintf("%d!", t.Endpoint)
	case t.Obstacle:
		return "+ "
	}
	return "  "
}

// ASCII renders the map one row per line, framed by vertical bars:
//
//	|0>0>0>0>0v|
//	|        0v|
func ASCII(m *grid.Map) string {
	var b strings.Builder
	for p, t := range m.All() {
		if p.X == 0 {
			b.WriteByte('|')
		}
		b.WriteString(Glyph(t))
		if p.X == m.Width()-1 {
			b.WriteString("|\n")
		}
	}
	return b.String()
}

// Costs renders the per-direction costs left by the last propagation. Each
// tile is shown as two lines, north and east costs above west and south.
// Unreached directions print as 0.
func Costs(m *grid.Map) string {
	var b strings.Builder
	rule := "|" + strings.Repeat("-----", m.Width()) + "|\n"
	var upper, lower strings.Builder
	for p, t := range m.All() {
		if p.X == 0 {
			upper.WriteByte('|')
			lower.WriteByte('|')
		}
		fmt.Fprintf(&upper, "%2d%2d|", shownCost(t.Costs[grid.North]), shownCost(t.Costs[grid.East]))
		fmt.Fprintf(&lower, "%2d%2d|", shownCost(t.Costs[grid.West]), shownCost(t.Costs[grid.South]))
		if p.X == m.Width()-1 {
			b.WriteString(rule)
			b.WriteString(upper.String() + "\n")
			b.WriteString(lower.String() + "\n")
			upper.Reset()
			lower.Reset()
		}
	}
	return b.String()
}

func shownCost(c int) int {
	if c == grid.Infinity {
		return 0
	}
	return c
}

package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// netColors cycles through distinguishable ANSI colors.
var netColors = []lipgloss.Color{"36", "214", "75", "170", "35", "220", "167", "141", "114", "209"}

var (
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
)

// NetColor returns the display color of net id.
func NetColor(id int) lipgloss.Color {
	if id < 0 {
		return lipgloss.Color("255")
	}
	return netColors[id%len(netColors)]
}

// StyleOptions configures [Styled].
type StyleOptions struct {
	// Highlight dims every net not in the list. Empty colors all nets.
	Highlight []int
	// HideUnderground draws tunnel entrances and exits as empty tiles.
	HideUnderground bool
}

// Styled renders the map with one color per net inside a rounded frame.
func Styled(m *grid.Map, opts StyleOptions) string {
	var b strings.Builder
	for p, t := range m.All() {
		b.WriteString(styledGlyph(t, opts))
		if p.X == m.Width()-1 && p.Y < m.Height()-1 {
			b.WriteByte('\n')
		}
	}
	return frameStyle.Render(b.String())
}

func styledGlyph(t grid.Tile, opts StyleOptions) string {
	if t.HasBelt() && t.Underground && opts.HideUnderground {
		t.Owner = grid.None
	}
	id := t.Owner
	if !t.HasBelt() {
		id = t.Endpoint
	}
	switch {
	case id != grid.None:
		style := lipgloss.NewStyle().Foreground(NetColor(id))
		if len(opts.Highlight) > 0 && !slices.Contains(opts.Highlight, id) {
			style = emptyStyle
		} else if t.IsEndpoint() {
			style = style.Bold(true)
		}
		return style.Render(Glyph(t))
	case t.Obstacle:
		return obstacleStyle.Render("██")
	}
	return emptyStyle.Render("· ")
}

// NetStats summarizes the belts of one net.
type NetStats struct {
	ID          int
	Label       string
	Net         grid.Net
	Belts       int
	Underground int
}

// Stats counts belts and tunnel ends per net. labels may be shorter than
// nets; missing labels are left empty.
func Stats(m *grid.Map, nets grid.Netlist, labels []string) []NetStats {
	stats := make([]NetStats, len(nets))
	for i, n := range nets {
		stats[i] = NetStats{ID: i, Net: n}
		if i < len(labels) {
			stats[i].Label = labels[i]
		}
	}
	for _, t := range m.All() {
		if !t.HasBelt() || t.Owner >= len(stats) {
			continue
		}
		stats[t.Owner].Belts++
		if t.Underground {
			stats[t.Owner].Underground++
		}
	}
	return stats
}

// Summary renders net statistics as a table.
func Summary(stats []NetStats) string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			strconv.Itoa(s.ID),
			s.Label,
			fmt.Sprintf("%v → %v", s.Net.Start, s.Net.End),
			strconv.Itoa(s.Belts),
			strconv.Itoa(s.Underground / 2),
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Net", "Name", "Route", "Belts", "Tunnels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(stats) {
				return lipgloss.NewStyle().Foreground(NetColor(stats[row].ID))
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

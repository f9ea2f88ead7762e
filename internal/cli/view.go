package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/pipeline"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/render"
)

var (
	viewHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	viewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the interactive map viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var cacheOpts cacheFlags
	opts := pipeline.Options{Ordering: pipeline.DefaultOrdering, Seed: pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "view [problem.toml | result.json]",
		Short: "Browse a routed map interactively",
		Long: `Open a routed map in the terminal.

A problem file is routed first (using the cache); a result file written by
'route -f json' is shown as saved. Select a net to highlight it and toggle
tunnel ends to see the surface layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := c.loadView(cmd.Context(), args[0], opts, cacheOpts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.Attempts, "attempts", "n", 0, "orderings to try (default: the problem's value, else one per net)")
	cmd.Flags().StringVar(&opts.Ordering, "order", opts.Ordering, "ordering strategy: rotation, shuffle")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "seed for --order shuffle")
	cmd.Flags().IntVar(&opts.MaxTunnel, "max-tunnel", 0, "longest tunnel in tiles (0 = unlimited)")
	cacheOpts.register(cmd)

	return cmd
}

// loadView builds the viewer from a result file or by routing a problem.
func (c *CLI) loadView(ctx context.Context, input string, opts pipeline.Options, cacheOpts cacheFlags) (MapViewModel, error) {
	if filepath.Ext(input) == ".json" {
		if res, err := problem.ImportResult(input); err == nil {
			m, nets, err := res.Map()
			if err != nil {
				return MapViewModel{}, err
			}
			return NewMapViewModel(res, m, nets), nil
		}
	}

	p, err := pipeline.LoadFile(input)
	if err != nil {
		return MapViewModel{}, err
	}
	runner, err := c.newRunner(ctx, cacheOpts)
	if err != nil {
		return MapViewModel{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Routing %d nets...", len(p.Nets)))
	spinner.Start()
	res, m, nets, _, err := runner.RouteWithCacheInfo(ctx, p, opts)
	spinner.Stop()
	if err != nil {
		return MapViewModel{}, err
	}
	return NewMapViewModel(res, m, nets), nil
}

// =============================================================================
// MapViewModel - Interactive map viewer
// =============================================================================

// MapViewModel is the bubbletea model for browsing a routed map.
// Cursor 0 selects all nets; cursor i selects net i-1.
type MapViewModel struct {
	Result     *problem.Result
	Map        *grid.Map
	Stats      []render.NetStats
	Cursor     int
	HideTunnel bool
}

// NewMapViewModel creates a viewer for a routed map.
func NewMapViewModel(res *problem.Result, m *grid.Map, nets grid.Netlist) MapViewModel {
	return MapViewModel{
		Result: res,
		Map:    m,
		Stats:  render.Stats(m, nets, labels(&res.Problem)),
	}
}

func (m MapViewModel) Init() tea.Cmd {
	return nil
}

func (m MapViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Stats) {
				m.Cursor++
			}
		case "a", "home":
			m.Cursor = 0
		case "t":
			m.HideTunnel = !m.HideTunnel
		}
	}
	return m, nil
}

// Selected returns the highlighted net, or grid.None when all are shown.
func (m MapViewModel) Selected() int {
	return m.Cursor - 1
}

func (m MapViewModel) View() string {
	var b strings.Builder

	title := m.Result.Problem.Name
	if title == "" {
		title = "Routed map"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	if m.Result.Solved {
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("cost %d", m.Result.Cost)))
	} else {
		b.WriteString(StyleError.Render(iconFailed))
	}
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("↑/↓ select net  a all  t tunnels  q quit"))
	b.WriteString("\n\n")

	opts := render.StyleOptions{HideUnderground: m.HideTunnel}
	if sel := m.Selected(); sel != grid.None {
		opts.Highlight = []int{sel}
	}
	b.WriteString(render.Styled(m.Map, opts))
	b.WriteString("\n")
	b.WriteString(m.netTable())
	b.WriteString("\n")

	status := "all nets"
	if sel := m.Selected(); sel != grid.None {
		status = m.Stats[sel].Label
	}
	if m.HideTunnel {
		status += " · tunnels hidden"
	}
	b.WriteString(viewDimStyle.Render("  " + status))
	return b.String()
}

func (m MapViewModel) netTable() string {
	rows := make([][]string, 0, len(m.Stats)+1)
	rows = append(rows, []string{"", "*", "all nets", "", ""})
	for _, s := range m.Stats {
		rows = append(rows, []string{
			"",
			strconv.Itoa(s.ID),
			s.Label,
			strconv.Itoa(s.Belts),
			strconv.Itoa(s.Underground / 2),
		})
	}
	rows[m.Cursor][0] = "▸"

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Net", "Name", "Belts", "Tunnels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return viewHeaderStyle
			}
			style := lipgloss.NewStyle()
			if row > 0 && col == 1 {
				style = style.Foreground(render.NetColor(row - 1))
			}
			if row == m.Cursor {
				return style.Bold(true)
			}
			return style
		})
	return t.Render()
}

package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

func pt(x, y int) grid.Point { return grid.Point{X: x, Y: y} }

func net(x0, y0, x1, y1 int) grid.Net {
	return grid.Net{Start: pt(x0, y0), End: pt(x1, y1)}
}

func newMap(t *testing.T, w, h int, obstacles ...grid.Point) *grid.Map {
	t.Helper()
	m, err := grid.New(w, h)
	require.NoError(t, err)
	for _, p := range obstacles {
		require.NoError(t, m.SetObstacle(p, true))
	}
	return m
}

func tileAt(t *testing.T, m *grid.Map, p grid.Point) grid.Tile {
	t.Helper()
	tile, err := m.At(p)
	require.NoError(t, err)
	return tile
}

// requireBelt asserts that p holds a belt of net id facing dir.
func requireBelt(t *testing.T, m *grid.Map, p grid.Point, id int, dir grid.Direction, underground bool) {
	t.Helper()
	tile := tileAt(t, m, p)
	require.Equal(t, id, tile.Owner, "owner at %v", p)
	require.Equal(t, dir, tile.Dir, "dir at %v", p)
	require.Equal(t, underground, tile.Underground, "underground at %v", p)
}

// requireConnected follows the belts of net id from its start and checks that
// they reach its end. Tunnels are crossed from an underground entrance to the
// next underground belt of the same net, which must face the same way.
func requireConnected(t *testing.T, m *grid.Map, id int, n grid.Net) {
	t.Helper()
	p := n.Start
	exited := false
	for range m.Width() * m.Height() {
		tile := tileAt(t, m, p)
		require.Equal(t, id, tile.Owner, "net %d broken at %v", id, p)
		if p == n.End {
			return
		}
		if tile.Underground && !exited {
			q := p.Step(tile.Dir)
			for {
				require.True(t, m.InBounds(q), "net %d tunnel from %v leaves the map", id, p)
				exit := tileAt(t, m, q)
				if exit.Owner == id && exit.Underground {
					require.Equal(t, tile.Dir, exit.Dir, "net %d tunnel turns at %v", id, q)
					break
				}
				q = q.Step(tile.Dir)
			}
			p, exited = q, true
			continue
		}
		p, exited = p.Step(tile.Dir), false
	}
	require.Failf(t, "path does not terminate", "net %d %v", id, n)
}

// requireLegalPlacement checks that no belt sits on an obstacle or on
// another net's endpoint.
func requireLegalPlacement(t *testing.T, m *grid.Map) {
	t.Helper()
	for p, tile := range m.All() {
		if !tile.HasBelt() {
			continue
		}
		require.False(t, tile.Obstacle, "belt on obstacle at %v", p)
		if tile.IsEndpoint() {
			require.Equal(t, tile.Endpoint, tile.Owner, "net %d belt on endpoint of net %d at %v", tile.Owner, tile.Endpoint, p)
		}
	}
}

func snapshot(m *grid.Map) map[grid.Point]grid.Tile {
	tiles := make(map[grid.Point]grid.Tile)
	for p, tile := range m.All() {
		tiles[p] = tile
	}
	return tiles
}

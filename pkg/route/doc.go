// Package route places belts for a netlist on a [grid.Map].
//
// # Overview
//
// Routing one net is a two-phase process. First a FIFO wavefront spreads out
// from the net's start and records, for each tile and arrival direction, the
// cheapest cost seen so far. Then the path is walked backward from the end by
// following decreasing costs, obeying the same turn rules as the wavefront,
// and the belts are committed to the map once the whole walk has succeeded.
//
// The per-direction costs cannot tell two visits of the same tile apart, so a
// walk can loop back over a surface tile it already used. When that happens
// nothing is committed: the tile is blocked for this net and the wavefront
// runs again, a bounded number of times, before the net is reported
// unroutable.
//
// The cost of entering a tile is one plus the number of orthogonal neighbours
// that are endpoints of other nets, so paths keep away from terminals they
// might otherwise block.
//
// # Tunnels
//
// A path that meets an occupied tile (a belt, an obstacle or a foreign
// endpoint) continues underground in a straight line and resurfaces on the
// first free tile. Only the entrance and exit tiles get a belt, flagged
// [grid.Tile.Underground]. Tunnel body tiles are deliberately left
// uncommitted: they keep no owner and stay free for other nets.
//
// # Netlists
//
// Belts are never ripped up, so the result depends on which net goes first.
// [Router.Route] routes the whole netlist several times under different
// orderings and keeps the cheapest attempt in which every net succeeded:
//
//	m, _ := grid.New(5, 5)
//	nets := grid.Netlist{{Start: grid.Point{X: 0, Y: 0}, End: grid.Point{X: 4, Y: 4}}}
//	cost, err := route.Route(m, nets, 0)
//
// A [Router] zero value routes with rotated orderings and no logging. Set
// [Router.Orderer], [Router.MaxTunnel], [Router.Logger], [Router.Progress]
// or [Router.Trace] to change that.
//
// Routing is single-threaded and owns the map for the duration of a call.
package route

// Package grid provides the occupancy grid that belt routing operates on.
//
// # Overview
//
// A [Map] is a width × height array of [Tile] values addressed by [Point].
// Each tile records which net owns the belt placed on it, the direction the
// belt faces, whether it is an underground (tunnel entrance or exit) belt,
// whether the cell is a fixed obstacle, which net declared the cell as an
// endpoint, and four per-direction routing costs used by the wavefront search
// in package route.
//
// Access is always bounds-checked. [Map.At] and [Map.MutableAt] return
// [ErrOutOfBounds] for coordinates outside the map instead of substituting a
// default tile:
//
//	m, _ := grid.New(5, 5)
//	if _, err := m.At(grid.Point{X: 7, Y: 0}); errors.Is(err, grid.ErrOutOfBounds) {
//	    // programming error in the caller
//	}
//
// # Lifecycle
//
// Obstacles are set once when the map is built ([Map.SetObstacle]). Before
// each whole-netlist attempt the router calls [Map.ResetRouting] and
// [Map.MarkEndpoints]; before each net it calls [Map.ResetCosts]. The best
// attempt is kept with [Map.Clone] and written back with [Map.Restore].
//
// # Rendering
//
// Renderers only need [Map.All], which yields every tile in row-major order
// without exposing routing internals.
//
// # Concurrency
//
// Map is not safe for concurrent use. The router owns the map for the
// duration of a routing call.
package grid

package grid

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrOutOfBounds is returned by every accessor given a point outside the
	// map. It always indicates a caller bug, never a routing outcome.
	ErrOutOfBounds = errors.New("grid: point out of bounds")

	// ErrEmptyGrid is returned by [New] when width or height is not positive.
	ErrEmptyGrid = errors.New("grid: width and height must be positive")

	// ErrSizeMismatch is returned by [Map.Restore] when the source map has
	// different dimensions.
	ErrSizeMismatch = errors.New("grid: map dimensions differ")
)

// Map is a rectangular array of tiles stored in row-major order.
//
// The zero value is not usable; create maps with [New].
type Map struct {
	width, height int
	tiles         []Tile
}

// New allocates a width × height map of empty tiles.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = emptyTile()
	}
	return &Map{width: width, height: height, tiles: tiles}, nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// InBounds reports whether p lies within [0,Width)×[0,Height).
func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

func (m *Map) index(p Point) int { return p.X + p.Y*m.width }

// At returns a copy of the tile at p.
func (m *Map) At(p Point) (Tile, error) {
	if !m.InBounds(p) {
		return Tile{}, fmt.Errorf("at %v on %dx%d map: %w", p, m.width, m.height, ErrOutOfBounds)
	}
	return m.tiles[m.index(p)], nil
}

// MutableAt returns a pointer to the tile at p for in-place updates.
func (m *Map) MutableAt(p Point) (*Tile, error) {
	if !m.InBounds(p) {
		return nil, fmt.Errorf("at %v on %dx%d map: %w", p, m.width, m.height, ErrOutOfBounds)
	}
	return &m.tiles[m.index(p)], nil
}

// SetObstacle marks or clears a fixed obstacle at p.
func (m *Map) SetObstacle(p Point, obstacle bool) error {
	t, err := m.MutableAt(p)
	if err != nil {
		return err
	}
	t.Obstacle = obstacle
	return nil
}

// ResetCosts sets all four directional costs of every tile to Infinity.
func (m *Map) ResetCosts() {
	for i := range m.tiles {
		m.tiles[i].Costs = [4]int{Infinity, Infinity, Infinity, Infinity}
	}
}

// ResetRouting clears belts, underground flags and endpoint owners.
// Obstacles are left untouched.
func (m *Map) ResetRouting() {
	for i := range m.tiles {
		t := &m.tiles[i]
		t.Owner = None
		t.Dir = North
		t.Underground = false
		t.Endpoint = None
	}
}

// MarkEndpoints writes each net's index into the endpoint owner of its start
// and end tiles. A later net sharing a point overwrites an earlier one.
func (m *Map) MarkEndpoints(nets Netlist) error {
	for i, n := range nets {
		for _, p := range [2]Point{n.Start, n.End} {
			t, err := m.MutableAt(p)
			if err != nil {
				return fmt.Errorf("net %d: %w", i, err)
			}
			t.Endpoint = i
		}
	}
	return nil
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	return &Map{width: m.width, height: m.height, tiles: slices.Clone(m.tiles)}
}

// Restore overwrites every tile of m with the tiles of src.
func (m *Map) Restore(src *Map) error {
	if src.width != m.width || src.height != m.height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, src.width, src.height, m.width, m.height)
	}
	copy(m.tiles, src.tiles)
	return nil
}

// All yields every point and tile in row-major order.
func (m *Map) All() iter.Seq2[Point, Tile] {
	return func(yield func(Point, Tile) bool) {
		for i, t := range m.tiles {
			if !yield(Point{X: i % m.width, Y: i / m.width}, t) {
				return
			}
		}
	}
}

// Belts returns the points owned by net id in row-major order.
func (m *Map) Belts(id int) []Point {
	var pts []Point
	for p, t := range m.All() {
		if t.Owner == id {
			pts = append(pts, p)
		}
	}
	return pts
}

package grid

import (
	"fmt"
	"math"
)

// None marks a tile that has no belt owner or endpoint owner.
const None = -1

// Infinity is the cost of a tile direction that has not been reached.
const Infinity = math.MaxInt

// Point is an integer grid coordinate. X grows east, Y grows south.
type Point struct {
	X, Y int
}

// Step returns the neighbouring point one cell in direction d.
func (p Point) Step(d Direction) Point {
	switch d {
	case North:
		return Point{p.X, p.Y - 1}
	case East:
		return Point{p.X + 1, p.Y}
	case South:
		return Point{p.X, p.Y + 1}
	case West:
		return Point{p.X - 1, p.Y}
	}
	return p
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Direction is one of the four cardinal directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in index order.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	default:
		return East
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool { return d >= North && d <= West }

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection converts a direction name ("north", "n", ...) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north", "n", "N":
		return North, nil
	case "east", "e", "E":
		return East, nil
	case "south", "s", "S":
		return South, nil
	case "west", "w", "W":
		return West, nil
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// Tile is one cell of a Map.
//
// A tunnel is recorded only at its two ends, which carry a belt with
// Underground set. The tiles the tunnel passes beneath are left uncommitted:
// they keep Owner None and remain free for other nets.
type Tile struct {
	Owner       int       // net index owning the belt on this tile, or None
	Dir         Direction // direction the belt faces
	Underground bool      // tunnel entrance or exit belt; body tiles are not marked
	Obstacle    bool      // no belt may be placed here
	Endpoint    int       // net index that declared this cell as start or end, or None
	Costs       [4]int    // routing cost indexed by arrival direction
}

// HasBelt reports whether a net has committed a belt on the tile.
func (t Tile) HasBelt() bool { return t.Owner != None }

// IsEndpoint reports whether some net declared this cell as start or end.
func (t Tile) IsEndpoint() bool { return t.Endpoint != None }

// MinCost returns the cheapest recorded cost over all arrival directions,
// or Infinity if the tile was not reached.
func (t Tile) MinCost() int {
	best := Infinity
	for _, c := range t.Costs {
		best = min(best, c)
	}
	return best
}

func emptyTile() Tile {
	return Tile{
		Owner:    None,
		Endpoint: None,
		Costs:    [4]int{Infinity, Infinity, Infinity, Infinity},
	}
}

// Net is one start → end connection to be routed.
type Net struct {
	Start Point
	End   Point
}

func (n Net) String() string { return fmt.Sprintf("%v->%v", n.Start, n.End) }

// Netlist is the ordered collection of nets for one routing job.
// The index of a net in the list is its id on the map.
type Netlist []Net

// Validate checks that every endpoint of every net lies on m.
func (nl Netlist) Validate(m *Map) error {
	for i, n := range nl {
		if !m.InBounds(n.Start) {
			return fmt.Errorf("net %d start %v: %w", i, n.Start, ErrOutOfBounds)
		}
		if !m.InBounds(n.End) {
			return fmt.Errorf("net %d end %v: %w", i, n.End, ErrOutOfBounds)
		}
	}
	return nil
}

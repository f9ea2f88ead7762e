package route

import (
	"fmt"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// cursor is a position on the backward walk. dir is the direction the belt
// on pos faces; at the end tile that is the arrival direction.
type cursor struct {
	pos   grid.Point
	dir   grid.Direction
	cost  int
	under bool
}

// retraceOrder lists the arrival directions tried after the cursor's own.
var retraceOrder = [4]grid.Direction{grid.South, grid.West, grid.North, grid.East}

// walk follows decreasing costs from the solution back to the start without
// touching the map. It returns the cursors from end to start and their total
// cost. If the walk reaches a surface tile it already passed, it stops and
// reports that tile as a crossing.
func (s *search) walk(sol solution) (path []cursor, cost int, crossing *grid.Point, err error) {
	cur := cursor{pos: sol.pos, dir: sol.dir, cost: sol.cost}
	seen := make(map[grid.Point]bool)
	for range sol.cost {
		if !cur.under {
			if seen[cur.pos] {
				p := cur.pos
				return path, 0, &p, nil
			}
			seen[cur.pos] = true
		}
		path = append(path, cur)
		cost += s.localCost(cur.pos)
		if cur.pos == s.net.Start {
			return path, cost, nil, nil
		}

		succUnder := len(path) > 1 && path[len(path)-2].under
		if cur, err = s.predecessor(cur, succUnder); err != nil {
			return nil, 0, nil, err
		}
	}
	return nil, 0, nil, fmt.Errorf("%w: net %d took more than %d steps", ErrRetraceInconsistency, s.id, sol.cost)
}

// predecessor finds the tile the wavefront came from when it reached cur.
// succUnder reports whether the tile after cur on the path is crossed
// underground.
//
// A matching arrival must obey the same rules as expand: no reversal, and no
// turn on a tunnel tile, on a resurfacing tile or in front of a tunnel.
// Arrivals with exactly the cursor's cost are preferred. A cheaper arrival in
// the same state also reaches the successor; it is needed when the wavefront
// stopped before a late improvement reached the end.
func (s *search) predecessor(cur cursor, succUnder bool) (cursor, error) {
	t, err := s.m.At(cur.pos)
	if err != nil {
		return cursor{}, fmt.Errorf("net %d: %w", s.id, err)
	}

	candidates := []grid.Direction{cur.dir}
	if !cur.under {
		candidates = append(candidates, retraceOrder[:]...)
	}
	for _, exact := range [2]bool{true, false} {
		for _, d := range candidates {
			c := t.Costs[d]
			if c == grid.Infinity || d == cur.dir.Opposite() {
				continue
			}
			if (exact && c != cur.cost) || (!exact && c >= cur.cost) {
				continue
			}
			p := cur.pos.Step(d.Opposite())
			if !s.m.InBounds(p) {
				continue
			}
			under, err := s.occupied(p)
			if err != nil {
				return cursor{}, err
			}
			if d != cur.dir && (cur.under || succUnder || under) {
				continue
			}
			target := c - s.localCost(cur.pos)
			if target <= 0 {
				return cursor{}, fmt.Errorf("%w: net %d at %v: cost %d leaves %d", ErrRetraceInconsistency, s.id, cur.pos, c, target)
			}
			return cursor{pos: p, dir: d, cost: target, under: under}, nil
		}
	}
	return cursor{}, fmt.Errorf("%w: net %d at %v: no predecessor with cost %d", ErrRetraceInconsistency, s.id, cur.pos, cur.cost)
}

// commit writes the belts of a walked path, given from end to start.
// Surface tiles get a belt; the tiles where the path goes down into or comes
// up out of a tunnel get an underground belt. Tunnel body tiles stay free.
func (s *search) commit(path []cursor) error {
	lastUnder := false
	for i, cur := range path {
		goingDown := !cur.under && i+1 < len(path) && path[i+1].under

		// A free tile between two tunnels is crossed underground.
		if goingDown && lastUnder {
			cur.under = true
			goingDown = false
		}
		goingUp := lastUnder && !cur.under

		t, err := s.m.MutableAt(cur.pos)
		if err != nil {
			return fmt.Errorf("net %d: %w", s.id, err)
		}
		switch {
		case goingUp || goingDown:
			t.Owner, t.Dir, t.Underground = s.id, cur.dir, true
		case !cur.under:
			t.Owner, t.Dir, t.Underground = s.id, cur.dir, false
		}
		lastUnder = cur.under
	}
	return nil
}

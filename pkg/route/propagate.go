package route

import (
	"context"
	"fmt"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// cancelCheckInterval is how many wavefront steps run between context checks.
const cancelCheckInterval = 4096

// search holds the state of routing one net.
type search struct {
	ctx context.Context
	r   *Router
	m   *grid.Map
	id  int
	net grid.Net

	// blocked holds tiles a previous walk crossed twice. They are treated as
	// occupied so the next wavefront passes them underground or not at all.
	blocked map[grid.Point]bool
}

// solution is the cheapest surface arrival at the end found by propagate.
type solution struct {
	pos  grid.Point
	dir  grid.Direction
	cost int
}

// localCost is the price of entering p: one, plus one for every orthogonal
// neighbour that is another net's endpoint.
func (s *search) localCost(p grid.Point) int {
	cost := 1
	for _, d := range grid.Directions {
		q := p.Step(d)
		if !s.m.InBounds(q) {
			continue
		}
		if t, _ := s.m.At(q); t.IsEndpoint() && t.Endpoint != s.id {
			cost++
		}
	}
	return cost
}

// occupied reports whether the net cannot place a surface belt on p.
func (s *search) occupied(p grid.Point) (bool, error) {
	t, err := s.m.At(p)
	if err != nil {
		return false, err
	}
	return t.HasBelt() || t.Obstacle || (t.IsEndpoint() && t.Endpoint != s.id) || s.blocked[p], nil
}

// propagate runs the wavefront from the net's start and fills in tile costs.
// It reports false if the end was never reached on the surface.
func (s *search) propagate() (solution, bool, error) {
	s.m.ResetCosts()

	var q frontier
	for _, d := range grid.Directions {
		q.push(entry{pos: s.net.Start, dir: d})
	}

	best := solution{cost: NoSolution}
	extra := -1
	iterations := 0
	for q.len() > 0 {
		iterations++
		if iterations%cancelCheckInterval == 0 {
			if err := s.ctx.Err(); err != nil {
				return best, false, fmt.Errorf("net %d: %w", s.id, err)
			}
		}
		if extra >= 0 {
			if extra == 0 {
				break
			}
			extra--
		}

		e := q.pop()
		cost := e.cost + s.localCost(e.pos)

		if e.pos == s.net.End && !e.under && (best.cost == NoSolution || cost < best.cost) {
			best = solution{pos: e.pos, dir: e.dir, cost: cost}
			extra = int(float64(iterations) * s.r.extraSearch())
			s.r.debug("found candidate", "net", s.id, "cost", cost, "dir", e.dir, "iterations", iterations)
		}

		t, err := s.m.MutableAt(e.pos)
		if err != nil {
			return best, false, fmt.Errorf("net %d: %w", s.id, err)
		}
		if cost >= t.Costs[e.dir] {
			continue
		}
		if s.r.Trace != nil {
			s.r.Trace(TraceEvent{Net: s.id, Pos: e.pos, Dir: e.dir, Old: t.Costs[e.dir], Cost: cost})
		}
		t.Costs[e.dir] = cost

		if err := s.expand(&q, e, cost); err != nil {
			return best, false, err
		}
	}
	return best, best.cost != NoSolution, nil
}

// expand queues the successors of e, which was committed at cost.
func (s *search) expand(q *frontier, e entry, cost int) error {
	for _, d := range grid.Directions {
		if d == e.dir.Opposite() {
			continue
		}
		if (e.under || e.goingUp) && d != e.dir {
			continue
		}
		next := e.pos.Step(d)
		if !s.m.InBounds(next) {
			continue
		}
		under, err := s.occupied(next)
		if err != nil {
			return err
		}
		if under && d != e.dir {
			continue
		}
		tunnel := 0
		if under {
			tunnel = 1
			if e.under {
				tunnel = e.tunnel + 1
			}
			if s.r.MaxTunnel > 0 && tunnel > s.r.MaxTunnel {
				continue
			}
		}
		q.push(entry{
			pos:     next,
			dir:     d,
			cost:    cost,
			under:   under,
			goingUp: e.under && !under,
			tunnel:  tunnel,
		})
	}
	return nil
}

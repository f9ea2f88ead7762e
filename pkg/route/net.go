package route

import (
	"context"
	"fmt"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// maxDetours bounds how often RouteNet re-runs the wavefront around a tile
// the walked path crossed twice.
const maxDetours = 8

// RouteNet routes net id from n.Start to n.End and commits its belts to m.
// It returns the path cost, or NoSolution with an error wrapping
// [ErrInvalidStartPoint], [ErrUnroutableNet], [ErrRetraceInconsistency] or
// [grid.ErrOutOfBounds].
//
// The endpoints of every net must already be marked on m; belts of nets
// routed earlier are treated as obstacles that can only be tunnelled under.
func (r *Router) RouteNet(m *grid.Map, id int, n grid.Net) (int, error) {
	return r.routeNet(context.Background(), m, id, n)
}

func (r *Router) routeNet(ctx context.Context, m *grid.Map, id int, n grid.Net) (int, error) {
	if !m.InBounds(n.End) {
		return NoSolution, fmt.Errorf("net %d end %v: %w", id, n.End, grid.ErrOutOfBounds)
	}
	s := &search{ctx: ctx, r: r, m: m, id: id, net: n, blocked: make(map[grid.Point]bool)}

	occupied, err := s.occupied(n.Start)
	if err != nil {
		return NoSolution, fmt.Errorf("net %d start: %w", id, err)
	}
	if occupied {
		return NoSolution, fmt.Errorf("%w: net %d at %v", ErrInvalidStartPoint, id, n.Start)
	}

	for range maxDetours + 1 {
		sol, ok, err := s.propagate()
		if err != nil {
			return NoSolution, err
		}
		if !ok {
			return NoSolution, fmt.Errorf("%w: net %d %v", ErrUnroutableNet, id, n)
		}

		path, cost, crossing, err := s.walk(sol)
		if err != nil {
			return NoSolution, err
		}
		if crossing == nil {
			if err := s.commit(path); err != nil {
				return NoSolution, err
			}
			r.debug("routed net", "net", id, "cost", cost, "detours", len(s.blocked))
			return cost, nil
		}
		if *crossing == n.Start || *crossing == n.End {
			return NoSolution, fmt.Errorf("%w: net %d crosses its own endpoint %v", ErrUnroutableNet, id, *crossing)
		}
		r.debug("path crosses itself", "net", id, "at", *crossing)
		s.blocked[*crossing] = true
	}
	return NoSolution, fmt.Errorf("%w: net %d still crosses itself after %d detours", ErrUnroutableNet, id, maxDetours)
}

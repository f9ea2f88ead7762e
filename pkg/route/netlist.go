package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// Route routes every net of nets on m, trying up to attempts orderings, and
// leaves the cheapest fully routed attempt on the map. attempts <= 0 means
// one attempt per net.
//
// If no attempt succeeds it returns NoSolution and an error wrapping
// [ErrAllOrderingsFailed] and the last net failure; the map then holds the
// partial state of the last attempt. Obstacles are never modified.
func (r *Router) Route(m *grid.Map, nets grid.Netlist, attempts int) (int, error) {
	return r.RouteContext(context.Background(), m, nets, attempts)
}

// RouteContext is like Route but gives up once ctx is done. The context is
// checked before every attempt, before every net and periodically inside the
// wavefront. On cancellation it returns NoSolution and an error wrapping
// ctx.Err(); the map then holds whatever the interrupted attempt had placed.
func (r *Router) RouteContext(ctx context.Context, m *grid.Map, nets grid.Netlist, attempts int) (int, error) {
	if len(nets) == 0 {
		return NoSolution, ErrEmptyNetlist
	}
	if err := nets.Validate(m); err != nil {
		return NoSolution, err
	}
	if attempts <= 0 {
		attempts = len(nets)
	}

	orderer := r.orderer()
	best := NoSolution
	var snapshot *grid.Map
	var lastErr error

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return NoSolution, fmt.Errorf("route stopped after %d of %d attempts: %w", i, attempts, err)
		}
		order := orderer.Order(len(nets), i)
		m.ResetRouting()
		if err := m.MarkEndpoints(nets); err != nil {
			return NoSolution, err
		}

		total, err := r.routeOrder(ctx, m, nets, order)
		if errors.Is(err, grid.ErrOutOfBounds) {
			return NoSolution, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return NoSolution, fmt.Errorf("route stopped in attempt %d: %w", i, err)
		}

		improved := err == nil && (best == NoSolution || total < best)
		if improved {
			best = total
			snapshot = m.Clone()
		}
		if err != nil {
			lastErr = err
			r.debug("attempt failed", "attempt", i, "order", order, "err", err)
		} else {
			r.debug("attempt routed", "attempt", i, "order", order, "cost", total, "best", best)
		}
		if r.Progress != nil {
			r.Progress(Attempt{Index: i, Order: order, Cost: total, Err: err, Improved: improved})
		}
	}

	if snapshot == nil {
		return NoSolution, fmt.Errorf("%w (%d attempts): %w", ErrAllOrderingsFailed, attempts, lastErr)
	}
	if err := m.Restore(snapshot); err != nil {
		return NoSolution, err
	}
	return best, nil
}

// routeOrder routes nets in the given order and stops at the first failure.
func (r *Router) routeOrder(ctx context.Context, m *grid.Map, nets grid.Netlist, order []int) (int, error) {
	total := 0
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return NoSolution, err
		}
		cost, err := r.routeNet(ctx, m, id, nets[id])
		if err != nil {
			return NoSolution, err
		}
		total += cost
	}
	return total, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/McKayRansom/auto-factorio/pkg/cache"
	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/observability"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/render"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

// Route builds the map of p and routes its netlist. A netlist that cannot be
// routed is not an error: the result is marked unsolved, carries the error
// code, and the map holds the last partial attempt. Invalid problems,
// internal failures and a done ctx are returned as errors; the latter carry
// the TIMEOUT code.
func Route(ctx context.Context, p *problem.Problem, opts Options) (*problem.Result, *grid.Map, grid.Netlist, error) {
	if err := opts.ValidateForRoute(); err != nil {
		return nil, nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, errors.FromRouting(err)
	}

	m, nets, err := p.Build()
	if err != nil {
		return nil, nil, nil, errors.FromRouting(err)
	}

	r := opts.Router()
	r.Progress = func(a route.Attempt) {
		observability.Routing().OnAttempt(ctx, p.Name, a.Index, a.Cost, a.Err)
		if opts.Progress != nil {
			opts.Progress(a)
		}
	}

	start := time.Now()
	observability.Routing().OnRouteStart(ctx, p.Name, len(nets))
	cost, routeErr := r.RouteContext(ctx, m, nets, opts.AttemptsFor(p))
	observability.Routing().OnRouteComplete(ctx, p.Name, cost, time.Since(start), routeErr)

	coded := errors.FromRouting(routeErr)
	if routeErr != nil && !errors.Is(coded, errors.ErrCodeUnroutable) {
		return nil, nil, nil, coded
	}

	res := problem.NewResult(p, m, cost, routeErr)
	res.Code = string(errors.GetCode(coded))
	res.ASCII = render.ASCII(m)
	return res, m, nets, nil
}

// RouteWithCacheInfo routes p through the runner's cache and reports whether
// the result was a cache hit.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, p *problem.Problem, opts Options) (*problem.Result, *grid.Map, grid.Netlist, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRoute(); err != nil {
		return nil, nil, nil, false, err
	}

	key, err := r.resultKey(p, opts)
	if err != nil {
		return nil, nil, nil, false, err
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res problem.Result
			if err := json.Unmarshal(data, &res); err == nil {
				if m, nets, err := res.Map(); err == nil {
					observability.Cache().OnCacheHit(ctx, "result")
					return &res, m, nets, true, nil
				}
			}
			// Undecodable entries fall through to a fresh route.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	res, m, nets, err := Route(ctx, p, opts)
	if err != nil {
		return nil, nil, nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLResult); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	return res, m, nets, false, nil
}

// resultKey hashes the problem's canonical JSON together with the options.
func (r *Runner) resultKey(p *problem.Problem, opts Options) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash problem")
	}
	return r.Keyer.ResultKey(cache.Hash(data), opts.ResultKeyOpts(p)), nil
}

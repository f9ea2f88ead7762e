package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/McKayRansom/auto-factorio/pkg/cache"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

// Runner executes the pipeline with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner keeps no per-run state; multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute routes p and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, p *problem.Problem, opts Options) (*Output, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	out := &Output{}

	routeStart := time.Now()
	opts.Progress = countAttempts(&out.Stats.Attempts, opts.Progress)
	res, m, nets, hit, err := r.RouteWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	out.Result, out.Map, out.Nets = res, m, nets
	out.Stats.RouteTime = time.Since(routeStart)
	out.CacheInfo.RouteHit = hit

	r.Logger.Info("routed netlist",
		"problem", p.Name,
		"nets", len(nets),
		"cost", res.Cost,
		"solved", res.Solved,
		"cached", hit,
		"duration", out.Stats.RouteTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out.Artifacts = artifacts
	out.Stats.RenderTime = time.Since(renderStart)
	out.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", out.Stats.RenderTime)

	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// countAttempts wraps a progress callback so every reported attempt is counted.
func countAttempts(n *int, next func(route.Attempt)) func(route.Attempt) {
	return func(a route.Attempt) {
		*n = a.Index + 1
		if next != nil {
			next(a)
		}
	}
}

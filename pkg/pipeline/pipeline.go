// Package pipeline runs the load → route → render pipeline shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a problem from a TOML or JSON document
//  2. Route: Build the map and route the netlist, cached by problem content
//     and routing options
//  3. Render: Produce the requested output formats (text, json, dot, svg)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	p, err := pipeline.LoadFile("examples/madness-1.toml")
//	out, err := runner.Execute(ctx, p, pipeline.Options{Formats: []string{"text", "svg"}})
//	fmt.Print(string(out.Artifacts["text"]))
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/McKayRansom/auto-factorio/pkg/cache"
	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultOrdering is the default net ordering strategy.
	DefaultOrdering = "rotation"

	// DefaultSeed seeds the shuffle ordering.
	DefaultSeed = uint64(42)

	// TTLResult is how long routed results stay cached.
	TTLResult = 30 * 24 * time.Hour

	// TTLArtifact is how long rendered SVGs stay cached.
	TTLArtifact = 30 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures routing and rendering. It is accepted as JSON by the API.
type Options struct {
	// Route options
	Attempts  int    `json:"attempts,omitempty"` // 0 uses the problem's value, then one per net
	Ordering  string `json:"ordering,omitempty"`
	Seed      uint64 `json:"seed,omitempty"`
	MaxTunnel int    `json:"max_tunnel,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger         `json:"-"`
	Progress func(route.Attempt) `json:"-"`

	validated bool
}

// Output contains everything a pipeline run produced.
type Output struct {
	// Result is the serializable routing result.
	Result *problem.Result

	// Map is the routed map. After a cache hit its tile costs are unset.
	Map *grid.Map

	// Nets is the netlist routed on Map.
	Nets grid.Netlist

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Attempts   int
	RouteTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RouteHit  bool // Whether the routed result came from cache
	RenderHit bool // Whether every artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRoute(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRoute validates and sets defaults for routing.
func (o *Options) ValidateForRoute() error {
	if o.Ordering == "" {
		o.Ordering = DefaultOrdering
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errors.ValidateAttempts(o.Attempts); err != nil {
		return err
	}
	if o.MaxTunnel < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max tunnel must not be negative, got %d", o.MaxTunnel)
	}
	return errors.ValidateOrdering(o.Ordering)
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	formats, err := errors.ValidateFormats(strings.Join(o.Formats, ","))
	if err != nil {
		return err
	}
	o.Formats = formats
	return nil
}

// AttemptsFor returns the attempt budget for p: the explicit option, else the
// problem's own value, else zero (one attempt per net).
func (o *Options) AttemptsFor(p *problem.Problem) int {
	if o.Attempts > 0 {
		return o.Attempts
	}
	return p.Attempts
}

// Router builds the router configured by the options.
func (o *Options) Router() *route.Router {
	r := &route.Router{MaxTunnel: o.MaxTunnel, Logger: o.Logger}
	if o.Ordering == "shuffle" {
		r.Orderer = route.Shuffle{Seed: o.Seed}
	}
	return r
}

// ResultKeyOpts returns the cache key options for p.
func (o *Options) ResultKeyOpts(p *problem.Problem) cache.ResultKeyOpts {
	opts := cache.ResultKeyOpts{
		Attempts:  o.AttemptsFor(p),
		Order:     o.Ordering,
		MaxTunnel: o.MaxTunnel,
	}
	if o.Ordering == "shuffle" {
		opts.Seed = o.Seed
	}
	return opts
}

package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/McKayRansom/auto-factorio/pkg/cache"
	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

const startingTunnels = `
name = "starting tunnels"
width = 5
height = 5
attempts = 1
obstacles = [[4, 4]]

[[nets]]
start = [1, 0]
end = [1, 4]

[[nets]]
start = [0, 2]
end = [4, 2]
`

const cannotTunnel = `{
  "name": "cannot tunnel",
  "width": 5,
  "height": 5,
  "attempts": 1,
  "nets": [
    {"start": [1, 0], "end": [1, 4]},
    {"start": [3, 0], "end": [3, 4]},
    {"start": [2, 0], "end": [4, 2]}
  ]
}`

// memCache is a map-backed cache that counts operations.
type memCache struct {
	mu         sync.Mutex
	data       map[string][]byte
	gets, sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func mustLoad(t *testing.T, doc string) *problem.Problem {
	t.Helper()
	p, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestLoad_DetectsFormat(t *testing.T) {
	toml := mustLoad(t, startingTunnels)
	if toml.Name != "starting tunnels" || len(toml.Nets) != 2 {
		t.Errorf("toml problem = %+v", toml)
	}
	js := mustLoad(t, "\n  "+cannotTunnel)
	if js.Name != "cannot tunnel" || len(js.Nets) != 3 {
		t.Errorf("json problem = %+v", js)
	}

	_, err := Load([]byte(`width = 0`))
	if !errors.Is(err, errors.ErrCodeInvalidProblem) {
		t.Errorf("Load(width = 0) = %v, want INVALID_PROBLEM", err)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("does-not-exist.toml")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("LoadFile = %v, want INVALID_INPUT", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Ordering != DefaultOrdering {
		t.Errorf("Ordering = %q, want %q", opts.Ordering, DefaultOrdering)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats = %v, want [text]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative attempts", Options{Attempts: -1}, errors.ErrCodeInvalidInput},
		{"negative tunnel", Options{MaxTunnel: -2}, errors.ErrCodeInvalidInput},
		{"unknown ordering", Options{Ordering: "random"}, errors.ErrCodeInvalidInput},
		{"unknown format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsFormatsNormalized(t *testing.T) {
	opts := Options{Formats: []string{"JSON", "text", "json"}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}
	if strings.Join(opts.Formats, ",") != "json,text" {
		t.Errorf("Formats = %v, want [json text]", opts.Formats)
	}
}

func TestOptionsAttemptsFor(t *testing.T) {
	p := &problem.Problem{Attempts: 3}
	if got := (&Options{}).AttemptsFor(p); got != 3 {
		t.Errorf("AttemptsFor = %d, want the problem's 3", got)
	}
	if got := (&Options{Attempts: 7}).AttemptsFor(p); got != 7 {
		t.Errorf("AttemptsFor = %d, want the explicit 7", got)
	}
}

func TestOptionsResultKeyOpts(t *testing.T) {
	p := &problem.Problem{}
	rot := Options{Ordering: "rotation", Seed: 9}
	if got := rot.ResultKeyOpts(p).Seed; got != 0 {
		t.Errorf("rotation key seed = %d, want 0", got)
	}
	shuf := Options{Ordering: "shuffle", Seed: 9}
	if got := shuf.ResultKeyOpts(p).Seed; got != 9 {
		t.Errorf("shuffle key seed = %d, want 9", got)
	}
	if _, ok := shuf.Router().Orderer.(route.Shuffle); !ok {
		t.Error("shuffle options should build a Shuffle orderer")
	}
}

func TestRoute_Solved(t *testing.T) {
	p := mustLoad(t, startingTunnels)
	res, m, nets, err := Route(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !res.Solved || res.Cost != 11 || res.Code != "" {
		t.Errorf("result = solved %v cost %d code %q, want solved cost 11", res.Solved, res.Cost, res.Code)
	}
	if len(nets) != 2 || len(res.Belts) != 9 {
		t.Errorf("nets = %d belts = %d, want 2 and 9", len(nets), len(res.Belts))
	}
	if len(m.Belts(1)) != 4 {
		t.Errorf("net 1 belts = %d, want 4", len(m.Belts(1)))
	}
	if !strings.Contains(res.ASCII, "|1]0v1]1>1>|") {
		t.Errorf("ASCII missing tunnel row:\n%s", res.ASCII)
	}
}

func TestRoute_Unsolved(t *testing.T) {
	p := mustLoad(t, cannotTunnel)
	res, _, _, err := Route(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("unroutable netlists are results, not errors: %v", err)
	}
	if res.Solved || res.Cost != route.NoSolution {
		t.Errorf("result = solved %v cost %d, want unsolved", res.Solved, res.Cost)
	}
	if res.Code != string(errors.ErrCodeUnroutable) || res.Error == "" {
		t.Errorf("code = %q error = %q", res.Code, res.Error)
	}

	// One attempt per net finds the ordering that works.
	res, _, _, err = Route(context.Background(), p, Options{Attempts: 3})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !res.Solved || res.Cost != 20 {
		t.Errorf("result = solved %v cost %d, want solved cost 20", res.Solved, res.Cost)
	}
}

func TestRoute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := Route(ctx, mustLoad(t, startingTunnels), Options{})
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Route on a canceled context = %v, want TIMEOUT", err)
	}
}

func TestRoute_CanceledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts int
	opts := Options{
		Attempts: 3,
		Progress: func(route.Attempt) {
			attempts++
			cancel()
		},
	}
	res, _, _, err := Route(ctx, mustLoad(t, cannotTunnel), opts)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Fatalf("Route = %v, want TIMEOUT", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want none", res)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want routing to stop after the first", attempts)
	}
}

func TestRunner_CachesResult(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	p := mustLoad(t, startingTunnels)
	ctx := context.Background()

	first, err := r.Execute(ctx, p, Options{Formats: []string{"text", "json"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RouteHit {
		t.Error("first run should miss")
	}
	if first.Stats.Attempts != 1 {
		t.Errorf("Stats.Attempts = %d, want 1", first.Stats.Attempts)
	}

	second, err := r.Execute(ctx, p, Options{Formats: []string{"text", "json"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RouteHit {
		t.Error("second run should hit")
	}
	if second.Result.ID != first.Result.ID {
		t.Errorf("cached ID = %s, want %s", second.Result.ID, first.Result.ID)
	}
	if string(second.Artifacts["text"]) != string(first.Artifacts["text"]) {
		t.Errorf("cached map differs:\n%s\nvs\n%s", second.Artifacts["text"], first.Artifacts["text"])
	}

	var decoded problem.Result
	if err := json.Unmarshal(second.Artifacts["json"], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded.Cost != 11 {
		t.Errorf("json cost = %d, want 11", decoded.Cost)
	}

	third, err := r.Execute(ctx, p, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RouteHit || third.Result.ID == first.Result.ID {
		t.Error("refresh should route again")
	}
}

func TestRunner_OptionsChangeKey(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	p := mustLoad(t, cannotTunnel)
	ctx := context.Background()

	a, err := r.Execute(ctx, p, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := r.Execute(ctx, p, Options{Attempts: 3})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.CacheInfo.RouteHit {
		t.Error("a different attempt budget must not share a cache entry")
	}
	if a.Result.Solved || !b.Result.Solved {
		t.Errorf("solved = %v/%v, want false/true", a.Result.Solved, b.Result.Solved)
	}
	if len(c.data) != 2 {
		t.Errorf("cache entries = %d, want 2", len(c.data))
	}
}

func TestRunner_DOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	out, err := r.Execute(context.Background(), mustLoad(t, startingTunnels), Options{Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := string(out.Artifacts["dot"])
	if !strings.HasPrefix(dot, "digraph") {
		t.Errorf("dot output = %.40q", dot)
	}
	if _, ok := out.Artifacts["text"]; ok {
		t.Error("only requested formats are rendered")
	}
}

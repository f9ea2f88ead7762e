package problem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// Result is the outcome of routing one problem.
type Result struct {
	ID        string    `json:"id" bson:"_id"`
	Problem   Problem   `json:"problem" bson:"problem"`
	Cost      int       `json:"cost" bson:"cost"`
	Solved    bool      `json:"solved" bson:"solved"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
	Code      string    `json:"code,omitempty" bson:"code,omitempty"`
	Belts     []Belt    `json:"belts" bson:"belts"`
	ASCII     string    `json:"ascii,omitempty" bson:"ascii,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Belt is one committed belt tile.
type Belt struct {
	X           int    `json:"x" bson:"x"`
	Y           int    `json:"y" bson:"y"`
	Net         int    `json:"net" bson:"net"`
	Dir         string `json:"dir" bson:"dir"`
	Underground bool   `json:"underground,omitempty" bson:"underground,omitempty"`
}

// NewResult captures the belts of m after routing p. A non-nil routeErr
// marks the result unsolved.
func NewResult(p *Problem, m *grid.Map, cost int, routeErr error) *Result {
	r := &Result{
		ID:        uuid.NewString(),
		Problem:   *p,
		Cost:      cost,
		Solved:    routeErr == nil,
		Belts:     []Belt{},
		CreatedAt: time.Now().UTC(),
	}
	if routeErr != nil {
		r.Error = routeErr.Error()
	}
	for pt, t := range m.All() {
		if !t.HasBelt() {
			continue
		}
		r.Belts = append(r.Belts, Belt{X: pt.X, Y: pt.Y, Net: t.Owner, Dir: t.Dir.String(), Underground: t.Underground})
	}
	return r
}

// Map rebuilds the routed map: obstacles, endpoints and belts.
func (r *Result) Map() (*grid.Map, grid.Netlist, error) {
	m, nets, err := r.Problem.Build()
	if err != nil {
		return nil, nil, err
	}
	if err := m.MarkEndpoints(nets); err != nil {
		return nil, nil, err
	}
	for _, b := range r.Belts {
		if b.Net < 0 || b.Net >= len(nets) {
			return nil, nil, fmt.Errorf("%w: belt at (%d,%d) has unknown net %d", ErrInvalid, b.X, b.Y, b.Net)
		}
		dir, err := grid.ParseDirection(b.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: belt at (%d,%d): %w", ErrInvalid, b.X, b.Y, err)
		}
		t, err := m.MutableAt(grid.Point{X: b.X, Y: b.Y})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		t.Owner, t.Dir, t.Underground = b.Net, dir, b.Underground
	}
	return m, nets, nil
}

// WriteResult encodes r as indented JSON.
func WriteResult(r *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadResult decodes a JSON result and validates its problem.
func ReadResult(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := res.Problem.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExportResult writes r to a JSON file at path.
func ExportResult(r *Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(r, f)
}

// ImportResult reads a JSON result file.
func ImportResult(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResult(f)
}

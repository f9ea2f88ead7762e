package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid problem")

// Problem is a map and the nets to route on it.
type Problem struct {
	Name      string   `toml:"name,omitempty" json:"name,omitempty"`
	Width     int      `toml:"width" json:"width"`
	Height    int      `toml:"height" json:"height"`
	Attempts  int      `toml:"attempts,omitempty" json:"attempts,omitempty"`
	Obstacles [][2]int `toml:"obstacles,omitempty" json:"obstacles,omitempty"`
	Nets      []Net    `toml:"nets" json:"nets"`
}

// Net is one named connection.
type Net struct {
	Name  string `toml:"name,omitempty" json:"name,omitempty"`
	Start [2]int `toml:"start" json:"start"`
	End   [2]int `toml:"end" json:"end"`
}

// Label returns the net's name, or its index when unnamed.
func (n Net) Label(i int) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("net %d", i)
}

func point(xy [2]int) grid.Point { return grid.Point{X: xy[0], Y: xy[1]} }

// Parse decodes and validates a TOML problem.
func Parse(data []byte) (*Problem, error) {
	var p Problem
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: decode toml: %w", ErrInvalid, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseJSON decodes and validates a JSON problem.
func ParseJSON(data []byte) (*Problem, error) {
	var p Problem
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", ErrInvalid, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Read decodes a TOML problem from r.
func Read(r io.Reader) (*Problem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Encode writes p as TOML.
func Encode(w io.Writer, p *Problem) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Validate checks dimensions, that there is at least one net, and that every
// coordinate lies on the map.
func (p *Problem) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, p.Width, p.Height)
	}
	if len(p.Nets) == 0 {
		return fmt.Errorf("%w: no nets", ErrInvalid)
	}
	if p.Attempts < 0 {
		return fmt.Errorf("%w: negative attempts %d", ErrInvalid, p.Attempts)
	}
	for i, o := range p.Obstacles {
		if !p.contains(o) {
			return fmt.Errorf("%w: obstacle %d at %v is off the map", ErrInvalid, i, o)
		}
	}
	for i, n := range p.Nets {
		if !p.contains(n.Start) {
			return fmt.Errorf("%w: %s start %v is off the map", ErrInvalid, n.Label(i), n.Start)
		}
		if !p.contains(n.End) {
			return fmt.Errorf("%w: %s end %v is off the map", ErrInvalid, n.Label(i), n.End)
		}
	}
	return nil
}

func (p *Problem) contains(xy [2]int) bool {
	return xy[0] >= 0 && xy[0] < p.Width && xy[1] >= 0 && xy[1] < p.Height
}

// Netlist returns the nets in file order.
func (p *Problem) Netlist() grid.Netlist {
	nets := make(grid.Netlist, len(p.Nets))
	for i, n := range p.Nets {
		nets[i] = grid.Net{Start: point(n.Start), End: point(n.End)}
	}
	return nets
}

// Build creates the map with its obstacles and returns it with the netlist.
func (p *Problem) Build() (*grid.Map, grid.Netlist, error) {
	m, err := grid.New(p.Width, p.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for _, o := range p.Obstacles {
		if err := m.SetObstacle(point(o), true); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	nets := p.Netlist()
	if err := nets.Validate(m); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return m, nets, nil
}

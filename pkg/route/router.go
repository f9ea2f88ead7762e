package route

import (
	"github.com/charmbracelet/log"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
)

// DefaultExtraSearch is the fraction of iterations spent so far that the
// wavefront keeps running after each improvement of the best candidate.
const DefaultExtraSearch = 0.5

// Router routes nets on a map. The zero value is ready to use.
type Router struct {
	// Orderer chooses the net order of each attempt. Nil means [Rotation].
	Orderer Orderer

	// MaxTunnel limits the number of consecutive underground tiles.
	// Zero means unlimited.
	MaxTunnel int

	// ExtraSearch overrides [DefaultExtraSearch] when positive. A negative
	// value stops the wavefront at the first candidate.
	ExtraSearch float64

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger

	// Progress is called after every whole-netlist attempt.
	Progress func(Attempt)

	// Trace is called for every cost the wavefront commits to a tile.
	Trace func(TraceEvent)
}

// Attempt summarizes one whole-netlist attempt.
type Attempt struct {
	Index    int   // zero-based attempt number
	Order    []int // net indices in routing order
	Cost     int   // summed cost, or NoSolution
	Err      error // first net failure, nil on success
	Improved bool  // this attempt became the new best
}

// TraceEvent describes one cost commit during propagation.
type TraceEvent struct {
	Net  int
	Pos  grid.Point
	Dir  grid.Direction
	Old  int // previous cost, grid.Infinity if unreached
	Cost int
}

// Route routes nets with a zero-value [Router].
func Route(m *grid.Map, nets grid.Netlist, attempts int) (int, error) {
	var r Router
	return r.Route(m, nets, attempts)
}

// RouteNet routes a single net with a zero-value [Router].
func RouteNet(m *grid.Map, id int, n grid.Net) (int, error) {
	var r Router
	return r.RouteNet(m, id, n)
}

func (r *Router) orderer() Orderer {
	if r.Orderer == nil {
		return Rotation{}
	}
	return r.Orderer
}

func (r *Router) extraSearch() float64 {
	switch {
	case r.ExtraSearch > 0:
		return r.ExtraSearch
	case r.ExtraSearch < 0:
		return 0
	}
	return DefaultExtraSearch
}

func (r *Router) debug(msg string, keyvals ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, keyvals...)
	}
}

package route

import "errors"

// NoSolution is the cost returned alongside every routing failure.
const NoSolution = -1

var (
	// ErrInvalidStartPoint is returned when a net's start tile is already
	// occupied by a belt, an obstacle or another net's endpoint.
	ErrInvalidStartPoint = errors.New("route: start point is occupied")

	// ErrUnroutableNet is returned when the wavefront never reaches the end
	// on the surface.
	ErrUnroutableNet = errors.New("route: no path to end")

	// ErrRetraceInconsistency is returned when the backward walk cannot find
	// a predecessor with a matching cost. It indicates an engine bug.
	ErrRetraceInconsistency = errors.New("route: retrace found inconsistent costs")

	// ErrAllOrderingsFailed is returned by [Router.Route] when no attempt
	// routed every net.
	ErrAllOrderingsFailed = errors.New("route: every ordering failed")

	// ErrEmptyNetlist is returned by [Router.Route] for a netlist with no nets.
	ErrEmptyNetlist = errors.New("route: empty netlist")
)

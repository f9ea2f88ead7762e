package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

// FromRouting classifies an error returned by problem loading or routing.
// Errors that already carry a code are returned unchanged; nil stays nil.
//
// A failed netlist wraps the last net failure, so the ordering failure is
// matched before the net-level sentinels it may carry.
func FromRouting(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Wrap(ErrCodeTimeout, err, "routing stopped before it finished")
	case errors.Is(err, grid.ErrOutOfBounds):
		return Wrap(ErrCodeOutOfBounds, err, "point outside the map")
	case errors.Is(err, problem.ErrInvalid), errors.Is(err, grid.ErrEmptyGrid):
		return Wrap(ErrCodeInvalidProblem, err, "invalid problem")
	case errors.Is(err, route.ErrEmptyNetlist):
		return Wrap(ErrCodeInvalidProblem, err, "no nets to route")
	case errors.Is(err, route.ErrAllOrderingsFailed):
		return Wrap(ErrCodeUnroutable, err, "netlist could not be routed")
	case errors.Is(err, route.ErrRetraceInconsistency):
		return Wrap(ErrCodeRetraceInconsistency, err, "router produced inconsistent costs")
	case errors.Is(err, route.ErrUnroutableNet), errors.Is(err, route.ErrInvalidStartPoint):
		return Wrap(ErrCodeUnroutable, err, "netlist could not be routed")
	}
	return Wrap(ErrCodeInternal, err, "routing failed")
}

// HTTPStatus returns the response status for an error code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidProblem, ErrCodeInvalidFormat, ErrCodeOutOfBounds:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnroutable:
		return http.StatusUnprocessableEntity
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// Package store persists routing results for the HTTP API.
//
// Implementations for different backends:
//   - [Memory]: in-process storage for development and tests
//   - [FileStore]: one JSON file per result, for single-host deployments
//   - [MongoStore]: MongoDB collection for multi-instance deployments
//
// Results are keyed by their UUID ([problem.Result.ID]). Every backend is
// safe for concurrent use.
//
// # Usage
//
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: "mongodb://localhost:27017"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	if err := st.Put(ctx, res); err != nil {
//	    return err
//	}
//	res, err = st.Get(ctx, id) // ErrNotFound for unknown ids
package store

import (
	"context"
	"errors"

	"github.com/McKayRansom/auto-factorio/pkg/problem"
)

// ErrNotFound is returned when no result has the requested id.
var ErrNotFound = errors.New("store: result not found")

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store is the interface for result storage backends.
type Store interface {
	// Get returns the result with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*problem.Result, error)

	// Put stores res, replacing any result with the same id.
	Put(ctx context.Context, res *problem.Result) error

	// Delete removes a result. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit results, newest first.
	List(ctx context.Context, limit int) ([]*problem.Result, error)

	// Close releases backend resources.
	Close() error
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

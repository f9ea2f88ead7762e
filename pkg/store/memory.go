package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/McKayRansom/auto-factorio/pkg/problem"
)

// Memory keeps results in a map. Stored results are copied on the way in and
// out so callers cannot mutate them.
type Memory struct {
	mu      sync.RWMutex
	results map[string]*problem.Result
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{results: make(map[string]*problem.Result)}
}

func (s *Memory) Get(_ context.Context, id string) (*problem.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(res), nil
}

func (s *Memory) Put(_ context.Context, res *problem.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.ID] = clone(res)
	return nil
}

func (s *Memory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, id)
	return nil
}

func (s *Memory) List(_ context.Context, limit int) ([]*problem.Result, error) {
	s.mu.RLock()
	out := make([]*problem.Result, 0, len(s.results))
	for _, res := range s.results {
		out = append(out, clone(res))
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out[:min(len(out), listLimit(limit))], nil
}

func (s *Memory) Close() error { return nil }

func clone(res *problem.Result) *problem.Result {
	c := *res
	c.Belts = slices.Clone(res.Belts)
	c.Problem.Nets = slices.Clone(res.Problem.Nets)
	c.Problem.Obstacles = slices.Clone(res.Problem.Obstacles)
	return &c
}

func sortNewestFirst(results []*problem.Result) {
	slices.SortFunc(results, func(a, b *problem.Result) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

var _ Store = (*Memory)(nil)

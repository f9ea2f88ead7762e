package route_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/McKayRansom/auto-factorio/pkg/route"
)

func TestShuffle(t *testing.T) {
	s := route.Shuffle{Seed: 42}
	require.Equal(t, []int{0, 1, 2, 3, 4}, s.Order(5, 0))

	for attempt := 1; attempt < 10; attempt++ {
		order := s.Order(5, attempt)
		sorted := slices.Clone(order)
		slices.Sort(sorted)
		require.Equal(t, []int{0, 1, 2, 3, 4}, sorted, "attempt %d is not a permutation", attempt)
		require.Equal(t, order, route.Shuffle{Seed: 42}.Order(5, attempt), "attempt %d is not reproducible", attempt)
	}
}

func TestRotation_SingleNet(t *testing.T) {
	var r route.Rotation
	for attempt := range 3 {
		require.Equal(t, []int{0}, r.Order(1, attempt))
	}
}

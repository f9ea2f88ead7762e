package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/McKayRansom/auto-factorio/pkg/route"
)

func TestExamples(t *testing.T) {
	tests := []struct {
		file string
		cost int
	}{
		{"basic.toml", 9},
		{"two-routes.toml", 18},
		{"starting-tunnels.toml", 11},
		{"long-tunnel.toml", 20},
		{"cannot-tunnel.toml", route.NoSolution},
		{"madness-1.toml", 69},
		{"madness-2.toml", 171},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p, err := LoadFile(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			res, _, _, err := Route(context.Background(), p, Options{})
			if err != nil {
				t.Fatalf("Route: %v", err)
			}
			if res.Cost != tt.cost {
				t.Errorf("cost = %d, want %d", res.Cost, tt.cost)
			}
			if res.Solved != (tt.cost != route.NoSolution) {
				t.Errorf("solved = %v", res.Solved)
			}
		})
	}
}

package route

import "github.com/McKayRansom/auto-factorio/pkg/grid"

// entry is one pending wavefront step: the search arrived at pos moving in
// dir, having paid cost before entering pos.
type entry struct {
	pos     grid.Point
	dir     grid.Direction
	cost    int
	under   bool // pos is crossed underground
	goingUp bool // pos is the first free tile after a tunnel
	tunnel  int  // consecutive underground tiles up to and including pos
}

// frontier is a FIFO queue backed by a slice and a head index.
type frontier struct {
	items []entry
	head  int
}

func (f *frontier) push(e entry) { f.items = append(f.items, e) }

func (f *frontier) len() int { return len(f.items) - f.head }

func (f *frontier) pop() entry {
	e := f.items[f.head]
	f.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 1024 && f.head*2 > len(f.items) {
		n := copy(f.items, f.items[f.head:])
		f.items = f.items[:n]
		f.head = 0
	}
	return e
}

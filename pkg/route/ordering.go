package route

import "math/rand/v2"

// Orderer returns the order in which the nets of a netlist are routed on a
// given attempt. The result must be a permutation of [0, n).
type Orderer interface {
	Order(n, attempt int) []int
}

// Rotation starts attempt k at net k mod n and continues cyclically.
type Rotation struct{}

func (Rotation) Order(n, attempt int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = (attempt + i) % n
	}
	return order
}

// Shuffle uses the given order on attempt 0 and a seeded random permutation
// on every later attempt. The same seed always yields the same orders.
type Shuffle struct {
	Seed uint64
}

func (s Shuffle) Order(n, attempt int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if attempt == 0 {
		return order
	}
	rng := rand.New(rand.NewPCG(s.Seed, uint64(attempt)))
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

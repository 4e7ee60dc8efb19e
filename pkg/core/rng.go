package core

import "math/rand/v2"

// Source is the randomness a simulation draws from. *RNG satisfies it and
// tests substitute scripted sources to force particular branches.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a random value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a random int in [0, n). It returns 0 when n is not positive.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Between returns a uniform integer in [lo, hi). When the range is empty it
// returns lo without drawing.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo)
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

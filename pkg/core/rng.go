package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Reseed restarts the sequence from seed.
func (r *RNG) Reseed(seed int64) {
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float32n returns a random float32 in [0, max).
func (r *RNG) Float32n(max float32) float32 {
	return r.r.Float32() * max
}

// Range returns a random float32 in [lo, hi). Inverted bounds are swapped.
func (r *RNG) Range(lo, hi float32) float32 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.Float32()*(hi-lo)
}


// Package rnd holds the seeded random source threaded through generation.
package rnd

import "math/rand/v2"

// New returns a deterministic source for seed.
func New(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s))
}

// Float returns a uniform value in [min, max).
func Float[T ~float64 | ~float32](rng *rand.Rand, min, max T) T {
	return T(rng.Float64())*(max-min) + min
}

// Prob reports true with probability p.
func Prob(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Choose returns one of values at random.
func Choose[T any](rng *rand.Rand, values ...T) T {
	return values[rng.IntN(len(values))]
}

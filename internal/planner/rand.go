package planner

import (
	"math/rand/v2"
)

// Rand is the source of randomness for every stochastic step of the engine.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// NewRand returns a PCG backed generator. A zero seed picks a random seed.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not used for security.
	}
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // not used for security.
}

// randomInt returns a uniform integer in the closed range [lo, hi].
func randomInt(rng Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// choose returns a uniformly chosen element of xs, which must not be empty.
func choose[T any](rng Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

// sample returns k distinct elements of xs in random order. If k exceeds len(xs), all elements are returned.
func sample[T any](rng Rand, xs []T, k int) []T {
	k = min(k, len(xs))
	shuffled := make([]T, len(xs))
	copy(shuffled, xs)
	for i := range k {
		j := i + rng.IntN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}

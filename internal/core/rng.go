package core

import "math/rand/v2"

// rngStream is the PCG stream selector shared by every generator.
const rngStream = 0x9e3779b97f4a7c15

// NewRand creates a deterministic PCG-backed generator for the seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), rngStream))
}

// Pick returns a uniformly chosen element of items. It panics on an empty
// slice, mirroring rand.IntN.
func Pick[T any](r *rand.Rand, items []T) T {
	if len(items) == 1 {
		return items[0]
	}
	return items[r.IntN(len(items))]
}

// Chance reports true with probability p.
func Chance(r *rand.Rand, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

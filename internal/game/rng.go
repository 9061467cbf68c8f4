package game

import (
	"math/rand"
	"time"
)

// Rand is the single randomness source for the engine. Every noisy term in
// the simulation draws from it, so tests can script exact sequences.
type Rand interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// uniform returns a draw in [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

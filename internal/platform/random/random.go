package random

import "math/rand"

// Rand is the sampling surface the generators use. *math/rand.Rand
// satisfies it; seeding one source per run is what makes a seed +
// profile + day-count reproduce byte-identical output.
type Rand interface {
	Intn(n int) int
	Int63n(n int64) int64
	Float64() float64
}

func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// IntBetween draws uniformly from the inclusive range [low, high].
func IntBetween(r Rand, low, high int) int {
	if high <= low {
		return low
	}
	return low + r.Intn(high-low+1)
}

// Int64Between draws uniformly from [low, high).
func Int64Between(r Rand, low, high int64) int64 {
	if high <= low {
		return low
	}
	return low + r.Int63n(high-low)
}

// WeightedIndex picks an index proportionally to weights, normalizing
// whatever scale they are on. All-zero or negative-sum weights fall
// back to a uniform pick so samplers never fail on a degenerate
// distribution.
func WeightedIndex(r Rand, weights []float64) int {
	if len(weights) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return r.Intn(len(weights))
	}
	target := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if target < w {
			return i
		}
		target -= w
	}
	return len(weights) - 1
}

// Package tsp - roulette-wheel sampling for ant construction.
//
// RouletteWheel draws r uniformly in [0, sum) and walks the weights in index
// order with a descending "remaining mass" counter. Index i is returned when
//
//	remaining_before(i) ≥ r > remaining_after(i)
//
// and the last index accepts r ≥ 0 as its lower bound. Zero-weight entries can
// therefore never be selected on the interior; if rounding leaves the walk on a
// zero-weight tail, the last positive-weight index is returned instead.
//
// Contracts:
//   - weights are non-negative; sum is the mass the caller wants sampled
//     (it may exclude an entry the caller zeroed and handles separately).
//
// Errors:
//   - ErrDimensionMismatch for empty weights,
//   - ErrNegativeWeight for a negative entry,
//   - ErrDegenerateDistribution when sum ≤ 0 or no entry is positive. Callers
//     are expected to special-case this before sampling.
//
// Complexity: O(n) time, O(1) space.
package tsp

import (
	"math"
	"math/rand"
)

// RouletteWheel samples an index with probability proportional to weights[i].
func RouletteWheel(rng *rand.Rand, weights []float64, sum float64) (int, error) {
	n := len(weights)
	if n == 0 {
		return 0, ErrDimensionMismatch
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return 0, ErrDegenerateDistribution
	}

	var (
		i            int
		w            float64
		lastPositive = -1
	)
	for i = 0; i < n; i++ {
		w = weights[i]
		if w < 0 || math.IsNaN(w) {
			return 0, ErrNegativeWeight
		}
		if w > 0 {
			lastPositive = i
		}
	}
	if lastPositive < 0 {
		return 0, ErrDegenerateDistribution
	}

	if rng == nil {
		rng = rngFromSeed(0)
	}
	r := rng.Float64() * sum

	var (
		remaining = sum
		after     float64
	)
	for i = 0; i < n-1; i++ {
		after = remaining - weights[i]
		if remaining >= r && r > after {
			return i, nil
		}
		remaining = after
	}
	// Last index: lower bound is r ≥ 0.
	if weights[n-1] > 0 && remaining >= r {
		return n - 1, nil
	}

	return lastPositive, nil
}

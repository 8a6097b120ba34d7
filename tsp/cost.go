// Package tsp - tour length evaluation.
//
// TourCost is the ground truth every incrementally maintained cost in the
// solvers is checked against. The internal tourLength is the unchecked
// variant used on hot paths where the tour shape is already guaranteed.
package tsp

import "math"

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// TourCost returns Σ d(tour[i], tour[i+1]) for i = 0..n-1.
//
// Contract:
//   - len(tour) == n+1 with tour[0] == tour[n] and every index in [0, n).
//
// The tour need not be a permutation; use ValidateTour for that.
// Errors: ErrInvalidInstance (nil/empty model), ErrDimensionMismatch (bad tour).
//
// Complexity: O(n).
func TourCost(dm DistanceModel, tour []int) (float64, error) {
	if dm == nil {
		return 0, invalidInstance(ErrDimensionMismatch)
	}
	n := dm.Dimension()
	if n <= 0 {
		return 0, invalidInstance(ErrDimensionMismatch)
	}
	if len(tour) != n+1 || tour[0] != tour[n] {
		return 0, ErrDimensionMismatch
	}

	var (
		sum  float64
		i    int
		u, v int
	)
	for i = 0; i < n; i++ {
		u = tour[i]
		v = tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, ErrDimensionMismatch
		}
		sum += dm.Distance(u, v)
	}

	return sum, nil
}

// tourLength sums the closed tour on the flat table without checks.
//
// Complexity: O(n).
func (t *distTable) tourLength(tour []int) float64 {
	var (
		sum float64
		i   int
	)
	for i = 0; i+1 < len(tour); i++ {
		sum += t.d[tour[i]*t.n+tour[i+1]]
	}

	return sum
}

// round1e9 returns x rounded to 1e-9 absolute precision.
// This keeps reported costs stable across platforms.
//
// Complexity: O(1).
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

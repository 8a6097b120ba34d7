// Package tsp - validation of distance tables and tours.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n²) worst-case where n is the matrix size; no hidden allocations.
package tsp

import "math"

// symTol is a structural tolerance for symmetry/diagonal checks.
// It is independent from TwoOptOptions.Eps (which governs "improvement").
const symTol = 1e-9

// validateDistances performs full table validation on a row-major buffer:
//   - len(d) == n*n, n ≥ 1,
//   - every entry finite (no NaN, no ±Inf),
//   - no negative entries,
//   - diagonal ≈ 0 (|d_ii| ≤ symTol),
//   - |d_ij − d_ji| ≤ symTol.
//
// Complexity: O(n²).
func validateDistances(n int, d []float64) error {
	if n <= 0 || len(d) != n*n {
		return invalidInstance(ErrDimensionMismatch)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = d[i*n+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalidInstance(ErrNaNInf)
			}
			if v < 0 {
				return invalidInstance(ErrNegativeWeight)
			}
			if i == j && v > symTol {
				return invalidInstance(ErrNonZeroDiagonal)
			}
		}
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(d[i*n+j]-d[j*n+i]) > symTol {
				return invalidInstance(ErrAsymmetry)
			}
		}
	}

	return nil
}

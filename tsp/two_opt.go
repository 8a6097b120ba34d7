// Package tsp - 2-opt local search engine (symmetric segment reversal).
//
// For a closed tour T and indices 1 ≤ i < j ≤ n−1, reversing T[i..j] replaces
// edges (a,b),(c,e) with (a,c),(b,e), where a=T[i−1], b=T[i], c=T[j], e=T[j+1]:
//
//	gain = w(a,b) + w(c,e) − w(a,c) − w(b,e)
//
// A reversal is improving when gain > Eps. Two policies are offered:
//   - TwoOptPerIndex: for every i, scan all j, apply the best reversal for that i
//     immediately, then continue with i+1 on the updated tour.
//   - TwoOptBestOfPass: scan every (i, j) and apply only the best reversal.
//
// Passes repeat until one applies no move (a 2-opt local optimum) or the
// optional MaxPasses cap is reached. The endpoints T[0] and T[n] never move.
//
// Complexity:
//   - One pass: O(n²) candidate checks; each applied move costs O(j−i).
//   - Overall: O(passes·n²); the number of passes is unbounded but small in practice.
package tsp

// TwoOpt runs 2-opt from tour and returns the improved copy and its cost.
// The input tour is not modified. Tours with n < 4 have no improving
// reversal and are returned as copies.
//
// Errors: ErrInvalidInstance, ErrDimensionMismatch (tour not a closed
// permutation), ErrInvalidParameter (bad options).
func TwoOpt(dm DistanceModel, tour []int, opts TwoOptOptions) ([]int, float64, error) {
	t, err := newDistTable(dm)
	if err != nil {
		return nil, 0, err
	}
	if err = opts.validate(); err != nil {
		return nil, 0, err
	}
	if err = ValidateTour(tour, t.n); err != nil {
		return nil, 0, err
	}

	cur := CopyTour(tour)
	t.twoOpt(cur, opts)

	return cur, round1e9(t.tourLength(cur)), nil
}

// twoOpt improves tour in place and returns the total gain and the number of
// applied reversals.
func (t *distTable) twoOpt(tour []int, opts TwoOptOptions) (float64, int) {
	if t.n < 4 {
		return 0, 0
	}

	var (
		total, g float64
		moves, m int
		pass     int
	)
	for pass = 0; opts.MaxPasses == 0 || pass < opts.MaxPasses; pass++ {
		if opts.Policy == TwoOptBestOfPass {
			g, m = t.twoOptBestOfPass(tour, opts.Eps)
		} else {
			g, m = t.twoOptPerIndex(tour, opts.Eps)
		}
		if m == 0 {
			break
		}
		total += g
		moves += m
	}

	return total, moves
}

// twoOptPerIndex performs one pass applying the best reversal per outer index.
func (t *distTable) twoOptPerIndex(tour []int, eps float64) (float64, int) {
	var (
		n            = t.n
		d            = t.d
		total        float64
		moves        int
		i, j, bestJ  int
		a, b, c, e   int
		dab, g, best float64
	)
	for i = 1; i <= n-2; i++ {
		a = tour[i-1]
		b = tour[i]
		dab = d[a*n+b]
		best = eps
		bestJ = -1
		for j = i + 1; j <= n-1; j++ {
			c = tour[j]
			e = tour[j+1]
			g = dab + d[c*n+e] - d[a*n+c] - d[b*n+e]
			if g > best {
				best = g
				bestJ = j
			}
		}
		if bestJ > 0 {
			reverseSegment(tour, i, bestJ)
			total += best
			moves++
		}
	}

	return total, moves
}

// twoOptBestOfPass performs one pass applying only the globally best reversal.
func (t *distTable) twoOptBestOfPass(tour []int, eps float64) (float64, int) {
	var (
		n            = t.n
		d            = t.d
		i, j         int
		bestI, bestJ = -1, -1
		a, b, c, e   int
		dab, g, best float64
	)
	best = eps
	for i = 1; i <= n-2; i++ {
		a = tour[i-1]
		b = tour[i]
		dab = d[a*n+b]
		for j = i + 1; j <= n-1; j++ {
			c = tour[j]
			e = tour[j+1]
			g = dab + d[c*n+e] - d[a*n+c] - d[b*n+e]
			if g > best {
				best = g
				bestI = i
				bestJ = j
			}
		}
	}
	if bestI < 0 {
		return 0, 0
	}
	reverseSegment(tour, bestI, bestJ)

	return best, 1
}

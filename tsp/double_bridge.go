// Package tsp - double-bridge (4-opt) perturbation.
//
// Given a closed tour T and cuts 0 < a < b < c < n, the four segments
//
//	A=[0,a)  B=[a,b)  C=[b,c)  D=[c,n)
//
// are reassembled as A + D + C + B and closed with T[0]. The move replaces the
// edges (T[a−1],T[a]), (T[b−1],T[b]), (T[c−1],T[c]), (T[n−1],T[0]) with
// (T[a−1],T[c]), (T[n−1],T[b]), (T[b−1],T[0]), (T[c−1],T[a]). No single segment
// reversal produces it, which makes it a useful escape from 2-opt optima.
//
// Complexity: O(n) time for the rebuild, O(1) for the cost delta.
package tsp

import "math/rand"

// DoubleBridge returns a new closed tour A+D+C+B built from tour with cuts a, b, c.
// The input is not modified.
//
// Errors: ErrDimensionMismatch (tour not closed), ErrInvalidCuts.
func DoubleBridge(tour []int, a, b, c int) ([]int, error) {
	if len(tour) < 2 || tour[0] != tour[len(tour)-1] {
		return nil, ErrDimensionMismatch
	}
	n := len(tour) - 1
	if !(0 < a && a < b && b < c && c < n) {
		return nil, ErrInvalidCuts
	}

	out := make([]int, n+1)
	doubleBridgeInto(out, tour, a, b, c)

	return out, nil
}

// doubleBridgeInto writes the reassembled tour into dst (len(dst) == len(src)).
// Cuts are trusted.
func doubleBridgeInto(dst, src []int, a, b, c int) {
	n := len(src) - 1
	k := copy(dst, src[:a])
	k += copy(dst[k:], src[c:n])
	k += copy(dst[k:], src[b:c])
	k += copy(dst[k:], src[a:b])
	dst[k] = src[0]
}

// doubleBridgeDelta is cost(after) − cost(before) for cuts a, b, c on tour.
func (t *distTable) doubleBridgeDelta(tour []int, a, b, c int) float64 {
	n := t.n
	removed := t.at(tour[a-1], tour[a]) + t.at(tour[b-1], tour[b]) +
		t.at(tour[c-1], tour[c]) + t.at(tour[n-1], tour[0])
	added := t.at(tour[a-1], tour[c]) + t.at(tour[n-1], tour[b]) +
		t.at(tour[b-1], tour[0]) + t.at(tour[c-1], tour[a])

	return added - removed
}

// randomCuts draws increasing cuts with q = (n+1)/4:
//
//	a = 1 + U[0,q−1), b = a + 1 + U[0,q−1), c = b + 1 + U[0,q−1).
//
// ok is false when q < 2; there is no room for three cuts then.
func randomCuts(rng *rand.Rand, n int) (a, b, c int, ok bool) {
	q := (n + 1) / 4
	if q < 2 {
		return 0, 0, 0, false
	}
	a = 1 + rng.Intn(q-1)
	b = a + 1 + rng.Intn(q-1)
	c = b + 1 + rng.Intn(q-1)

	return a, b, c, true
}

// randomSwap exchanges two distinct interior positions in [1, n) of a closed tour.
// Tours with n < 3 are left unchanged.
func randomSwap(rng *rand.Rand, tour []int) {
	n := len(tour) - 1
	if n < 3 {
		return
	}
	i := 1 + rng.Intn(n-1)
	j := 1 + rng.Intn(n-2)
	if j >= i {
		j++
	}
	tour[i], tour[j] = tour[j], tour[i]
}

package tsp

import "math"

// NearestNeighbor builds a closed tour greedily: from start, repeatedly move to
// the nearest unvisited city, then return to start. Ties go to the lowest index
// (strict < while scanning low to high). The tour length is accumulated along
// the way, so no second pass is needed.
//
// Errors: ErrInvalidInstance (empty model), ErrStartOutOfRange,
// ErrConstructionExhausted (no unvisited candidate; never happens on a valid table).
//
// Complexity: O(n²) time, O(n) space.
func NearestNeighbor(dm DistanceModel, start int) ([]int, float64, error) {
	t, err := newDistTable(dm)
	if err != nil {
		return nil, 0, err
	}

	return t.nearestNeighbor(start)
}

func (t *distTable) nearestNeighbor(start int) ([]int, float64, error) {
	n := t.n
	if n <= 0 {
		return nil, 0, invalidInstance(ErrDimensionMismatch)
	}
	if start < 0 || start >= n {
		return nil, 0, ErrStartOutOfRange
	}

	var (
		tour    = make([]int, n+1)
		visited = make([]bool, n)
		cur     = start
		length  float64
		pos, j  int
	)
	tour[0] = start
	visited[start] = true
	for pos = 1; pos < n; pos++ {
		row := t.d[cur*n : cur*n+n]
		next := -1
		best := math.Inf(1)
		for j = 0; j < n; j++ {
			if !visited[j] && row[j] < best {
				best = row[j]
				next = j
			}
		}
		if next < 0 {
			return nil, 0, ErrConstructionExhausted
		}
		visited[next] = true
		tour[pos] = next
		length += best
		cur = next
	}
	length += t.at(cur, start)
	tour[n] = start

	return tour, length, nil
}

// Package tsp - closed-tour helpers.
//
// Every tour handed out by this package is closed: len n+1, tour[0] == tour[n],
// and tour[0..n-1] visits each city once. The helpers below check that shape,
// normalise a finished tour for reporting and compare tours in tests. They
// never look at distances.
package tsp

// ValidateTour reports ErrDimensionMismatch unless tour is a closed tour over
// cities 0..n-1.
//
// Complexity: O(n) time and space.
func ValidateTour(tour []int, n int) error {
	if n <= 0 || len(tour) != n+1 || tour[0] != tour[n] {
		return ErrDimensionMismatch
	}

	var (
		seen = make([]bool, n)
		city int
	)
	for _, city = range tour[:n] {
		if city < 0 || city >= n || seen[city] {
			return ErrDimensionMismatch
		}
		seen[city] = true
	}

	return nil
}

// RotateTourToStart returns a new closed tour visiting the same cycle in the
// same direction but beginning and ending at start. The input may be closed
// (len n+1) or open (len n).
//
// Errors: ErrDimensionMismatch (empty input or start not on the tour),
// ErrStartOutOfRange.
//
// Complexity: O(n).
func RotateTourToStart(tour []int, start int) ([]int, error) {
	n := len(tour)
	if n == 0 {
		return nil, ErrDimensionMismatch
	}
	if n > 1 && tour[0] == tour[n-1] {
		n--
	}
	if start < 0 || start >= n {
		return nil, ErrStartOutOfRange
	}

	shift := -1
	for i, city := range tour[:n] {
		if city == start {
			shift = i
			break
		}
	}
	if shift < 0 {
		return nil, ErrDimensionMismatch
	}

	out := make([]int, 0, n+1)
	out = append(out, tour[shift:n]...)
	out = append(out, tour[:shift]...)

	return append(out, start), nil
}

// CanonicalizeOrientationInPlace picks one of the two directions of a closed
// tour: when tour[1] > tour[n-1] the interior is reversed, so afterwards
// tour[1] <= tour[n-1]. The start city and the length are unchanged.
func CanonicalizeOrientationInPlace(tour []int) error {
	n := len(tour) - 1
	if n < 1 || tour[0] != tour[n] {
		return ErrDimensionMismatch
	}
	if n >= 3 && tour[1] > tour[n-1] {
		reverseSegment(tour, 1, n-1)
	}

	return nil
}

// EqualToursModuloRotation reports whether closed tours a and b are the same
// cycle traversed in the same direction, whatever city each starts from.
func EqualToursModuloRotation(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	n := len(a) - 1
	if a[0] != a[n] || b[0] != b[n] {
		return false
	}

	off := -1
	for j := 0; j < n; j++ {
		if b[j] == a[0] {
			off = j
			break
		}
	}
	if off < 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if a[i] != b[(off+i)%n] {
			return false
		}
	}

	return true
}

// CopyTour returns a copy of tour; nil stays nil.
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}

	return append(make([]int, 0, len(tour)), tour...)
}

// reverseSegment reverses tour[i..k] in place (inclusive bounds).
func reverseSegment(tour []int, i, k int) {
	for ; i < k; i, k = i+1, k-1 {
		tour[i], tour[k] = tour[k], tour[i]
	}
}

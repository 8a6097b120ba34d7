package tsp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrInvalidInstance is returned before any search starts when the distance
	// model is unusable (empty, non-square, asymmetric, negative, NaN/Inf).
	// It is usually wrapped together with a more specific cause below.
	ErrInvalidInstance = errors.New("tsp: invalid instance")

	// ErrDegenerateDistribution is returned by RouletteWheel when there is no
	// positive mass left to sample from.
	ErrDegenerateDistribution = errors.New("tsp: degenerate distribution")

	// ErrConstructionExhausted signals that a construction heuristic found no
	// unvisited city to move to, i.e. its visited set is corrupted.
	ErrConstructionExhausted = errors.New("tsp: construction exhausted")

	// ErrDimensionMismatch reports a tour or slice whose shape does not match n.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrNonSquare signals a distance matrix with Rows()!=Cols().
	ErrNonSquare = errors.New("tsp: distance matrix is not square")

	// ErrAsymmetry signals d[i][j] != d[j][i] beyond tolerance.
	ErrAsymmetry = errors.New("tsp: distance matrix is not symmetric")

	// ErrNegativeWeight signals a negative distance or sampling weight.
	ErrNegativeWeight = errors.New("tsp: negative weight")

	// ErrNonZeroDiagonal signals d[i][i] != 0 beyond tolerance.
	ErrNonZeroDiagonal = errors.New("tsp: non-zero diagonal")

	// ErrNaNInf signals a NaN or infinite distance.
	ErrNaNInf = errors.New("tsp: NaN or Inf distance")

	// ErrStartOutOfRange is returned when a start city is outside [0, n).
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrInvalidCuts is returned by DoubleBridge unless 0 < a < b < c < n.
	ErrInvalidCuts = errors.New("tsp: double-bridge cuts must satisfy 0 < a < b < c < n")

	// ErrUnsupportedAlgorithm is returned for an unknown Algorithm value or name.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrNoBudget is returned when neither a time limit nor an iteration cap is set.
	ErrNoBudget = errors.New("tsp: budget needs a time limit or an iteration cap")

	// ErrInvalidParameter is returned for out-of-range solver parameters.
	ErrInvalidParameter = errors.New("tsp: invalid parameter")
)

// invalidInstance tags a specific cause as an instance-level failure so that
// both errors.Is(err, ErrInvalidInstance) and errors.Is(err, cause) hold.
func invalidInstance(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInstance, cause)
}

// Algorithm selects the metaheuristic run by Solve.
type Algorithm int

const (
	// AntColony selects the Ant Colony System.
	AntColony Algorithm = iota
	// IteratedLocal selects Iterated Local Search with annealing acceptance.
	IteratedLocal
)

// String returns the short name used in configs, logs and the run store.
func (a Algorithm) String() string {
	switch a {
	case AntColony:
		return "acs"
	case IteratedLocal:
		return "ils"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "acs"/"ils" (case-insensitive) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "acs", "aco", "antcolony", "ant-colony":
		return AntColony, nil
	case "ils", "iterated", "iterated-local-search":
		return IteratedLocal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}

// StopReason tells why the anytime loop returned.
type StopReason int

const (
	// StopIterations means Budget.MaxIterations was reached.
	StopIterations StopReason = iota
	// StopDeadline means the accumulated iteration time reached Budget.TimeLimit.
	StopDeadline
	// StopBestKnown means the best-known length was matched.
	StopBestKnown
	// StopCanceled means the context was canceled between iterations.
	StopCanceled
	// StopTrivial means the instance needed no search (n == 1 or zero-length tour).
	StopTrivial
)

func (r StopReason) String() string {
	switch r {
	case StopIterations:
		return "iterations"
	case StopDeadline:
		return "deadline"
	case StopBestKnown:
		return "best-known"
	case StopCanceled:
		return "canceled"
	case StopTrivial:
		return "trivial"
	default:
		return fmt.Sprintf("stop(%d)", int(r))
	}
}

// TSResult holds the outcome of a TSP solver.
type TSResult struct {
	// Tour is the sequence of vertex indices, rotated to start and end at 0.
	// For n vertices, len(Tour) == n+1 and Tour[0]==Tour[n]==0.
	Tour []int

	// Cost is the total distance of the cycle, rounded to 1e-9.
	Cost float64

	// Algo is the metaheuristic that produced the tour.
	Algo Algorithm

	// Iterations is the number of completed outer-loop iterations.
	Iterations int

	// Elapsed is the accumulated measured duration of those iterations.
	Elapsed time.Duration

	// Stop tells why the search ended.
	Stop StopReason
}

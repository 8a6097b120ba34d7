// Package tsp - distance model consumed by every solver.
//
// DistanceModel is the read-only contract an instance loader must satisfy.
// Internally all algorithms work on a distTable: one flat row-major buffer
// d[i*n+j] plus the dimension, so hot loops never go through an interface.
//
// Design:
//   - *Instance is validated once at construction and shared without copies.
//   - Any other DistanceModel is prefetched once per solver run and validated.
//   - Both are immutable after construction and safe for concurrent readers.
package tsp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/metatsp/matrix"
)

// DistanceModel is a read-only symmetric distance table over n cities.
type DistanceModel interface {
	// Dimension returns the number of cities n ≥ 1.
	Dimension() int
	// Distance returns d(i, j) ≥ 0 with d(i, j) == d(j, i) and d(i, i) == 0.
	Distance(i, j int) float64
	// BestKnownLength returns the best-known tour length if one is recorded.
	// It is used for reporting and early stop only.
	BestKnownLength() (float64, bool)
}

// Instance is the concrete, validated DistanceModel.
type Instance struct {
	name      string
	n         int
	d         []float64 // row-major, len == n*n
	bestKnown float64
	hasBest   bool
}

var _ DistanceModel = (*Instance)(nil)

// InstanceOption customizes NewInstance.
type InstanceOption func(*Instance)

// WithName attaches a human-readable instance name.
func WithName(name string) InstanceOption {
	return func(in *Instance) { in.name = name }
}

// WithBestKnown records the best-known tour length. Values ≤ 0 are ignored.
func WithBestKnown(length float64) InstanceOption {
	return func(in *Instance) {
		if length > 0 {
			in.bestKnown = length
			in.hasBest = true
		}
	}
}

// NewInstance validates m and copies it into a flat, immutable Instance.
//
// Contracts:
//   - m is non-nil and square with n ≥ 1.
//   - entries are finite, non-negative, symmetric, with a zero diagonal.
//
// Shape, finiteness and symmetry are checked with the matrix validators; their
// errors stay in the chain next to the tsp cause.
//
// Errors: ErrInvalidInstance wrapped with ErrNonSquare, ErrNaNInf,
// ErrNegativeWeight, ErrNonZeroDiagonal, ErrAsymmetry or ErrDimensionMismatch.
//
// Complexity: O(n²) time and memory.
func NewInstance(m matrix.Matrix, opts ...InstanceOption) (*Instance, error) {
	if m == nil {
		return nil, invalidInstance(ErrDimensionMismatch)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, matrixCause(err)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, matrixCause(err)
	}
	if err := matrix.ValidateSymmetric(m, symTol); err != nil {
		return nil, matrixCause(err)
	}
	n := m.Rows()
	if n <= 0 {
		return nil, invalidInstance(ErrDimensionMismatch)
	}

	var d []float64
	if dense, ok := m.(*matrix.Dense); ok {
		d = dense.Values()
	} else {
		d = make([]float64, n*n)
		var (
			i, j int
			v    float64
			err  error
		)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, invalidInstance(ErrDimensionMismatch)
				}
				d[i*n+j] = v
			}
		}
	}
	if err := validateDistances(n, d); err != nil {
		return nil, err
	}

	in := &Instance{n: n, d: d}
	for _, opt := range opts {
		opt(in)
	}

	return in, nil
}

// matrixCause turns a matrix validator failure into an instance error carrying
// the matching tsp cause and the original matrix error.
func matrixCause(err error) error {
	cause := ErrDimensionMismatch
	switch {
	case errors.Is(err, matrix.ErrNonSquare):
		cause = ErrNonSquare
	case errors.Is(err, matrix.ErrNaNInf):
		cause = ErrNaNInf
	case errors.Is(err, matrix.ErrAsymmetry):
		cause = ErrAsymmetry
	}

	return fmt.Errorf("%w: %w: %w", ErrInvalidInstance, cause, err)
}

// Name returns the instance name ("" when unset).
func (in *Instance) Name() string { return in.name }

// Dimension returns n.
func (in *Instance) Dimension() int { return in.n }

// Distance returns d(i, j). Indices must be in [0, n).
func (in *Instance) Distance(i, j int) float64 { return in.d[i*in.n+j] }

// BestKnownLength returns the recorded best-known length, if any.
func (in *Instance) BestKnownLength() (float64, bool) { return in.bestKnown, in.hasBest }

// distTable is the flat view the algorithms read.
type distTable struct {
	n int
	d []float64
}

// at returns d(u, v) without bounds checks beyond the slice's own.
func (t *distTable) at(u, v int) float64 { return t.d[u*t.n+v] }

// newDistTable returns the flat view of dm. An *Instance is shared as-is;
// other models are prefetched and validated.
//
// Complexity: O(1) for *Instance, O(n²) otherwise.
func newDistTable(dm DistanceModel) (*distTable, error) {
	if dm == nil {
		return nil, invalidInstance(ErrDimensionMismatch)
	}
	if in, ok := dm.(*Instance); ok {
		return &distTable{n: in.n, d: in.d}, nil
	}

	n := dm.Dimension()
	if n <= 0 {
		return nil, invalidInstance(ErrDimensionMismatch)
	}
	d := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			d[i*n+j] = dm.Distance(i, j)
		}
	}
	if err := validateDistances(n, d); err != nil {
		return nil, err
	}

	return &distTable{n: n, d: d}, nil
}

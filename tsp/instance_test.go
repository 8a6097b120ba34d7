package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/matrix"
	"github.com/katalvlaran/metatsp/tsp"
)

func denseFrom(t *testing.T, n int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, vals)
	require.NoError(t, err)

	return m
}

func TestNewInstance_Validates(t *testing.T) {
	cases := []struct {
		name  string
		m     matrix.Matrix
		cause error
	}{
		{"nil", nil, tsp.ErrDimensionMismatch},
		{"non-square", mustDense(t, 2, 3), tsp.ErrNonSquare},
		{"asymmetric", denseFrom(t, 2, 0, 1, 2, 0), tsp.ErrAsymmetry},
		{"negative", denseFrom(t, 2, 0, -1, -1, 0), tsp.ErrNegativeWeight},
		{"diagonal", denseFrom(t, 2, 1, 1, 1, 0), tsp.ErrNonZeroDiagonal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tsp.NewInstance(tc.m)
			require.ErrorIs(t, err, tsp.ErrInvalidInstance)
			require.ErrorIs(t, err, tc.cause)
		})
	}
}

// gridMatrix is a Matrix that is not a *matrix.Dense.
type gridMatrix [][]float64

func (g gridMatrix) Rows() int { return len(g) }
func (g gridMatrix) Cols() int { return len(g[0]) }

func (g gridMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= len(g) || j < 0 || j >= len(g[i]) {
		return 0, matrix.ErrIndexOutOfBounds
	}
	return g[i][j], nil
}

func (g gridMatrix) Set(i, j int, v float64) error {
	if i < 0 || i >= len(g) || j < 0 || j >= len(g[i]) {
		return matrix.ErrIndexOutOfBounds
	}
	g[i][j] = v
	return nil
}

func (g gridMatrix) Clone() matrix.Matrix {
	out := make(gridMatrix, len(g))
	for i := range g {
		out[i] = append([]float64(nil), g[i]...)
	}
	return out
}

func TestNewInstance_MatrixValidatorCauses(t *testing.T) {
	cases := []struct {
		name      string
		m         matrix.Matrix
		cause     error
		matrixErr error
	}{
		{"nan", gridMatrix{{0, math.NaN()}, {math.NaN(), 0}}, tsp.ErrNaNInf, matrix.ErrNaNInf},
		{"inf dense", denseFrom(t, 2, 0, math.Inf(1), math.Inf(1), 0), tsp.ErrNaNInf, matrix.ErrNaNInf},
		{"asymmetric", gridMatrix{{0, 1, 2}, {1, 0, 3}, {2, 4, 0}}, tsp.ErrAsymmetry, matrix.ErrAsymmetry},
		{"non-square", gridMatrix{{0, 1, 2}, {1, 0, 3}}, tsp.ErrNonSquare, matrix.ErrNonSquare},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tsp.NewInstance(tc.m)
			require.ErrorIs(t, err, tsp.ErrInvalidInstance)
			require.ErrorIs(t, err, tc.cause)
			require.ErrorIs(t, err, tc.matrixErr)
		})
	}

	in, err := tsp.NewInstance(gridMatrix{{0, 2, 3}, {2, 0, 4}, {3, 4, 0}})
	require.NoError(t, err)
	require.Equal(t, 4.0, in.Distance(2, 1))
}

func mustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

func TestNewInstance_CopiesAndReportsMetadata(t *testing.T) {
	m := denseFrom(t, 3, 0, 1, 2, 1, 0, 3, 2, 3, 0)
	in, err := tsp.NewInstance(m, tsp.WithName("tri"), tsp.WithBestKnown(6))
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 100))

	require.Equal(t, "tri", in.Name())
	require.Equal(t, 3, in.Dimension())
	require.Equal(t, 1.0, in.Distance(0, 1))
	bk, ok := in.BestKnownLength()
	require.True(t, ok)
	require.Equal(t, 6.0, bk)

	in, err = tsp.NewInstance(m.Clone(), tsp.WithBestKnown(0))
	require.ErrorIs(t, err, tsp.ErrAsymmetry)
	require.Nil(t, in)
}

func TestTourCost(t *testing.T) {
	in := unitSquare(t)

	c, err := tsp.TourCost(in, []int{0, 1, 2, 3, 0})
	require.NoError(t, err)
	require.InDelta(t, 4.0, c, 1e-12)

	_, err = tsp.TourCost(in, []int{0, 1, 2, 3})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)

	_, err = tsp.TourCost(in, []int{0, 1, 2, 7, 0})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}

func TestTourHelpers(t *testing.T) {
	require.NoError(t, tsp.ValidateTour([]int{2, 0, 1, 2}, 3))
	require.ErrorIs(t, tsp.ValidateTour([]int{0, 1, 1, 0}, 3), tsp.ErrDimensionMismatch)
	require.ErrorIs(t, tsp.ValidateTour([]int{0, 1, 2, 1}, 3), tsp.ErrDimensionMismatch)

	rot, err := tsp.RotateTourToStart([]int{2, 3, 0, 1, 2}, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 0}, rot)

	rot, err = tsp.RotateTourToStart([]int{2, 3, 0, 1}, 1)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 0, 1}, rot)

	_, err = tsp.RotateTourToStart([]int{0, 1, 2, 0}, 5)
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	tour := []int{0, 3, 2, 1, 0}
	require.NoError(t, tsp.CanonicalizeOrientationInPlace(tour))
	require.Equal(t, []int{0, 1, 2, 3, 0}, tour)

	require.True(t, tsp.EqualToursModuloRotation([]int{0, 1, 2, 0}, []int{1, 2, 0, 1}))
	require.False(t, tsp.EqualToursModuloRotation([]int{0, 1, 2, 0}, []int{0, 2, 1, 0}))
}

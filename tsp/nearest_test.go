package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

func TestNearestNeighbor_LineVisitsInOrder(t *testing.T) {
	in := euclid(t, [][2]float64{{0, 0}, {1, 0}, {3, 0}, {6, 0}, {10, 0}})

	tour, length, err := tsp.NearestNeighbor(in, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 4, 0}, tour)
	require.InDelta(t, 20.0, length, epsCost)
	requireCost(t, in, tour, length)
}

func TestNearestNeighbor_TieBreaksOnLowestIndex(t *testing.T) {
	// From 0, cities 1 and 3 are both at distance 1; 1 must win.
	tour, _, err := tsp.NearestNeighbor(unitSquare(t), 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 0}, tour)
}

func TestNearestNeighbor_EveryStartIsValid(t *testing.T) {
	in := randomPoints(t, 25, 7)
	for start := 0; start < in.Dimension(); start++ {
		tour, length, err := tsp.NearestNeighbor(in, start)
		require.NoError(t, err)
		require.Equal(t, start, tour[0])
		requireValidTour(t, tour, in.Dimension())
		requireCost(t, in, tour, length)
	}
}

func TestNearestNeighbor_Errors(t *testing.T) {
	_, _, err := tsp.NearestNeighbor(unitSquare(t), 4)
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	_, _, err = tsp.NearestNeighbor(unitSquare(t), -1)
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	_, _, err = tsp.NearestNeighbor(nil, 0)
	require.ErrorIs(t, err, tsp.ErrInvalidInstance)
}

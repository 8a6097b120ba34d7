package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

func newTestACS(t *testing.T, dm tsp.DistanceModel, seed int64) *tsp.ACS {
	t.Helper()
	acs, err := tsp.NewACS(dm, rand.New(rand.NewSource(seed)), tsp.DefaultACSParams(), tsp.DefaultTwoOptOptions())
	require.NoError(t, err)

	return acs
}

func TestACS_InitialTables(t *testing.T) {
	acs := newTestACS(t, unitSquare(t), seedDet)

	// Every nearest-neighbour tour of the unit square has length 4.
	require.InDelta(t, 1.0/16, acs.Tau0(), 1e-12)
	require.InDelta(t, 1.0/16, acs.PheromoneAt(1, 3), 1e-12)
	require.InDelta(t, 1.0, acs.HeuristicAt(0, 1), 1e-12)
	require.InDelta(t, 0.5, acs.HeuristicAt(0, 2), 1e-12)
	require.Zero(t, acs.HeuristicAt(2, 2))

	tour, cost := acs.Best()
	requireValidTour(t, tour, 4)
	require.InDelta(t, 4.0, cost, epsCost)
}

func TestACS_BestIsMonotoneAndConsistent(t *testing.T) {
	in := randomPoints(t, 30, 13)
	acs := newTestACS(t, in, seedDet)
	_, prev := acs.Best()

	for i := 0; i < 40; i++ {
		rep, err := acs.Step()
		require.NoError(t, err)
		require.LessOrEqual(t, rep.BestCost, prev, "iteration %d", i)
		require.Equal(t, rep.BestCost < prev, rep.Improved, "iteration %d", i)
		require.GreaterOrEqual(t, rep.CurrentCost, rep.BestCost-epsCost)

		tour, cost := acs.Best()
		requireValidTour(t, tour, in.Dimension())
		requireCost(t, in, tour, cost)
		require.Equal(t, rep.BestCost, cost)
		prev = cost
	}
}

func TestACS_PheromoneStaysAboveTau0(t *testing.T) {
	in := randomPoints(t, 15, 3)
	acs := newTestACS(t, in, seedDet)
	for i := 0; i < 20; i++ {
		_, err := acs.Step()
		require.NoError(t, err)
	}

	tau0 := acs.Tau0()
	for i := 0; i < in.Dimension(); i++ {
		for j := 0; j < in.Dimension(); j++ {
			p := acs.PheromoneAt(i, j)
			require.False(t, math.IsNaN(p))
			require.GreaterOrEqual(t, p, tau0*(1-1e-9), "τ[%d][%d]", i, j)
		}
	}
}

func TestACS_DeterministicForSeed(t *testing.T) {
	in := randomPoints(t, 20, 5)
	a := newTestACS(t, in, 99)
	b := newTestACS(t, in, 99)
	for i := 0; i < 10; i++ {
		ra, err := a.Step()
		require.NoError(t, err)
		rb, err := b.Step()
		require.NoError(t, err)
		require.Equal(t, ra, rb)
	}
	ta, ca := a.Best()
	tb, cb := b.Best()
	require.Equal(t, ta, tb)
	require.Equal(t, ca, cb)
}

func TestNewACS_RejectsBadParams(t *testing.T) {
	params := tsp.DefaultACSParams()
	params.Q0 = 1.5
	_, err := tsp.NewACS(unitSquare(t), nil, params, tsp.DefaultTwoOptOptions())
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)

	params = tsp.DefaultACSParams()
	params.Ants = 0
	_, err = tsp.NewACS(unitSquare(t), nil, params, tsp.DefaultTwoOptOptions())
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
}

func TestACS_CoincidentCitiesTakeFirstUnvisited(t *testing.T) {
	// Each city has a twin at distance 0; when the twin is the last city left
	// every score is zero and the ant must still finish its tour.
	in := euclid(t, [][2]float64{{0, 0}, {0, 0}, {10, 0}, {10, 0}})
	acs := newTestACS(t, in, seedDet)

	var i int
	for i = 0; i < 20; i++ {
		_, err := acs.Step()
		require.NoError(t, err)
	}
	best, cost := acs.Best()
	require.NoError(t, tsp.ValidateTour(best, 4))
	require.InDelta(t, 20.0, cost, epsCost)
}

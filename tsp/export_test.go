package tsp

import "math/rand"

// White-box hooks for tsp_test.

// Tau0 returns the initial pheromone level.
func (a *ACS) Tau0() float64 { return a.tau0 }

// PheromoneAt returns τ[i][j].
func (a *ACS) PheromoneAt(i, j int) float64 { return a.pher[i*a.t.n+j] }

// HeuristicAt returns η[i][j].
func (a *ACS) HeuristicAt(i, j int) float64 { return a.heur[i*a.t.n+j] }

// RandomCuts exposes the ILS cut sampler.
func RandomCuts(rng *rand.Rand, n int) (a, b, c int, ok bool) { return randomCuts(rng, n) }

// DoubleBridgeDelta exposes the O(1) double-bridge cost change.
func DoubleBridgeDelta(dm DistanceModel, tour []int, a, b, c int) (float64, error) {
	t, err := newDistTable(dm)
	if err != nil {
		return 0, err
	}

	return t.doubleBridgeDelta(tour, a, b, c), nil
}

// Package tsp - Iterated Local Search with simulated-annealing acceptance.
//
// Initial state: the nearest-neighbour tour from a random start is both the
// current and the best tour; T0 = TempFactor · TempScale · cost / sqrt(n).
//
// One Step:
//  1. Perturb the current tour with a random double bridge (a random swap of
//     two interior positions when n < 7 leaves no room for three cuts).
//  2. Improve the candidate with 2-opt.
//  3. delta = cost(candidate) − cost(current). Accept when delta ≤ 0, else with
//     probability exp(−delta/T). A uniform draw is made only when delta > 0.
//  4. An accepted candidate that beats the best is copied into the best slot;
//     the current tour may later wander away from it.
//  5. T ← T · CoolingRate.
//
// Costs are tracked incrementally: the double-bridge delta is O(1) and 2-opt
// reports its total gain.
package tsp

import (
	"math"
	"math/rand"
)

// AcceptanceProbability is the annealing acceptance rule: 1 for delta ≤ 0,
// exp(−delta/temp) otherwise. A non-positive temperature accepts only
// non-worsening moves.
func AcceptanceProbability(delta, temp float64) float64 {
	if delta <= 0 {
		return 1
	}
	if !(temp > 0) {
		return 0
	}

	return math.Exp(-delta / temp)
}

// ILS is one Iterated Local Search. It is not safe for concurrent use.
type ILS struct {
	t      *distTable
	rng    *rand.Rand
	params ILSParams
	ls     TwoOptOptions

	cur      []int
	curCost  float64
	best     []int
	bestCost float64
	cand     []int
	temp     float64
}

// NewILS prepares an ILS search over dm starting from a nearest-neighbour tour
// with a random start drawn from rng; a nil rng uses the default stream.
//
// Errors: ErrInvalidInstance, ErrInvalidParameter, ErrConstructionExhausted.
func NewILS(dm DistanceModel, rng *rand.Rand, params ILSParams, ls TwoOptOptions) (*ILS, error) {
	t, err := newDistTable(dm)
	if err != nil {
		return nil, err
	}
	if err = params.validate(); err != nil {
		return nil, err
	}
	if err = ls.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}

	return newILS(t, rng, params, ls)
}

func newILS(t *distTable, rng *rand.Rand, params ILSParams, ls TwoOptOptions) (*ILS, error) {
	n := t.n
	tour, cost, err := t.nearestNeighbor(rng.Intn(n))
	if err != nil {
		return nil, err
	}

	return &ILS{
		t:        t,
		rng:      rng,
		params:   params,
		ls:       ls,
		cur:      tour,
		curCost:  cost,
		best:     CopyTour(tour),
		bestCost: cost,
		cand:     make([]int, n+1),
		temp:     params.TempFactor * params.TempScale * cost / math.Sqrt(float64(n)),
	}, nil
}

// Best returns a copy of the all-time best tour and its cost.
func (s *ILS) Best() ([]int, float64) {
	return CopyTour(s.best), s.bestCost
}

// Current returns a copy of the current accepted tour and its cost.
func (s *ILS) Current() ([]int, float64) {
	return CopyTour(s.cur), s.curCost
}

// Temperature returns the current annealing temperature.
func (s *ILS) Temperature() float64 { return s.temp }

// Step runs one perturb / improve / accept / cool iteration.
func (s *ILS) Step() (StepReport, error) {
	candCost := s.curCost
	if a, b, c, ok := randomCuts(s.rng, s.t.n); ok {
		candCost += s.t.doubleBridgeDelta(s.cur, a, b, c)
		doubleBridgeInto(s.cand, s.cur, a, b, c)
	} else {
		copy(s.cand, s.cur)
		randomSwap(s.rng, s.cand)
		candCost = s.t.tourLength(s.cand)
	}

	gain, _ := s.t.twoOpt(s.cand, s.ls)
	candCost -= gain

	delta := candCost - s.curCost
	accept := delta <= 0
	if !accept {
		accept = s.rng.Float64() < AcceptanceProbability(delta, s.temp)
	}

	improved := false
	if accept {
		s.cur, s.cand = s.cand, s.cur
		s.curCost = candCost
		if s.curCost < s.bestCost {
			copy(s.best, s.cur)
			s.bestCost = s.curCost
			improved = true
		}
	}
	s.temp *= s.params.CoolingRate

	return StepReport{
		Improved:    improved,
		BestCost:    s.bestCost,
		CurrentCost: s.curCost,
		Temperature: s.temp,
	}, nil
}

// Package tsp - Ant Colony System.
//
// State: a flat n×n pheromone table initialised to τ0 = 1/(n·L_nn), where L_nn
// is the length of a nearest-neighbour tour from a random start, and a flat
// heuristic table η[i][j] = (1/d_ij)^β with η = 0 wherever d_ij = 0.
//
// One Step:
//  1. Every ant builds a tour from an independent random start. At position p
//     each unvisited city i scores τ[p][i]·η[p][i]. With probability q0 the
//     first maximum is taken; otherwise the scores are normalised, the
//     maximum's share is removed and RouletteWheel samples the rest, falling
//     back to the maximum when no mass remains. A zero total score takes the
//     first unvisited city. Each move applies τ[p][next] ← (1−ρ)τ + ρ·τ0.
//  2. The strictly shortest ant tour of the iteration is improved by 2-opt.
//  3. It replaces the all-time best when shorter.
//  4. Every edge of the all-time best gets τ[s][e] ← (1−α)τ + α/L_best.
//
// Pheromone updates are directed: only τ[p][next] is touched.
//
// Complexity per Step: O(ants·n²) construction plus one 2-opt run.
package tsp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ACS is one Ant Colony System search. It is not safe for concurrent use.
type ACS struct {
	t      *distTable
	rng    *rand.Rand
	params ACSParams
	ls     TwoOptOptions

	tau0 float64
	pher []float64
	heur []float64

	best     []int
	bestCost float64

	// scratch reused across ants and steps
	ant      []int
	iterBest []int
	visited  []bool
	scores   []float64
}

// NewACS prepares an ACS search over dm. The initial best tour is the
// nearest-neighbour tour from a random start drawn from rng; a nil rng uses
// the default stream.
//
// Errors: ErrInvalidInstance, ErrInvalidParameter, ErrConstructionExhausted.
func NewACS(dm DistanceModel, rng *rand.Rand, params ACSParams, ls TwoOptOptions) (*ACS, error) {
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

	return newACS(t, rng, params, ls)
}

func newACS(t *distTable, rng *rand.Rand, params ACSParams, ls TwoOptOptions) (*ACS, error) {
	n := t.n
	nn, lnn, err := t.nearestNeighbor(rng.Intn(n))
	if err != nil {
		return nil, err
	}

	a := &ACS{
		t:        t,
		rng:      rng,
		params:   params,
		ls:       ls,
		pher:     make([]float64, n*n),
		heur:     make([]float64, n*n),
		best:     nn,
		bestCost: lnn,
		ant:      make([]int, n+1),
		iterBest: make([]int, n+1),
		visited:  make([]bool, n),
		scores:   make([]float64, n),
	}
	// L_nn = 0 means every tour is optimal; τ0 stays 0 and the caller stops early.
	if lnn > 0 {
		a.tau0 = 1 / (float64(n) * lnn)
	}

	var (
		i, k int
		d    float64
	)
	for i = range a.pher {
		a.pher[i] = a.tau0
	}
	for i = 0; i < n; i++ {
		for k = 0; k < n; k++ {
			d = t.d[i*n+k]
			if i == k || d == 0 {
				continue
			}
			a.heur[i*n+k] = math.Pow(1/d, params.Beta)
		}
	}

	return a, nil
}

// Best returns a copy of the all-time best tour and its cost.
func (a *ACS) Best() ([]int, float64) {
	return CopyTour(a.best), a.bestCost
}

// Step runs one colony iteration.
func (a *ACS) Step() (StepReport, error) {
	var (
		k        int
		cost     float64
		iterCost = math.Inf(1)
		err      error
	)
	for k = 0; k < a.params.Ants; k++ {
		if cost, err = a.construct(a.ant); err != nil {
			return StepReport{BestCost: a.bestCost}, err
		}
		if cost < iterCost {
			iterCost = cost
			copy(a.iterBest, a.ant)
		}
	}

	gain, _ := a.t.twoOpt(a.iterBest, a.ls)
	iterCost -= gain

	improved := false
	if iterCost < a.bestCost {
		copy(a.best, a.iterBest)
		a.bestCost = iterCost
		improved = true
	}
	a.globalUpdate()

	return StepReport{Improved: improved, BestCost: a.bestCost, CurrentCost: iterCost}, nil
}

// construct builds one ant tour into tour and returns its length.
func (a *ACS) construct(tour []int) (float64, error) {
	var (
		n          = a.t.n
		start      = a.rng.Intn(n)
		pos        = start
		next, step int
		length     float64
		err        error
	)
	clear(a.visited)
	a.visited[start] = true
	tour[0] = start
	for step = 1; step < n; step++ {
		if next, err = a.selectNext(pos); err != nil {
			return 0, err
		}
		a.localUpdate(pos, next)
		a.visited[next] = true
		tour[step] = next
		length += a.t.at(pos, next)
		pos = next
	}
	tour[n] = start
	length += a.t.at(pos, start)

	return length, nil
}

// selectNext applies the pseudorandom-proportional rule at pos. When every
// unvisited city scores zero (all remaining cities coincide with pos) the
// first unvisited city is taken rather than failing the ant.
func (a *ACS) selectNext(pos int) (int, error) {
	var (
		n        = a.t.n
		row      = pos * n
		scores   = a.scores
		i        int
		s, total float64
		maxScore = -1.0
		maxIdx   = -1
		first    = -1
	)
	for i = 0; i < n; i++ {
		if a.visited[i] {
			scores[i] = 0
			continue
		}
		if first < 0 {
			first = i
		}
		s = a.pher[row+i] * a.heur[row+i]
		scores[i] = s
		total += s
		if s > maxScore {
			maxScore = s
			maxIdx = i
		}
	}
	if first < 0 {
		return -1, ErrConstructionExhausted
	}

	u := a.rng.Float64()
	if !(total > 0) {
		return first, nil
	}
	if u <= a.params.Q0 {
		return maxIdx, nil
	}

	rest := 0.0
	for i = 0; i < n; i++ {
		scores[i] /= total
	}
	scores[maxIdx] = 0
	for i = 0; i < n; i++ {
		rest += scores[i]
	}
	if !(rest > 0) {
		return maxIdx, nil
	}

	next, err := RouletteWheel(a.rng, scores, rest)
	if errors.Is(err, ErrDegenerateDistribution) {
		return maxIdx, nil
	}
	if err != nil {
		return -1, fmt.Errorf("tsp: ant step from %d: %w", pos, err)
	}

	return next, nil
}

// localUpdate decays the traversed edge toward τ0.
func (a *ACS) localUpdate(from, to int) {
	idx := from*a.t.n + to
	a.pher[idx] = (1-a.params.Rho)*a.pher[idx] + a.params.Rho*a.tau0
}

// globalUpdate reinforces every edge of the all-time best tour.
func (a *ACS) globalUpdate() {
	var (
		n       = a.t.n
		alpha   = a.params.Alpha
		deposit float64
		i, idx  int
	)
	if a.bestCost > 0 {
		deposit = alpha / a.bestCost
	}
	for i = 0; i < n; i++ {
		idx = a.best[i]*n + a.best[i+1]
		a.pher[idx] = (1-alpha)*a.pher[idx] + deposit
	}
}

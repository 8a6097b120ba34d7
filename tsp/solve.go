// Package tsp - public entry points.
//
// Solve dispatches on Options.Algo; RunACS and RunILS force the algorithm.
// All three share the same pipeline:
//
//	validate options → validate instance → n == 1 shortcut → seeded RNG →
//	construct solver → initial improvement event → anytime loop → finalize
//
// finalize rotates the best tour to start at city 0, fixes its orientation
// (tour[1] ≤ tour[n−1]), validates it and recomputes its cost with the
// evaluator, rounded to 1e-9.
//
// On a solver error the best tour found so far is still returned alongside
// the error, together with the iteration count and time spent.
package tsp

import (
	"context"
	"math/rand"
)

// Solve runs the metaheuristic selected by opts.Algo.
func Solve(ctx context.Context, dm DistanceModel, opts Options) (TSResult, error) {
	switch opts.Algo {
	case AntColony:
		return RunACS(ctx, dm, opts)
	case IteratedLocal:
		return RunILS(ctx, dm, opts)
	default:
		return TSResult{Algo: opts.Algo}, ErrUnsupportedAlgorithm
	}
}

// RunACS runs Ant Colony System under opts.Budget. opts.Algo is ignored.
func RunACS(ctx context.Context, dm DistanceModel, opts Options) (TSResult, error) {
	opts.Algo = AntColony

	return run(ctx, dm, opts, func(t *distTable, rng *rand.Rand) (stepper, error) {
		return newACS(t, rng, opts.ACS, opts.TwoOpt)
	})
}

// RunILS runs Iterated Local Search under opts.Budget. opts.Algo is ignored.
func RunILS(ctx context.Context, dm DistanceModel, opts Options) (TSResult, error) {
	opts.Algo = IteratedLocal

	return run(ctx, dm, opts, func(t *distTable, rng *rand.Rand) (stepper, error) {
		return newILS(t, rng, opts.ILS, opts.TwoOpt)
	})
}

func run(
	ctx context.Context,
	dm DistanceModel,
	opts Options,
	build func(*distTable, *rand.Rand) (stepper, error),
) (TSResult, error) {
	res := TSResult{Algo: opts.Algo}
	if err := opts.Validate(); err != nil {
		return res, err
	}
	t, err := newDistTable(dm)
	if err != nil {
		return res, err
	}
	if t.n == 1 {
		res.Tour = []int{0, 0}
		res.Stop = StopTrivial
		return res, nil
	}

	cfg := loopConfig{
		algo:     opts.Algo,
		budget:   opts.Budget,
		clock:    opts.Clock,
		observer: opts.Observer,
	}
	if cfg.clock == nil {
		cfg.clock = SystemClock{}
	}
	if cfg.observer == nil {
		cfg.observer = NoopObserver{}
	}
	if opts.StopAtBestKnown {
		if bk, ok := dm.BestKnownLength(); ok && bk > 0 {
			cfg.target = round1e9(bk)
			cfg.hasTarget = true
		}
	}

	s, err := build(t, rngFromSeed(opts.Seed))
	if err != nil {
		return res, err
	}

	tour, cost := s.Best()
	cfg.observer.OnImprovement(ImprovementEvent{Algo: opts.Algo, Cost: cost, Tour: tour})
	switch {
	case cost == 0:
		return finalize(t, s, res, loopStats{stop: StopTrivial})
	case cfg.reachedTarget(cost):
		return finalize(t, s, res, loopStats{stop: StopBestKnown})
	}

	st, runErr := runAnytime(ctx, s, cfg)
	res, err = finalize(t, s, res, st)
	if runErr != nil {
		return res, runErr
	}

	return res, err
}

// finalize normalises the best tour of s into res.
func finalize(t *distTable, s stepper, res TSResult, st loopStats) (TSResult, error) {
	res.Iterations = st.iterations
	res.Elapsed = st.spent
	res.Stop = st.stop

	best, _ := s.Best()
	tour, err := RotateTourToStart(best, 0)
	if err != nil {
		return res, err
	}
	if err = CanonicalizeOrientationInPlace(tour); err != nil {
		return res, err
	}
	if err = ValidateTour(tour, t.n); err != nil {
		return res, err
	}
	res.Tour = tour
	res.Cost = round1e9(t.tourLength(tour))

	return res, nil
}

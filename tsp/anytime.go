// Package tsp - budgeted anytime outer loop shared by ACS and ILS.
//
// The loop is self-measuring: each iteration is timed with the injected Clock
// and its duration is added to the spent budget. The last duration serves as
// the estimate of the next one, so a new iteration starts only while
// spent + last < Budget.TimeLimit (when set; last is 0 before the first
// iteration) and the iteration count is below Budget.MaxIterations (when set).
// A started iteration always runs to completion; there is no preemption
// inside construction or 2-opt.
//
// The context is checked between iterations only. Cancellation is not an
// error: the best tour found so far is returned with StopCanceled.
package tsp

import (
	"context"
	"time"
)

// Clock abstracts the time source of the anytime loop so tests can drive it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// StepReport is the outcome of one solver iteration.
type StepReport struct {
	Improved    bool    // the all-time best got shorter
	BestCost    float64 // all-time best cost after the step
	CurrentCost float64 // ACS: 2-opt'd iteration-best; ILS: current accepted tour
	Temperature float64 // ILS only
}

// stepper is the per-iteration protocol of one metaheuristic.
type stepper interface {
	Step() (StepReport, error)
	Best() ([]int, float64)
}

// loopConfig carries the run-level knobs of runAnytime.
type loopConfig struct {
	algo      Algorithm
	budget    Budget
	clock     Clock
	observer  Observer
	target    float64 // best-known length; used only when hasTarget
	hasTarget bool
}

// loopStats summarizes a finished loop.
type loopStats struct {
	iterations int
	spent      time.Duration
	stop       StopReason
}

// reachedTarget reports whether cost is at or below the best-known length.
func (c loopConfig) reachedTarget(cost float64) bool {
	return c.hasTarget && round1e9(cost) <= c.target
}

// runAnytime drives s until the budget, the target, or ctx stops it.
// A step error aborts the loop and is returned together with the stats so far.
func runAnytime(ctx context.Context, s stepper, cfg loopConfig) (loopStats, error) {
	var (
		st         loopStats
		start, end time.Time
		dur, last  time.Duration
		rep        StepReport
		err        error
	)
	for {
		if cfg.budget.MaxIterations > 0 && st.iterations >= cfg.budget.MaxIterations {
			st.stop = StopIterations
			return st, nil
		}
		if cfg.budget.TimeLimit > 0 && st.spent+last >= cfg.budget.TimeLimit {
			st.stop = StopDeadline
			return st, nil
		}
		if ctx.Err() != nil {
			st.stop = StopCanceled
			return st, nil
		}

		start = cfg.clock.Now()
		rep, err = s.Step()
		end = cfg.clock.Now()
		dur = end.Sub(start)
		if dur < 0 {
			dur = 0
		}
		st.spent += dur
		last = dur
		st.iterations++
		if err != nil {
			return st, err
		}

		cfg.observer.OnIteration(IterationEvent{
			Algo:        cfg.algo,
			Iteration:   st.iterations,
			BestCost:    rep.BestCost,
			CurrentCost: rep.CurrentCost,
			Temperature: rep.Temperature,
			Duration:    dur,
			Elapsed:     st.spent,
		})
		if rep.Improved {
			tour, cost := s.Best()
			cfg.observer.OnImprovement(ImprovementEvent{
				Algo:      cfg.algo,
				Iteration: st.iterations,
				Cost:      cost,
				Tour:      tour,
				Elapsed:   st.spent,
			})
			if cfg.reachedTarget(cost) {
				st.stop = StopBestKnown
				return st, nil
			}
		}
	}
}

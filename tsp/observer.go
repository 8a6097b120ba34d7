// Package tsp - progress hooks for the anytime loop.
//
// Observers are invoked synchronously on the solver goroutine, between
// iterations, and never while an iteration is running. Their own cost is not
// charged to the search budget. Implementations must not retain the Tour slice
// of an ImprovementEvent beyond the call unless they copy it.
package tsp

import "time"

// IterationEvent describes one completed outer-loop iteration.
type IterationEvent struct {
	Algo        Algorithm
	Iteration   int           // 1-based
	BestCost    float64       // all-time best after this iteration
	CurrentCost float64       // ACS: 2-opt'd iteration-best; ILS: accepted current tour
	Temperature float64       // ILS only; 0 for ACS
	Duration    time.Duration // measured cost of this iteration
	Elapsed     time.Duration // accumulated search time
}

// ImprovementEvent is emitted when the all-time best tour gets shorter.
// Iteration 0 reports the initial constructed tour.
type ImprovementEvent struct {
	Algo      Algorithm
	Iteration int
	Cost      float64
	Tour      []int
	Elapsed   time.Duration
}

// Observer receives progress notifications from RunACS and RunILS.
type Observer interface {
	OnIteration(IterationEvent)
	OnImprovement(ImprovementEvent)
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) OnIteration(IterationEvent)     {}
func (NoopObserver) OnImprovement(ImprovementEvent) {}

// MultiObserver fans events out to each member in order. Nil members are skipped.
type MultiObserver []Observer

func (m MultiObserver) OnIteration(ev IterationEvent) {
	for _, o := range m {
		if o != nil {
			o.OnIteration(ev)
		}
	}
}

func (m MultiObserver) OnImprovement(ev ImprovementEvent) {
	for _, o := range m {
		if o != nil {
			o.OnImprovement(ev)
		}
	}
}

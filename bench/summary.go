package bench

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/metatsp/tsp"
)

// ErrNoTrials is returned by Summarize for an empty trial list.
var ErrNoTrials = errors.New("bench: no trials")

// Summary aggregates the trials of one instance.
type Summary struct {
	Instance string
	Algo     tsp.Algorithm
	Runs     int

	Best   float64
	Worst  float64
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for a single run
	Median float64
	P90    float64

	BestTour []int
	MeanGap  float64 // valid when HasGap
	HasGap   bool
}

// Summarize computes cost statistics over trials.
func Summarize(instance string, trials []Trial) (Summary, error) {
	if len(trials) == 0 {
		return Summary{}, ErrNoTrials
	}

	costs := make([]float64, len(trials))
	gaps := make([]float64, 0, len(trials))
	best := 0
	for i, tr := range trials {
		costs[i] = tr.Result.Cost
		if tr.Result.Cost < trials[best].Result.Cost {
			best = i
		}
		if tr.HasGap {
			gaps = append(gaps, tr.Gap)
		}
	}

	s := Summary{
		Instance: instance,
		Algo:     trials[0].Result.Algo,
		Runs:     len(trials),
		BestTour: tsp.CopyTour(trials[best].Result.Tour),
	}

	var err error
	if s.Best, err = stats.Min(costs); err != nil {
		return Summary{}, fmt.Errorf("bench %s: min: %w", instance, err)
	}
	if s.Worst, err = stats.Max(costs); err != nil {
		return Summary{}, fmt.Errorf("bench %s: max: %w", instance, err)
	}
	if s.Median, err = stats.Median(costs); err != nil {
		return Summary{}, fmt.Errorf("bench %s: median: %w", instance, err)
	}
	if len(costs) > 1 {
		if s.P90, err = stats.Percentile(costs, 90); err != nil {
			return Summary{}, fmt.Errorf("bench %s: percentile 90: %w", instance, err)
		}
		s.Mean, s.StdDev = stat.MeanStdDev(costs, nil)
	} else {
		s.P90 = costs[0]
		s.Mean = costs[0]
	}
	if len(gaps) > 0 {
		s.MeanGap = stat.Mean(gaps, nil)
		s.HasGap = true
	}
	return s, nil
}

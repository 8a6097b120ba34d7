// Package bench runs independent solver trials over several instances in
// parallel and summarises their costs.
//
// Every trial is an isolated tsp.Solve call with its own seed, derived from the
// base seed with tsp.DeriveSeed, so a benchmark is reproducible for a fixed
// iteration budget regardless of scheduling.
package bench

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metatsp/tsp"
)

// ErrNoInstances is returned when Run is given nothing to solve.
var ErrNoInstances = errors.New("bench: no instances")

// Instance is a named problem to benchmark.
type Instance struct {
	Name  string
	Model tsp.DistanceModel
}

// Config controls a benchmark.
type Config struct {
	// Options are the solver options of every trial; Options.Seed is the base seed.
	Options tsp.Options
	// Trials per instance (≥ 1).
	Trials int
	// Parallel is the maximum number of concurrent trials (≥ 1).
	Parallel int
	// Observer, when set, returns the observer for one trial.
	Observer func(instance string, trial int, seed int64) tsp.Observer
	// OnTrial, when set, is called after each trial. Calls are serialised.
	OnTrial func(Trial)
}

// Trial is the outcome of one solver run.
type Trial struct {
	Instance string
	Index    int
	Seed     int64
	Result   tsp.TSResult
	Gap      float64 // percent over best-known; valid when HasGap
	HasGap   bool
}

// Report collects every trial and the per-instance summaries in input order.
type Report struct {
	Trials     []Trial
	Summaries  []Summary
	AverageGap float64
	HasGap     bool
}

// TrialSeed is the seed of trial k of the instance at position i.
func TrialSeed(base int64, i, trials, k int) int64 {
	return tsp.DeriveSeed(base, uint64(i*trials+k))
}

// Run solves every instance Trials times with at most Parallel trials in
// flight. The first failing trial cancels the rest and its error is returned.
func Run(ctx context.Context, instances []Instance, cfg Config) (*Report, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}
	if cfg.Trials < 1 || cfg.Parallel < 1 {
		return nil, fmt.Errorf("bench: trials and parallel must be >= 1 (got %d, %d)", cfg.Trials, cfg.Parallel)
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	var (
		trials = make([]Trial, len(instances)*cfg.Trials)
		mu     sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)

	for i, inst := range instances {
		for k := 0; k < cfg.Trials; k++ {
			i, inst, k := i, inst, k
			g.Go(func() error {
				seed := TrialSeed(cfg.Options.Seed, i, cfg.Trials, k)
				opts := cfg.Options
				opts.Seed = seed
				if cfg.Observer != nil {
					opts.Observer = cfg.Observer(inst.Name, k, seed)
				}

				res, err := tsp.Solve(gctx, inst.Model, opts)
				if err != nil {
					return fmt.Errorf("bench %s trial %d: %w", inst.Name, k, err)
				}

				tr := Trial{Instance: inst.Name, Index: k, Seed: seed, Result: res}
				if bk, ok := inst.Model.BestKnownLength(); ok {
					tr.Gap = GapPercent(res.Cost, bk)
					tr.HasGap = true
				}
				trials[i*cfg.Trials+k] = tr

				if cfg.OnTrial != nil {
					mu.Lock()
					cfg.OnTrial(tr)
					mu.Unlock()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Trials: trials}
	for i, inst := range instances {
		s, err := Summarize(inst.Name, trials[i*cfg.Trials:(i+1)*cfg.Trials])
		if err != nil {
			return nil, err
		}
		rep.Summaries = append(rep.Summaries, s)
	}
	rep.AverageGap, rep.HasGap = AverageGap(rep.Summaries)
	return rep, nil
}

// GapPercent is the excess of cost over best in percent.
func GapPercent(cost, best float64) float64 {
	return (cost - best) / best * 100
}

// AverageGap is the mean of MeanGap over the summaries that have a best-known
// length. ok is false when none has.
func AverageGap(sums []Summary) (avg float64, ok bool) {
	var n int
	for _, s := range sums {
		if s.HasGap {
			avg += s.MeanGap
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return avg / float64(n), true
}

// SortByGap orders summaries from the worst to the best mean gap; summaries
// without a gap go last.
func SortByGap(sums []Summary) {
	sort.SliceStable(sums, func(i, j int) bool {
		if sums[i].HasGap != sums[j].HasGap {
			return sums[i].HasGap
		}
		return sums[i].MeanGap > sums[j].MeanGap
	})
}

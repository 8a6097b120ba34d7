package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/bench"
	"github.com/katalvlaran/metatsp/store"
	"github.com/katalvlaran/metatsp/tsp"
	"github.com/katalvlaran/metatsp/tsplib"
)

func newBenchCmd(gf *globalFlags) *cobra.Command {
	var (
		trials, parallel int
		byGap            bool
	)
	cmd := &cobra.Command{
		Use:   "bench FILE...",
		Short: "Run repeated trials over several TSPLIB instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			e, err := gf.open(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := e.close(); err == nil {
					err = cerr
				}
			}()
			if cmd.Flags().Changed("trials") {
				e.cfg.Bench.Trials = trials
			}
			if cmd.Flags().Changed("parallel") {
				e.cfg.Bench.Parallel = parallel
			}

			var (
				instances = make([]bench.Instance, 0, len(args))
				models    = make(map[string]tsp.DistanceModel, len(args))
			)
			for _, path := range args {
				inst, err := tsplib.Load(path)
				if err != nil {
					return err
				}
				if _, dup := models[inst.Name()]; dup {
					return fmt.Errorf("duplicate instance name %q (%s)", inst.Name(), path)
				}
				models[inst.Name()] = inst
				instances = append(instances, bench.Instance{Name: inst.Name(), Model: inst})
			}

			ctx := cmd.Context()
			algoLog := e.log.WithAlgorithm(e.opts.Algo)
			var saveErr error
			cfg := bench.Config{
				Options:  e.opts,
				Trials:   e.cfg.Bench.Trials,
				Parallel: e.cfg.Bench.Parallel,
				Observer: func(instance string, trial int, seed int64) tsp.Observer {
					return e.observer(algoLog.WithInstance(instance).WithTrial(trial, seed), instance)
				},
				OnTrial: func(tr bench.Trial) {
					algoLog.WithInstance(tr.Instance).WithTrial(tr.Index, tr.Seed).LogResult(ctx, tr.Result, nil)
					if e.collector != nil {
						e.collector.ObserveRun(tr.Instance, tr.Result, nil, tr.Gap, tr.HasGap)
					}
					if e.store != nil && saveErr == nil {
						_, saveErr = e.store.SaveRun(ctx, store.NewRecord(tr.Instance, tr.Seed, models[tr.Instance], tr.Result))
					}
				},
			}
			algoLog.Info("benchmark started",
				"instances", len(instances),
				"trials", cfg.Trials,
				"parallel", cfg.Parallel,
			)

			rep, err := bench.Run(ctx, instances, cfg)
			if err != nil {
				return err
			}
			if saveErr != nil {
				return saveErr
			}
			if byGap {
				bench.SortByGap(rep.Summaries)
			}
			return printReport(cmd, rep)
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 1, "trials per instance")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "concurrent trials")
	cmd.Flags().BoolVar(&byGap, "sort-gap", false, "list instances from the worst to the best gap")
	return cmd
}

func printReport(cmd *cobra.Command, rep *bench.Report) error {
	w := table(cmd.OutOrStdout())
	fmt.Fprintln(w, "INSTANCE\tALGO\tRUNS\tBEST\tMEAN\tSTDDEV\tMEDIAN\tP90\tWORST\tGAP")
	for _, s := range rep.Summaries {
		gap := "-"
		if s.HasGap {
			gap = fmt.Sprintf("%.2f%%", s.MeanGap)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
			s.Instance, s.Algo, s.Runs,
			humanize.CommafWithDigits(s.Best, 2),
			humanize.CommafWithDigits(s.Mean, 2),
			s.StdDev,
			humanize.CommafWithDigits(s.Median, 2),
			humanize.CommafWithDigits(s.P90, 2),
			humanize.CommafWithDigits(s.Worst, 2),
			gap,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if rep.HasGap {
		fmt.Fprintf(cmd.OutOrStdout(), "average gap: %.2f%%\n", rep.AverageGap)
	}
	return nil
}

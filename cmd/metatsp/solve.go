package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/bench"
	"github.com/katalvlaran/metatsp/store"
	"github.com/katalvlaran/metatsp/tsp"
	"github.com/katalvlaran/metatsp/tsplib"
)

func newSolveCmd(gf *globalFlags) *cobra.Command {
	var printTour bool
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve one TSPLIB instance",
		Long: "Solve one TSPLIB instance (.tsp, optionally .gz or .zst compressed)\n" +
			"and print the best tour found within the budget.",
		Args: cobra.ExactArgs(1),
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

			inst, err := tsplib.Load(args[0])
			if err != nil {
				return err
			}
			log := e.log.WithInstance(inst.Name()).WithAlgorithm(e.opts.Algo)
			log.Info("solving", "cities", inst.Dimension(), "seed", e.opts.Seed)

			opts := e.opts
			opts.Observer = e.observer(log, inst.Name())
			ctx := cmd.Context()
			res, err := tsp.Solve(ctx, inst, opts)
			log.LogResult(ctx, res, err)

			gap, hasGap := 0.0, false
			if bk, ok := inst.BestKnownLength(); ok {
				gap, hasGap = bench.GapPercent(res.Cost, bk), true
			}
			if e.collector != nil {
				e.collector.ObserveRun(inst.Name(), res, err, gap, hasGap)
			}
			if err != nil {
				return err
			}

			var runID string
			if e.store != nil {
				rec, err := e.store.SaveRun(ctx, store.NewRecord(inst.Name(), opts.Seed, inst, res))
				if err != nil {
					return err
				}
				runID = rec.ID
			}

			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "instance\t%s\n", inst.Name())
			fmt.Fprintf(w, "algorithm\t%s\n", res.Algo)
			fmt.Fprintf(w, "cost\t%s\n", humanize.CommafWithDigits(res.Cost, 2))
			if hasGap {
				bk, _ := inst.BestKnownLength()
				fmt.Fprintf(w, "best known\t%s (gap %.2f%%)\n", humanize.CommafWithDigits(bk, 2), gap)
			}
			fmt.Fprintf(w, "iterations\t%s\n", humanize.Comma(int64(res.Iterations)))
			fmt.Fprintf(w, "elapsed\t%s\n", res.Elapsed)
			fmt.Fprintf(w, "stop\t%s\n", res.Stop)
			if runID != "" {
				fmt.Fprintf(w, "run\t%s\n", runID)
			}
			if printTour {
				fmt.Fprintf(w, "tour\t%s\n", formatTour(res.Tour))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&printTour, "tour", false, "print the tour")
	return cmd
}

func formatTour(tour []int) string {
	parts := make([]string, len(tour))
	for i, v := range tour {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

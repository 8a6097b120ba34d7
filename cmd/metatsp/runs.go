package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/bench"
	"github.com/katalvlaran/metatsp/store"
)

func newRunsCmd(gf *globalFlags) *cobra.Command {
	var (
		limit int
		best  bool
	)
	cmd := &cobra.Command{
		Use:   "runs [INSTANCE]",
		Short: "List stored runs, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := gf.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return errors.New("no run history: set --store or store.path")
			}
			s, err := store.New(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			var instance string
			if len(args) == 1 {
				instance = args[0]
			}

			ctx := cmd.Context()
			var recs []store.Record
			if best {
				if instance == "" {
					return errors.New("--best needs an INSTANCE")
				}
				algo := ""
				if cmd.Flags().Changed("algo") {
					algo = cfg.Algorithm
				}
				rec, err := s.BestRun(ctx, instance, algo)
				if err != nil {
					return err
				}
				recs = []store.Record{rec}
			} else if recs, err = s.ListRuns(ctx, instance, limit); err != nil {
				return err
			}

			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tINSTANCE\tALGO\tSEED\tCOST\tGAP\tITERATIONS\tSTOP\tWHEN")
			for _, r := range recs {
				gap := "-"
				if r.HasBestKnown {
					gap = fmt.Sprintf("%.2f%%", bench.GapPercent(r.Cost, r.BestKnown))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					shortID(r.ID), r.Instance, r.Algo, r.Seed,
					humanize.CommafWithDigits(r.Cost, 2), gap,
					humanize.Comma(int64(r.Iterations)), r.Stop,
					humanize.Time(r.CreatedAt),
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&best, "best", false, "show only the cheapest run of INSTANCE (filtered by --algo when set)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/config"
	"github.com/katalvlaran/metatsp/logging"
	"github.com/katalvlaran/metatsp/metrics"
	"github.com/katalvlaran/metatsp/store"
	"github.com/katalvlaran/metatsp/tsp"
)

// globalFlags override the configuration file when set on the command line.
type globalFlags struct {
	configPath  string
	algo        string
	seed        int64
	timeLimit   time.Duration
	maxIters    int
	noEarlyStop bool
	logFormat   string
	logLevel    string
	storePath   string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}
	root := &cobra.Command{
		Use:           "metatsp",
		Short:         "Anytime metaheuristics for the symmetric TSP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&gf.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVarP(&gf.algo, "algo", "a", "", "algorithm: acs or ils")
	pf.Int64Var(&gf.seed, "seed", 0, "base random seed")
	pf.DurationVarP(&gf.timeLimit, "time-limit", "t", 0, "search time per run (0 disables)")
	pf.IntVarP(&gf.maxIters, "max-iterations", "n", 0, "iteration cap per run (0 disables)")
	pf.BoolVar(&gf.noEarlyStop, "no-early-stop", false, "keep searching after the best-known length is reached")
	pf.StringVar(&gf.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&gf.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&gf.storePath, "store", "", "SQLite run history database")
	pf.StringVar(&gf.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(
		newSolveCmd(gf),
		newBenchCmd(gf),
		newRunsCmd(gf),
	)
	return root
}

// load reads the configuration file, if any, and applies flags that were set.
func (gf *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if gf.configPath != "" {
		var err error
		if cfg, err = config.Load(gf.configPath); err != nil {
			return nil, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("algo") {
		cfg.Algorithm = gf.algo
	}
	if fl.Changed("seed") {
		cfg.Seed = gf.seed
	}
	if fl.Changed("time-limit") {
		cfg.TimeLimit = gf.timeLimit
	}
	if fl.Changed("max-iterations") {
		cfg.MaxIterations = gf.maxIters
	}
	if fl.Changed("no-early-stop") {
		cfg.StopAtBestKnown = !gf.noEarlyStop
	}
	if fl.Changed("log-format") {
		cfg.Log.Format = gf.logFormat
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = gf.logLevel
	}
	if fl.Changed("store") {
		cfg.Store.Path = gf.storePath
	}
	if fl.Changed("metrics-addr") {
		cfg.Metrics.Addr = gf.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env holds what a command needs to run searches.
type env struct {
	cfg       *config.Config
	opts      tsp.Options
	log       *logging.Logger
	collector *metrics.Collector // nil without --metrics-addr
	store     *store.Store       // nil without --store
	server    *http.Server
}

func (gf *globalFlags) open(cmd *cobra.Command) (*env, error) {
	cfg, err := gf.load(cmd)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	log, err := logging.Open(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, opts: opts, log: log}
	if cfg.Store.Path != "" {
		if e.store, err = store.New(cfg.Store.Path); err != nil {
			return nil, err
		}
	}
	if cfg.Metrics.Addr != "" {
		e.collector = metrics.NewCollector()
		e.server = e.collector.Server(cfg.Metrics.Addr)
		go func() {
			if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
		log.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}
	return e, nil
}

// observer returns the observer of one run on instance.
func (e *env) observer(l *logging.Logger, instance string) tsp.Observer {
	obs := tsp.MultiObserver{logging.NewProgressObserver(l, logging.DefaultProgressInterval)}
	if e.collector != nil {
		obs = append(obs, e.collector.ForInstance(instance))
	}
	return obs
}

func (e *env) close() error {
	var errs []error
	if e.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, e.server.Shutdown(ctx))
		cancel()
	}
	if e.store != nil {
		errs = append(errs, e.store.Close())
	}
	return errors.Join(errs...)
}

// table returns a tab-aligned writer; callers must Flush it.
func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Package config loads metatsp run configuration from YAML.
//
// Every field is optional; omitted fields keep the values of Default().
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/metatsp/tsp"
)

// Config is the root of a run configuration file.
type Config struct {
	Algorithm       string        `yaml:"algorithm"`
	Seed            int64         `yaml:"seed"`
	TimeLimit       time.Duration `yaml:"time_limit"`
	MaxIterations   int           `yaml:"max_iterations"`
	StopAtBestKnown bool          `yaml:"stop_at_best_known"`

	ACS    ACS    `yaml:"acs"`
	ILS    ILS    `yaml:"ils"`
	TwoOpt TwoOpt `yaml:"two_opt"`

	Bench   Bench   `yaml:"bench"`
	Log     Log     `yaml:"log"`
	Store   Store   `yaml:"store"`
	Metrics Metrics `yaml:"metrics"`
}

// ACS holds Ant Colony System parameters.
type ACS struct {
	Ants  int     `yaml:"ants"`
	Beta  float64 `yaml:"beta"`
	Q0    float64 `yaml:"q0"`
	Rho   float64 `yaml:"rho"`
	Alpha float64 `yaml:"alpha"`
}

// ILS holds Iterated Local Search parameters.
type ILS struct {
	CoolingRate float64 `yaml:"cooling_rate"`
	TempScale   float64 `yaml:"temp_scale"`
	TempFactor  float64 `yaml:"temp_factor"`
}

// TwoOpt holds local search parameters.
type TwoOpt struct {
	Policy    string  `yaml:"policy"`
	Eps       float64 `yaml:"eps"`
	MaxPasses int     `yaml:"max_passes"`
}

// Bench controls multi-trial benchmarking.
type Bench struct {
	Trials   int `yaml:"trials"`
	Parallel int `yaml:"parallel"`
}

// Log selects the log format ("text" or "json") and level.
type Log struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// Store is the SQLite run-history database; an empty path disables it.
type Store struct {
	Path string `yaml:"path"`
}

// Metrics is the Prometheus listen address; empty disables the endpoint.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opts := tsp.DefaultOptions()
	return &Config{
		Algorithm:       opts.Algo.String(),
		TimeLimit:       opts.Budget.TimeLimit,
		StopAtBestKnown: opts.StopAtBestKnown,
		ACS: ACS{
			Ants:  opts.ACS.Ants,
			Beta:  opts.ACS.Beta,
			Q0:    opts.ACS.Q0,
			Rho:   opts.ACS.Rho,
			Alpha: opts.ACS.Alpha,
		},
		ILS: ILS{
			CoolingRate: opts.ILS.CoolingRate,
			TempScale:   opts.ILS.TempScale,
			TempFactor:  opts.ILS.TempFactor,
		},
		TwoOpt: TwoOpt{
			Policy: opts.TwoOpt.Policy.String(),
			Eps:    opts.TwoOpt.Eps,
		},
		Bench: Bench{Trials: 1, Parallel: 1},
		Log:   Log{Format: "text", Level: "info"},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r on top of Default() and validates the result.
// An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration by building the solver options.
func (c *Config) Validate() error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if c.Bench.Trials < 1 {
		return fmt.Errorf("bench.trials must be >= 1, got %d", c.Bench.Trials)
	}
	if c.Bench.Parallel < 1 {
		return fmt.Errorf("bench.parallel must be >= 1, got %d", c.Bench.Parallel)
	}
	return nil
}

// Options converts the configuration into solver options. Clock and Observer
// are left for the caller to wire.
func (c *Config) Options() (tsp.Options, error) {
	algo, err := tsp.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return tsp.Options{}, err
	}
	policy, err := tsp.ParseTwoOptPolicy(c.TwoOpt.Policy)
	if err != nil {
		return tsp.Options{}, err
	}

	return tsp.Options{
		Algo: algo,
		Seed: c.Seed,
		Budget: tsp.Budget{
			TimeLimit:     c.TimeLimit,
			MaxIterations: c.MaxIterations,
		},
		StopAtBestKnown: c.StopAtBestKnown,
		TwoOpt: tsp.TwoOptOptions{
			Policy:    policy,
			Eps:       c.TwoOpt.Eps,
			MaxPasses: c.TwoOpt.MaxPasses,
		},
		ACS: tsp.ACSParams{
			Ants:  c.ACS.Ants,
			Beta:  c.ACS.Beta,
			Q0:    c.ACS.Q0,
			Rho:   c.ACS.Rho,
			Alpha: c.ACS.Alpha,
		},
		ILS: tsp.ILSParams{
			CoolingRate: c.ILS.CoolingRate,
			TempScale:   c.ILS.TempScale,
			TempFactor:  c.ILS.TempFactor,
		},
	}, nil
}

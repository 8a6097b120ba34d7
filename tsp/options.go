// Package tsp - solver options, parameter defaults and their validation.
//
// Every tunable the metaheuristics read lives here. Zero values are not
// usable defaults for most knobs; start from DefaultOptions and override.
package tsp

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Defaults for the solver parameters.
const (
	DefaultEps         = 1e-9
	DefaultAnts        = 10
	DefaultBeta        = 2.0
	DefaultQ0          = 0.9
	DefaultRho         = 0.1
	DefaultAlpha       = 0.1
	DefaultCoolingRate = 0.98
	DefaultTempScale   = 100.0
	DefaultTempFactor  = 1.5
	DefaultTimeLimit   = 180 * time.Second
)

// TwoOptPolicy selects how many improving reversals a 2-opt pass applies.
type TwoOptPolicy int

const (
	// TwoOptPerIndex applies, for every outer index i, the best reversal
	// starting at i as soon as the inner scan finishes.
	TwoOptPerIndex TwoOptPolicy = iota
	// TwoOptBestOfPass applies only the single best reversal of the pass.
	TwoOptBestOfPass
)

func (p TwoOptPolicy) String() string {
	switch p {
	case TwoOptPerIndex:
		return "per-index"
	case TwoOptBestOfPass:
		return "best-of-pass"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseTwoOptPolicy maps "per-index"/"best-of-pass" to a TwoOptPolicy.
func ParseTwoOptPolicy(s string) (TwoOptPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per-index", "first":
		return TwoOptPerIndex, nil
	case "best-of-pass", "best":
		return TwoOptBestOfPass, nil
	default:
		return 0, fmt.Errorf("%w: two-opt policy %q", ErrInvalidParameter, s)
	}
}

// TwoOptOptions tunes the 2-opt local search.
type TwoOptOptions struct {
	// Policy chooses per-index or best-of-pass application.
	Policy TwoOptPolicy
	// Eps is the minimum gain for a reversal to count as improving.
	Eps float64
	// MaxPasses caps full passes; 0 runs to a local optimum.
	MaxPasses int
}

// ACSParams holds the Ant Colony System constants.
type ACSParams struct {
	Ants  int     // ants per iteration
	Beta  float64 // heuristic exponent in (1/d)^β
	Q0    float64 // exploitation threshold of the pseudorandom-proportional rule
	Rho   float64 // local pheromone decay
	Alpha float64 // global pheromone decay
}

// ILSParams holds the Iterated Local Search annealing constants.
type ILSParams struct {
	CoolingRate float64 // multiplicative temperature factor per iteration, in (0,1)
	TempScale   float64 // T0 = TempFactor · TempScale · cost(initial) / sqrt(n)
	TempFactor  float64
}

// Budget bounds the anytime loop. At least one field must be positive.
type Budget struct {
	// TimeLimit bounds the accumulated duration of completed iterations. No
	// iteration starts when the spent time plus the duration of the previous
	// iteration would reach it; 0 disables the time bound.
	TimeLimit time.Duration
	// MaxIterations caps completed iterations; 0 disables the cap.
	MaxIterations int
}

// Options configures Solve, RunACS and RunILS.
type Options struct {
	Algo   Algorithm
	Seed   int64 // 0 selects a fixed default stream
	Budget Budget

	// Clock measures iterations; nil means SystemClock.
	Clock Clock
	// Observer receives progress events; nil means NoopObserver.
	Observer Observer

	// StopAtBestKnown ends the run once the model's best-known length is matched.
	StopAtBestKnown bool

	TwoOpt TwoOptOptions
	ACS    ACSParams
	ILS    ILSParams
}

// DefaultOptions returns ACS with the classic parameters, a 180 s budget and
// per-index 2-opt.
func DefaultOptions() Options {
	return Options{
		Algo:            AntColony,
		Budget:          Budget{TimeLimit: DefaultTimeLimit},
		StopAtBestKnown: true,
		TwoOpt:          DefaultTwoOptOptions(),
		ACS:             DefaultACSParams(),
		ILS:             DefaultILSParams(),
	}
}

// DefaultTwoOptOptions returns per-index 2-opt to a local optimum.
func DefaultTwoOptOptions() TwoOptOptions {
	return TwoOptOptions{Policy: TwoOptPerIndex, Eps: DefaultEps}
}

// DefaultACSParams returns ants=10, β=2, q0=0.9, ρ=0.1, α=0.1.
func DefaultACSParams() ACSParams {
	return ACSParams{
		Ants:  DefaultAnts,
		Beta:  DefaultBeta,
		Q0:    DefaultQ0,
		Rho:   DefaultRho,
		Alpha: DefaultAlpha,
	}
}

// DefaultILSParams returns cooling 0.98 and T0 = 1.5·100·cost/sqrt(n).
func DefaultILSParams() ILSParams {
	return ILSParams{
		CoolingRate: DefaultCoolingRate,
		TempScale:   DefaultTempScale,
		TempFactor:  DefaultTempFactor,
	}
}

// Validate checks internal consistency of Options without looking at an instance.
//
// Complexity: O(1).
func (o Options) Validate() error {
	switch o.Algo {
	case AntColony:
		if err := o.ACS.validate(); err != nil {
			return err
		}
	case IteratedLocal:
		if err := o.ILS.validate(); err != nil {
			return err
		}
	default:
		return ErrUnsupportedAlgorithm
	}
	if err := o.Budget.validate(); err != nil {
		return err
	}

	return o.TwoOpt.validate()
}

func (b Budget) validate() error {
	if b.TimeLimit < 0 || b.MaxIterations < 0 {
		return fmt.Errorf("%w: negative budget", ErrInvalidParameter)
	}
	if b.TimeLimit == 0 && b.MaxIterations == 0 {
		return ErrNoBudget
	}

	return nil
}

func (o TwoOptOptions) validate() error {
	if o.Policy != TwoOptPerIndex && o.Policy != TwoOptBestOfPass {
		return fmt.Errorf("%w: two-opt policy %d", ErrInvalidParameter, int(o.Policy))
	}
	if o.Eps < 0 || math.IsNaN(o.Eps) {
		return fmt.Errorf("%w: two-opt eps must be >= 0", ErrInvalidParameter)
	}
	if o.MaxPasses < 0 {
		return fmt.Errorf("%w: two-opt max passes must be >= 0", ErrInvalidParameter)
	}

	return nil
}

func (p ACSParams) validate() error {
	switch {
	case p.Ants <= 0:
		return fmt.Errorf("%w: ants must be > 0", ErrInvalidParameter)
	case !(p.Beta >= 0) || math.IsInf(p.Beta, 0):
		return fmt.Errorf("%w: beta must be finite and >= 0", ErrInvalidParameter)
	case !inUnit(p.Q0):
		return fmt.Errorf("%w: q0 must be in [0,1]", ErrInvalidParameter)
	case !inUnit(p.Rho):
		return fmt.Errorf("%w: rho must be in [0,1]", ErrInvalidParameter)
	case !inUnit(p.Alpha):
		return fmt.Errorf("%w: alpha must be in [0,1]", ErrInvalidParameter)
	}

	return nil
}

func (p ILSParams) validate() error {
	switch {
	case !(p.CoolingRate > 0 && p.CoolingRate < 1):
		return fmt.Errorf("%w: cooling rate must be in (0,1)", ErrInvalidParameter)
	case !(p.TempScale > 0) || math.IsInf(p.TempScale, 0):
		return fmt.Errorf("%w: temperature scale must be > 0", ErrInvalidParameter)
	case !(p.TempFactor > 0) || math.IsInf(p.TempFactor, 0):
		return fmt.Errorf("%w: temperature factor must be > 0", ErrInvalidParameter)
	}

	return nil
}

// inUnit reports x ∈ [0,1]; NaN is rejected.
func inUnit(x float64) bool { return x >= 0 && x <= 1 }

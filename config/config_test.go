package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

func TestDefaultMatchesSolverDefaults(t *testing.T) {
	opts, err := Default().Options()
	require.NoError(t, err)

	want := tsp.DefaultOptions()
	require.Equal(t, want.Algo, opts.Algo)
	require.Equal(t, want.Budget, opts.Budget)
	require.Equal(t, want.ACS, opts.ACS)
	require.Equal(t, want.ILS, opts.ILS)
	require.Equal(t, want.TwoOpt, opts.TwoOpt)
	require.True(t, opts.StopAtBestKnown)
	require.NoError(t, Default().Validate())
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
algorithm: ils
seed: 7
time_limit: 30s
max_iterations: 500
ils:
  cooling_rate: 0.95
two_opt:
  policy: best-of-pass
bench:
  trials: 4
  parallel: 2
log:
  format: json
  level: debug
`))
	require.NoError(t, err)
	require.Equal(t, int64(7), cfg.Seed)
	require.Equal(t, 30*time.Second, cfg.TimeLimit)
	require.Equal(t, 4, cfg.Bench.Trials)

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, tsp.IteratedLocal, opts.Algo)
	require.Equal(t, 500, opts.Budget.MaxIterations)
	require.Equal(t, 0.95, opts.ILS.CoolingRate)
	require.Equal(t, tsp.DefaultTempScale, opts.ILS.TempScale)
	require.Equal(t, tsp.TwoOptBestOfPass, opts.TwoOpt.Policy)
	require.Equal(t, tsp.DefaultEps, opts.TwoOpt.Eps)
}

func TestDecodeEmptyIsDefault(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "algoritm: acs\n",
		"bad algorithm": "algorithm: genetic\n",
		"bad cooling":   "ils:\n  cooling_rate: 1.5\n",
		"no budget":     "time_limit: 0s\nmax_iterations: 0\n",
		"bad policy":    "two_opt:\n  policy: or-opt\n",
		"bad trials":    "bench:\n  trials: 0\n",
	}
	for name, doc := range cases {
		_, err := Decode(strings.NewReader(doc))
		require.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: acs\nacs:\n  ants: 20\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.ACS.Ants)
	require.Equal(t, tsp.DefaultQ0, cfg.ACS.Q0)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const squareTSP = `NAME: square
TYPE: TSP
DIMENSION: 4
EDGE_WEIGHT_TYPE: EUC_2D
BEST_KNOWN: 40
NODE_COORD_SECTION
1 0 0
2 10 0
3 10 10
4 0 10
`

func writeInstance(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSolveBenchRuns(t *testing.T) {
	dir := t.TempDir()
	inst := writeInstance(t, dir, "square.tsp", squareTSP)
	db := filepath.Join(dir, "history.db")
	budget := []string{"--time-limit", "0", "--max-iterations", "5", "--store", db}

	out, err := execute(t, append([]string{"solve", inst, "--tour", "--algo", "ils"}, budget...)...)
	require.NoError(t, err)
	require.Contains(t, out, "square")
	require.Contains(t, out, "ils")
	require.Regexp(t, `cost\s+40\n`, out)
	require.Contains(t, out, "gap 0.00%")
	require.Regexp(t, `tour\s+0 \d \d \d 0\n`, out)

	out, err = execute(t, append([]string{"bench", inst, "--trials", "2", "--parallel", "2"}, budget...)...)
	require.NoError(t, err)
	require.Contains(t, out, "INSTANCE")
	require.Contains(t, out, "average gap: 0.00%")

	out, err = execute(t, "runs", "--store", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "header plus three runs")

	out, err = execute(t, "runs", "square", "--best", "--algo", "ils", "--store", db)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "ils")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	inst := writeInstance(t, dir, "square.tsp", squareTSP)

	_, err := execute(t, "solve")
	require.Error(t, err)

	_, err = execute(t, "solve", filepath.Join(dir, "missing.tsp"))
	require.Error(t, err)

	_, err = execute(t, "solve", inst, "--algo", "simplex")
	require.Error(t, err)

	_, err = execute(t, "bench", inst, inst, "--max-iterations", "1")
	require.ErrorContains(t, err, "duplicate instance")

	_, err = execute(t, "runs")
	require.ErrorContains(t, err, "no run history")
}

func TestConfigFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	inst := writeInstance(t, dir, "square.tsp", squareTSP)
	cfg := writeInstance(t, dir, "run.yaml", "algorithm: ils\ntime_limit: 0s\nmax_iterations: 3\nlog:\n  level: debug\n")

	out, err := execute(t, "solve", inst, "--config", cfg)
	require.NoError(t, err)
	require.Regexp(t, `algorithm\s+ils`, out)

	out, err = execute(t, "solve", inst, "--config", cfg, "--algo", "acs")
	require.NoError(t, err)
	require.Regexp(t, `algorithm\s+acs`, out)
}

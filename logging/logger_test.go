package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	var buf bytes.Buffer
	l, err := Open(&buf, "json", "info")
	require.NoError(t, err)
	l.WithInstance("eil51").WithAlgorithm(tsp.IteratedLocal).Info("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "eil51", rec["instance"])
	require.Equal(t, "ils", rec["algo"])

	_, err = Open(&buf, "xml", "info")
	require.Error(t, err)
	_, err = Open(&buf, "text", "nope")
	require.Error(t, err)
}

func TestLogResult(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelInfo)

	l.LogResult(context.Background(), tsp.TSResult{Cost: 426, Iterations: 7, Stop: tsp.StopDeadline}, nil)
	require.Contains(t, buf.String(), "search completed")
	require.Contains(t, buf.String(), "stop=deadline")

	buf.Reset()
	l.LogResult(context.Background(), tsp.TSResult{}, errors.New("boom"))
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "boom")
}

func TestNoopDiscards(t *testing.T) {
	l := Noop()
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestProgressObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewProgressObserver(NewText(&buf, slog.LevelDebug), time.Hour)

	obs.OnImprovement(tsp.ImprovementEvent{Algo: tsp.AntColony, Iteration: 0, Cost: 500})
	for i := 1; i <= 50; i++ {
		obs.OnIteration(tsp.IterationEvent{Algo: tsp.IteratedLocal, Iteration: i, Temperature: 3})
	}
	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "msg=improved"))
	// One burst token, then throttled for an hour.
	require.Equal(t, 1, strings.Count(out, "msg=iteration"))
	require.Contains(t, out, "temperature=3")
}

func TestProgressObserver_InfoLevelSkipsIterations(t *testing.T) {
	var buf bytes.Buffer
	obs := NewProgressObserver(NewText(&buf, slog.LevelInfo), 0)
	for i := 1; i <= 5; i++ {
		obs.OnIteration(tsp.IterationEvent{Iteration: i})
	}
	require.Empty(t, buf.String())
}

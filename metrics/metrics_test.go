package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/matrix"
	"github.com/katalvlaran/metatsp/tsp"
)

func TestCollectorCountsEvents(t *testing.T) {
	c := NewCollector()
	for i := 1; i <= 3; i++ {
		c.OnIteration(tsp.IterationEvent{
			Algo:        tsp.IteratedLocal,
			Iteration:   i,
			BestCost:    100 - float64(i),
			Temperature: 10 / float64(i),
			Duration:    time.Millisecond,
		})
	}
	c.OnImprovement(tsp.ImprovementEvent{Algo: tsp.IteratedLocal, Cost: 90})

	require.Equal(t, 3.0, testutil.ToFloat64(c.iterations.WithLabelValues("ils")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.improvements.WithLabelValues("ils")))
	require.Equal(t, 90.0, testutil.ToFloat64(c.bestCost.WithLabelValues("", "ils")))
	require.InDelta(t, 10.0/3, testutil.ToFloat64(c.temperature.WithLabelValues("")), 1e-12)
}

func TestCollectorObserveRun(t *testing.T) {
	c := NewCollector()
	res := tsp.TSResult{Algo: tsp.AntColony, Stop: tsp.StopDeadline, Elapsed: time.Second}
	c.ObserveRun("eil51", res, nil, 2.5, true)
	c.ObserveRun("eil51", res, errors.New("boom"), 0, false)

	require.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("acs", "deadline", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("acs", "deadline", "error")))
	require.Equal(t, 2.5, testutil.ToFloat64(c.bestKnownGap.WithLabelValues("eil51", "acs")))
}

func TestCollectorAsSolverObserver(t *testing.T) {
	m, err := matrix.NewDenseFrom(4, 4, []float64{
		0, 1, 2, 1,
		1, 0, 1, 2,
		2, 1, 0, 1,
		1, 2, 1, 0,
	})
	require.NoError(t, err)
	in, err := tsp.NewInstance(m)
	require.NoError(t, err)

	c := NewCollector()
	opts := tsp.DefaultOptions()
	opts.Budget = tsp.Budget{MaxIterations: 4}
	opts.Observer = c
	_, err = tsp.Solve(context.Background(), in, opts)
	require.NoError(t, err)
	require.Equal(t, 4.0, testutil.ToFloat64(c.iterations.WithLabelValues("acs")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.ForInstance("eil51").OnIteration(tsp.IterationEvent{Algo: tsp.AntColony, Iteration: 1, BestCost: 42})

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `metatsp_best_cost{algo="acs",instance="eil51"} 42`)
	require.Contains(t, string(body), "metatsp_iterations_total")
}

func TestServerRoutesMetrics(t *testing.T) {
	c := NewCollector()
	srv := c.Server("127.0.0.1:0")
	require.Equal(t, "127.0.0.1:0", srv.Addr)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	resp, err = ts.Client().Get(ts.URL + "/other")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)
}

func TestForInstanceSeparatesConcurrentRuns(t *testing.T) {
	c := NewCollector()
	a, b := c.ForInstance("eil51"), c.ForInstance("berlin52")

	a.OnIteration(tsp.IterationEvent{Algo: tsp.IteratedLocal, Iteration: 1, BestCost: 430, Temperature: 5})
	b.OnIteration(tsp.IterationEvent{Algo: tsp.IteratedLocal, Iteration: 1, BestCost: 7600, Temperature: 9})
	a.OnImprovement(tsp.ImprovementEvent{Algo: tsp.IteratedLocal, Iteration: 2, Cost: 428})

	require.Equal(t, 428.0, testutil.ToFloat64(c.bestCost.WithLabelValues("eil51", "ils")))
	require.Equal(t, 7600.0, testutil.ToFloat64(c.bestCost.WithLabelValues("berlin52", "ils")))
	require.Equal(t, 5.0, testutil.ToFloat64(c.temperature.WithLabelValues("eil51")))
	require.Equal(t, 9.0, testutil.ToFloat64(c.temperature.WithLabelValues("berlin52")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.iterations.WithLabelValues("ils")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.improvements.WithLabelValues("ils")))
}

// Package tsp_test provides helpers shared across the *_test.go files of this
// package: instance generators, a fake clock and tour assertions.
package tsp_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/matrix"
	"github.com/katalvlaran/metatsp/tsp"
)

const (
	// epsCost is the tolerance between incrementally tracked and recomputed costs.
	epsCost = 1e-6

	// seedDet is the deterministic seed used by most tests.
	seedDet = int64(42)
)

// euclid builds a validated instance from 2D points with Euclidean distances.
func euclid(t *testing.T, pts [][2]float64, opts ...tsp.InstanceOption) *tsp.Instance {
	t.Helper()
	n := len(pts)
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)

	var (
		i, j   int
		dx, dy float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			dx = pts[i][0] - pts[j][0]
			dy = pts[i][1] - pts[j][1]
			require.NoError(t, m.SetSymmetric(i, j, math.Hypot(dx, dy)))
		}
	}
	in, err := tsp.NewInstance(m, opts...)
	require.NoError(t, err)

	return in
}

// unitSquare is the 4-city instance (0,0)-(1,0)-(1,1)-(0,1); optimum is 4.
func unitSquare(t *testing.T, opts ...tsp.InstanceOption) *tsp.Instance {
	t.Helper()

	return euclid(t, [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, opts...)
}

// circle places n points on a circle of radius r in angular order; the
// optimal tour visits them in index order.
func circle(t *testing.T, n int, r float64) *tsp.Instance {
	t.Helper()
	pts := make([][2]float64, n)
	var (
		i   int
		phi float64
	)
	for i = 0; i < n; i++ {
		phi = 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float64{r * math.Cos(phi), r * math.Sin(phi)}
	}

	return euclid(t, pts)
}

// randomPoints scatters n points uniformly in [0,100)² with a fixed seed.
func randomPoints(t *testing.T, n int, seed int64) *tsp.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.Float64() * 100, rng.Float64() * 100}
	}

	return euclid(t, pts)
}

// identityTour returns [0,1,...,n-1,0].
func identityTour(n int) []int {
	tour := make([]int, n+1)
	for i := 0; i < n; i++ {
		tour[i] = i
	}

	return tour
}

// requireValidTour checks that tour is a closed permutation of [0,n).
func requireValidTour(t *testing.T, tour []int, n int) {
	t.Helper()
	require.NoError(t, tsp.ValidateTour(tour, n), "tour %v", tour)
}

// requireCost checks that got matches the evaluator's cost of tour.
func requireCost(t *testing.T, dm tsp.DistanceModel, tour []int, got float64) {
	t.Helper()
	want, err := tsp.TourCost(dm, tour)
	require.NoError(t, err)
	require.InDelta(t, want, got, epsCost)
}

// fakeClock advances by step on every Now call.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Unix(0, 0), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)

	return c.now
}

// recorder is an Observer that keeps every event.
type recorder struct {
	iterations   []tsp.IterationEvent
	improvements []tsp.ImprovementEvent
}

func (r *recorder) OnIteration(ev tsp.IterationEvent) { r.iterations = append(r.iterations, ev) }

func (r *recorder) OnImprovement(ev tsp.ImprovementEvent) {
	ev.Tour = tsp.CopyTour(ev.Tour)
	r.improvements = append(r.improvements, ev)
}

// iterOptions returns default options for algo with a pure iteration budget.
func iterOptions(algo tsp.Algorithm, iters int) tsp.Options {
	opts := tsp.DefaultOptions()
	opts.Algo = algo
	opts.Seed = seedDet
	opts.Budget = tsp.Budget{MaxIterations: iters}

	return opts
}

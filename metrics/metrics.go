// Package metrics exports solver progress to Prometheus.
//
// Collector implements tsp.Observer and keeps its own registry, so several
// collectors (for example one per test) never collide on the global default
// registry. Per-run gauges carry an instance label; use ForInstance to set it.
// Parallel trials of the same instance share one series and the gauge holds
// whichever trial reported last.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/metatsp/tsp"
)

// Collector records iterations, improvements and finished runs.
type Collector struct {
	registry *prometheus.Registry

	iterations   *prometheus.CounterVec
	iterLatency  *prometheus.HistogramVec
	improvements *prometheus.CounterVec
	bestCost     *prometheus.GaugeVec
	temperature  *prometheus.GaugeVec
	runs         *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	bestKnownGap *prometheus.GaugeVec
}

var _ tsp.Observer = (*Collector)(nil)

// NewCollector creates a Collector with every metric registered on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metatsp_iterations_total",
			Help: "Completed outer-loop iterations",
		}, []string{"algo"}),
		iterLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "metatsp_iteration_duration_seconds",
			Help:    "Measured duration of one outer-loop iteration",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"algo"}),
		improvements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metatsp_improvements_total",
			Help: "Times the best tour got shorter",
		}, []string{"algo"}),
		bestCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "metatsp_best_cost",
			Help: "Cost of the best tour of the current run",
		}, []string{"instance", "algo"}),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "metatsp_ils_temperature",
			Help: "Current annealing temperature of the ILS run",
		}, []string{"instance"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metatsp_runs_total",
			Help: "Finished solver runs",
		}, []string{"algo", "stop", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "metatsp_run_duration_seconds",
			Help:    "Search time spent per run",
			Buckets: prometheus.DefBuckets,
		}, []string{"algo"}),
		bestKnownGap: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "metatsp_best_known_gap_percent",
			Help: "Excess of the last result over the best-known length",
		}, []string{"instance", "algo"}),
	}
	c.registry.MustRegister(
		c.iterations,
		c.iterLatency,
		c.improvements,
		c.bestCost,
		c.temperature,
		c.runs,
		c.runDuration,
		c.bestKnownGap,
	)
	return c
}

// Registry returns the private registry, e.g. for tests or custom exposition.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// OnIteration implements tsp.Observer with an empty instance label.
func (c *Collector) OnIteration(ev tsp.IterationEvent) { c.onIteration("", ev) }

// OnImprovement implements tsp.Observer with an empty instance label.
func (c *Collector) OnImprovement(ev tsp.ImprovementEvent) { c.onImprovement("", ev) }

// ForInstance returns an observer that records into c with the instance label set.
func (c *Collector) ForInstance(instance string) tsp.Observer {
	return instanceObserver{c: c, instance: instance}
}

type instanceObserver struct {
	c        *Collector
	instance string
}

func (o instanceObserver) OnIteration(ev tsp.IterationEvent)     { o.c.onIteration(o.instance, ev) }
func (o instanceObserver) OnImprovement(ev tsp.ImprovementEvent) { o.c.onImprovement(o.instance, ev) }

func (c *Collector) onIteration(instance string, ev tsp.IterationEvent) {
	algo := ev.Algo.String()
	c.iterations.WithLabelValues(algo).Inc()
	c.iterLatency.WithLabelValues(algo).Observe(ev.Duration.Seconds())
	c.bestCost.WithLabelValues(instance, algo).Set(ev.BestCost)
	if ev.Algo == tsp.IteratedLocal {
		c.temperature.WithLabelValues(instance).Set(ev.Temperature)
	}
}

func (c *Collector) onImprovement(instance string, ev tsp.ImprovementEvent) {
	algo := ev.Algo.String()
	c.improvements.WithLabelValues(algo).Inc()
	c.bestCost.WithLabelValues(instance, algo).Set(ev.Cost)
}

// ObserveRun records a finished run. gap is the best-known gap in percent and
// is recorded only when hasGap is set.
func (c *Collector) ObserveRun(instance string, res tsp.TSResult, err error, gap float64, hasGap bool) {
	status := "success"
	if err != nil {
		status = "error"
	}
	algo := res.Algo.String()
	c.runs.WithLabelValues(algo, res.Stop.String(), status).Inc()
	c.runDuration.WithLabelValues(algo).Observe(res.Elapsed.Seconds())
	if hasGap {
		c.bestKnownGap.WithLabelValues(instance, algo).Set(gap)
	}
}

// Server returns an HTTP server exposing Handler on addr under /metrics.
func (c *Collector) Server(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

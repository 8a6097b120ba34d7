package logging

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/katalvlaran/metatsp/tsp"
)

// DefaultProgressInterval is the minimum spacing of iteration log lines.
const DefaultProgressInterval = time.Second

// ProgressObserver logs improvements at Info and iterations at Debug.
// Iteration lines are throttled so long runs do not flood the log.
type ProgressObserver struct {
	log     *Logger
	limiter *rate.Limiter
}

var _ tsp.Observer = (*ProgressObserver)(nil)

// NewProgressObserver logs through l with at most one iteration line per every.
// A non-positive every logs every iteration.
func NewProgressObserver(l *Logger, every time.Duration) *ProgressObserver {
	limit := rate.Inf
	if every > 0 {
		limit = rate.Every(every)
	}
	return &ProgressObserver{
		log:     l,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// OnIteration implements tsp.Observer.
func (p *ProgressObserver) OnIteration(ev tsp.IterationEvent) {
	ctx := context.Background()
	if !p.log.Enabled(ctx, slog.LevelDebug) || !p.limiter.Allow() {
		return
	}
	attrs := []any{
		"algo", ev.Algo.String(),
		"iteration", ev.Iteration,
		"best", ev.BestCost,
		"current", ev.CurrentCost,
		"took", ev.Duration,
		"elapsed", ev.Elapsed,
	}
	if ev.Algo == tsp.IteratedLocal {
		attrs = append(attrs, "temperature", ev.Temperature)
	}
	p.log.DebugContext(ctx, "iteration", attrs...)
}

// OnImprovement implements tsp.Observer.
func (p *ProgressObserver) OnImprovement(ev tsp.ImprovementEvent) {
	p.log.Info("improved",
		"algo", ev.Algo.String(),
		"iteration", ev.Iteration,
		"cost", ev.Cost,
		"elapsed", ev.Elapsed,
	)
}

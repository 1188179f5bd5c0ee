// Package panel implements the four panel controllers. Each controller
// exclusively owns one bounded buffer or registry, funnels every mutation
// through the validate package, recomputes derived aggregates on demand,
// and fires a render callback after successful mutations. Rendering itself
// happens outside this package.
package panel

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/history"
	"github.com/devhud/devhud/internal/models"
	"github.com/devhud/devhud/internal/stats"
	"github.com/devhud/devhud/internal/validate"
)

// Metrics is the performance-graph controller. It owns a bounded FIFO
// window of samples shared across categories; per-category series are
// derived at query time.
type Metrics struct {
	mu     sync.Mutex
	buf    *history.Ring[models.PerformanceMetric]
	window time.Duration
	now    func() time.Time
	logger *zap.Logger

	onRender func()
}

// NewMetrics creates a metrics controller with the given buffer capacity
// and recency window.
func NewMetrics(capacity int, window time.Duration, logger *zap.Logger) *Metrics {
	return &Metrics{
		buf:    history.NewRing[models.PerformanceMetric](capacity),
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// OnRender sets the callback fired after each accepted sample.
func (p *Metrics) OnRender(fn func()) { p.onRender = fn }

// SetClock overrides the time source. Tests use this to simulate skewed or
// queued producers.
func (p *Metrics) SetClock(now func() time.Time) { p.now = now }

// Add stamps the sample with the current instant and records it. A sample
// already stale under the recency window at acceptance time is rejected
// with a ValidationError. After insertion the just-written entry is
// re-verified; a mismatch means the eviction ordering is broken and is
// reported as a fatal InvariantViolation.
func (p *Metrics) Add(value float64, category string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	m := models.PerformanceMetric{Timestamp: now, Value: value, Category: category}
	if err := validate.Metric(m, p.now(), p.window); err != nil {
		return err
	}

	evicted := p.buf.Push(m)
	last, ok := p.buf.Last()
	if !ok || last.Value != value || last.Category != category {
		return &history.InvariantViolation{
			Check:  "metric-post-insert",
			Detail: "just-inserted sample missing or altered at buffer tail",
		}
	}
	if evicted {
		p.logger.Debug("Evicted oldest metric", zap.String("category", category))
	}

	p.render()
	return nil
}

// Metrics returns the current window contents in insertion order.
func (p *Metrics) Metrics() []models.PerformanceMetric {
	return p.buf.Snapshot()
}

// Series derives the per-category series for graphing from the live buffer.
func (p *Metrics) Series() map[string][]models.PerformanceMetric {
	return stats.SeriesByCategory(p.buf.Snapshot())
}

// Latest returns the most recently accepted sample, if any.
func (p *Metrics) Latest() (models.PerformanceMetric, bool) {
	return p.buf.Last()
}

// Clear empties the metric window. Idempotent.
func (p *Metrics) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf.Clear()
	p.render()
}

func (p *Metrics) render() {
	if p.onRender != nil {
		p.onRender()
	}
}

package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// Metrics is the snapshot Logging.TakeMetrics returns — the run's own
// running counters, for a caller that wants them attached to its result
// without scraping Prometheus.
type Metrics struct {
	Generations          int
	ImprovedGenerations   int
	StagnatedGenerations  int
	TotalGenerationTime   time.Duration
	LastTerminationEstimate float64
}

// Logging is an evolution.Telemetry sink that writes human-readable lines
// via the standard library log package rather than a structured logger —
// with counts rendered through go-humanize and durations through
// time.Duration's own formatting.
type Logging[S heuristic.Solution[S]] struct {
	mu      sync.Mutex
	metrics Metrics
}

// NewLogging returns a ready-to-use Logging sink.
func NewLogging[S heuristic.Solution[S]]() *Logging[S] {
	return &Logging[S]{}
}

// OnInitial implements evolution.Telemetry.
func (l *Logging[S]) OnInitial(ctx heuristic.Context[S]) {
	size := ctx.Population().Size()
	log.Printf("[evolution] seeded initial population: %s solutions", humanize.Comma(int64(size)))
}

// OnGeneration implements evolution.Telemetry.
func (l *Logging[S]) OnGeneration(ctx heuristic.Context[S], estimate float64, elapsedMs int64, improved bool) {
	l.mu.Lock()
	l.metrics.Generations++
	if improved {
		l.metrics.ImprovedGenerations++
	} else {
		l.metrics.StagnatedGenerations++
	}
	l.metrics.TotalGenerationTime += time.Duration(elapsedMs) * time.Millisecond
	l.metrics.LastTerminationEstimate = estimate
	l.mu.Unlock()

	log.Printf("[evolution] generation %s complete in %s, progress %.0f%%, improved=%v",
		humanize.Comma(int64(ctx.Statistics().Generation)),
		time.Duration(elapsedMs)*time.Millisecond,
		estimate*100,
		improved,
	)
}

// OnResult implements evolution.Telemetry.
func (l *Logging[S]) OnResult(ctx heuristic.Context[S]) {
	l.mu.Lock()
	m := l.metrics
	l.mu.Unlock()

	log.Printf("[evolution] run finished after %s generations (%s improved, %s stagnated), total search time %s",
		humanize.Comma(int64(m.Generations)),
		humanize.Comma(int64(m.ImprovedGenerations)),
		humanize.Comma(int64(m.StagnatedGenerations)),
		m.TotalGenerationTime,
	)
}

// TakeMetrics implements evolution.Telemetry, returning a snapshot of the
// counters accumulated across the run.
func (l *Logging[S]) TakeMetrics() any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metrics
}

// Log implements evolution.Telemetry, correlating the line to runID the way
// observability.go's spans correlate to a trace ID.
func (l *Logging[S]) Log(runID string, msg string) {
	log.Printf("[evolution][%s] %s", runID, msg)
}

// Package telemetry provides evolution.Telemetry sinks: a Prometheus-backed
// collector for scraping and a logging collector for humans.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// Prometheus is an evolution.Telemetry sink that exports generation,
// improvement, and stagnation counts, the latest termination estimate, and
// a generation-duration histogram — mirroring observability.go's
// SchedulerQueueDepth/SchedulerTasksStolen style of one gauge/counter per
// concern rather than a single catch-all metric.
type Prometheus[S heuristic.Solution[S]] struct {
	generations          prometheus.Counter
	improvedGenerations  prometheus.Counter
	stagnatedGenerations prometheus.Counter
	terminationEstimate  prometheus.Gauge
	generationDuration   prometheus.Histogram
}

// NewPrometheus registers and returns a Prometheus telemetry sink, namespaced
// "hyperevo"/"evolution".
func NewPrometheus[S heuristic.Solution[S]]() *Prometheus[S] {
	return &Prometheus[S]{
		generations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "hyperevo",
			Subsystem: "evolution",
			Name:      "generations_total",
			Help:      "Total generations executed.",
		}),
		improvedGenerations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "hyperevo",
			Subsystem: "evolution",
			Name:      "generations_improved_total",
			Help:      "Total generations in which the population improved.",
		}),
		stagnatedGenerations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "hyperevo",
			Subsystem: "evolution",
			Name:      "generations_stagnated_total",
			Help:      "Total generations in which the population did not improve.",
		}),
		terminationEstimate: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hyperevo",
			Subsystem: "evolution",
			Name:      "termination_estimate",
			Help:      "Most recent termination progress estimate, in [0,1].",
		}),
		generationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hyperevo",
			Subsystem: "evolution",
			Name:      "generation_duration_ms",
			Help:      "Wall-clock duration of a single generation, in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
	}
}

// OnInitial implements evolution.Telemetry. A seeding phase that produced
// a solution reaches the counters through OnGeneration, so there is
// nothing to record here.
func (p *Prometheus[S]) OnInitial(ctx heuristic.Context[S]) {}

// OnGeneration implements evolution.Telemetry.
func (p *Prometheus[S]) OnGeneration(ctx heuristic.Context[S], estimate float64, elapsedMs int64, improved bool) {
	p.generations.Inc()
	if improved {
		p.improvedGenerations.Inc()
	} else {
		p.stagnatedGenerations.Inc()
	}
	p.terminationEstimate.Set(estimate)
	p.generationDuration.Observe(float64(elapsedMs))
}

// OnResult implements evolution.Telemetry. The terminal snapshot is already
// reflected in the running counters/gauges; there's nothing further to
// record here.
func (p *Prometheus[S]) OnResult(ctx heuristic.Context[S]) {}

// TakeMetrics implements evolution.Telemetry. Prometheus metrics are
// scraped, not returned inline, so there is nothing to hand back.
func (p *Prometheus[S]) TakeMetrics() any { return nil }

// Log implements evolution.Telemetry. The Prometheus sink doesn't log;
// pair it with Logging via a Multi sink if both are wanted.
func (p *Prometheus[S]) Log(runID string, msg string) {}

package telemetry

import "github.com/tutu-network/hyperevo/internal/heuristic"

// sink is the subset of evolution.Telemetry Multi fans out to — kept
// unexported and structurally identical to evolution.Telemetry so this
// package does not need to import evolution.
type sink[S heuristic.Solution[S]] interface {
	OnInitial(ctx heuristic.Context[S])
	OnGeneration(ctx heuristic.Context[S], estimate float64, elapsedMs int64, improved bool)
	OnResult(ctx heuristic.Context[S])
	TakeMetrics() any
	Log(runID string, msg string)
}

// Multi fans out to several sinks, e.g. Logging for operators tailing a
// console and Prometheus for scraping — the common "log and export" pairing
// the CLI wires by default.
type Multi[S heuristic.Solution[S]] struct {
	sinks []sink[S]
}

// NewMulti combines the given sinks into one.
func NewMulti[S heuristic.Solution[S]](sinks ...sink[S]) *Multi[S] {
	return &Multi[S]{sinks: sinks}
}

func (m *Multi[S]) OnInitial(ctx heuristic.Context[S]) {
	for _, s := range m.sinks {
		s.OnInitial(ctx)
	}
}

func (m *Multi[S]) OnGeneration(ctx heuristic.Context[S], estimate float64, elapsedMs int64, improved bool) {
	for _, s := range m.sinks {
		s.OnGeneration(ctx, estimate, elapsedMs, improved)
	}
}

func (m *Multi[S]) OnResult(ctx heuristic.Context[S]) {
	for _, s := range m.sinks {
		s.OnResult(ctx)
	}
}

// TakeMetrics returns the first non-nil metrics snapshot among the sinks.
func (m *Multi[S]) TakeMetrics() any {
	for _, s := range m.sinks {
		if metrics := s.TakeMetrics(); metrics != nil {
			return metrics
		}
	}
	return nil
}

func (m *Multi[S]) Log(runID string, msg string) {
	for _, s := range m.sinks {
		s.Log(runID, msg)
	}
}

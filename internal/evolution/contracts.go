// Package evolution implements the outer loop: seed an initial population,
// advance generations by dispatching parents through a hyper-heuristic,
// apply termination and quota checks, and return the best ranked solutions.
// It depends on internal/heuristic for the dispatcher and capability types
// but never implements a concrete solution, population, or operator itself —
// those are supplied by the caller, per spec.md §6.
package evolution

import (
	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// InitialOperator constructs a brand-new solution from scratch (as opposed
// to heuristic.Operator, which perturbs an existing one) — used only during
// the seeding phase.
type InitialOperator[S heuristic.Solution[S]] interface {
	Create(ctx heuristic.Context[S]) S
}

// WeightedInitialOperator pairs an InitialOperator with a sampling weight
// used once the deterministic one-of-each pass over Config.Initial.Operators
// is exhausted.
type WeightedInitialOperator[S heuristic.Solution[S]] struct {
	Operator InitialOperator[S]
	Weight   float64
}

// Telemetry observes the run without influencing it. Implementations never
// block the loop for long — internal/telemetry ships a logging sink and a
// Prometheus-backed sink, both cheap to call every generation.
type Telemetry[S heuristic.Solution[S]] interface {
	// OnInitial reports that the seeding phase has finished. Run calls it
	// once per run, whether or not seeding produced a solution; a seeding
	// phase that did produce one is also reported through OnGeneration with
	// improved=true.
	OnInitial(ctx heuristic.Context[S])
	// OnGeneration reports the outcome of one generation loop iteration:
	// the freshest termination estimate, how long the generation took, and
	// whether the population improved.
	OnGeneration(ctx heuristic.Context[S], estimate float64, elapsedMs int64, improved bool)
	// OnResult reports the terminal state of a run, once, after the
	// generation loop exits.
	OnResult(ctx heuristic.Context[S])
	// TakeMetrics returns an opaque metrics snapshot for the caller to
	// attach to its own result, or nil if the sink tracks none.
	TakeMetrics() any
	// Log emits a free-form operational message, correlated to runID.
	Log(runID string, msg string)
}

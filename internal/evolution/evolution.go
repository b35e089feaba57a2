package evolution

import (
	"time"

	"github.com/google/uuid"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// Simulator drives the outer generation loop described in spec.md §4.F: it
// owns nothing mutable beyond its Config — all state lives in the
// caller-supplied population, context, and telemetry sink.
type Simulator[S heuristic.Solution[S]] struct {
	config Config[S]
}

// NewSimulator validates config and returns a ready-to-run Simulator, or a
// *ConfigError if a fatal precondition fails (spec.md §4.F / §7).
func NewSimulator[S heuristic.Solution[S]](config Config[S]) (*Simulator[S], error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Simulator[S]{config: config}, nil
}

// RunSimple is the convenience entry point for callers that don't need the
// telemetry metrics snapshot — it runs a Simulator and discards
// TakeMetrics' result.
func RunSimple[S heuristic.Solution[S]](config Config[S]) ([]S, error) {
	solutions, _, err := Run(config)
	return solutions, err
}

// Run validates config, builds a Simulator, and executes it to completion.
func Run[S heuristic.Solution[S]](config Config[S]) ([]S, any, error) {
	sim, err := NewSimulator(config)
	if err != nil {
		return nil, nil, err
	}
	return sim.Run()
}

// Run executes the full seed → fill → generation-loop → extract sequence
// described in spec.md §4.F, steps 1-6.
func (sim *Simulator[S]) Run() ([]S, any, error) {
	cfg := sim.config
	runID := uuid.NewString()
	quota := cfg.Environment.Quota

	pop := cfg.Population

	// Step 1: seed from supplied.
	seedStart := time.Now()
	n := len(cfg.Initial.Individuals)
	if cfg.Initial.MaxSize < n {
		n = cfg.Initial.MaxSize
	}
	for _, s := range cfg.Initial.Individuals[:n] {
		if shouldAddSolution(pop, quota) {
			pop.Add(s)
		}
	}

	// Step 2: build context.
	ctx := cfg.ContextFactory(pop)

	// Step 3: fill remainder.
	seeded := sim.fillRemainder(ctx, pop, quota)

	// Step 4: if at least one solution was produced, fire one on_generation
	// with is_improved = true, then notify the population the same way the
	// generation loop does, so a Population's per-generation housekeeping
	// (e.g. a niching/map-based container) also runs for the seeding step.
	cfg.Telemetry.OnInitial(ctx)
	if seeded {
		estimate := cfg.Termination.Estimate(ctx)
		elapsedMs := time.Since(seedStart).Milliseconds()
		cfg.Telemetry.OnGeneration(ctx, estimate, elapsedMs, true)
		pop.OnGeneration(ctx.Statistics())
	}
	cfg.Telemetry.Log(runID, "seeding complete")

	// Step 5: generation loop.
	for !cfg.Termination.IsTermination(ctx) && !quotaReached(quota) {
		start := time.Now()

		parents := pop.Select()
		offspring := cfg.Heuristic.Search(ctx, parents)

		var improved bool
		if shouldAddSolution(pop, quota) {
			improved = pop.AddAll(offspring)
		}

		estimate := cfg.Termination.Estimate(ctx)
		elapsedMs := time.Since(start).Milliseconds()
		cfg.Telemetry.OnGeneration(ctx, estimate, elapsedMs, improved)
		pop.OnGeneration(ctx.Statistics())
	}

	// Step 6: finalize.
	cfg.Telemetry.OnResult(ctx)

	desired := cfg.DesiredAmount
	solutions := make([]S, 0, desired)
	for s := range pop.Ranked() {
		if len(solutions) >= desired {
			break
		}
		solutions = append(solutions, s.DeepCopy())
	}

	return solutions, cfg.Telemetry.TakeMetrics(), nil
}

// fillRemainder implements spec.md §4.F step 3 and SPEC_FULL.md §7.3: the
// first len(operators) solutions each use one distinct operator by index
// before falling back to weighted sampling. Returns whether at least one
// solution was added.
func (sim *Simulator[S]) fillRemainder(ctx heuristic.Context[S], pop heuristic.Population[S], quota heuristic.Quota) bool {
	cfg := sim.config
	operators := cfg.Initial.Operators
	weights := make([]float64, len(operators))
	for i, op := range operators {
		weights[i] = op.Weight
	}

	produced := false
	built := 0
	for pop.Size() < cfg.Initial.MaxSize {
		if cfg.Termination.IsTermination(ctx) || cfg.Termination.Estimate(ctx) > cfg.Initial.Quota {
			break
		}

		var op InitialOperator[S]
		if built < len(operators) {
			op = operators[built].Operator
		} else {
			idx := ctx.Environment().Random.Weighted(weights)
			op = operators[idx].Operator
		}
		built++

		solution := op.Create(ctx)
		if shouldAddSolution(pop, quota) {
			pop.Add(solution)
			produced = true
		}
	}
	return produced
}

// shouldAddSolution implements SPEC_FULL.md §7.2: an add is allowed when
// the population is still empty, or the external quota hasn't fired —
// seeding and generation growth must never stall forever just because a
// quota fired before anything was ever added.
func shouldAddSolution[S heuristic.Solution[S]](pop heuristic.Population[S], quota heuristic.Quota) bool {
	if quota == nil {
		return true
	}
	return pop.Size() == 0 || !quota.IsReached()
}

func quotaReached(quota heuristic.Quota) bool {
	return quota != nil && quota.IsReached()
}

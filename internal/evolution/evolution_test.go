package evolution

import (
	"testing"

	"github.com/tutu-network/hyperevo/internal/heuristic"
	"github.com/tutu-network/hyperevo/internal/quota"
)

type terminationAfterN struct{ max int }

func (t terminationAfterN) IsTermination(ctx heuristic.Context[numSolution]) bool {
	return ctx.Statistics().Generation >= t.max
}

func (t terminationAfterN) Estimate(ctx heuristic.Context[numSolution]) float64 {
	if t.max <= 0 {
		return 1
	}
	ratio := float64(ctx.Statistics().Generation) / float64(t.max)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// terminationAfterCalls reports false from IsTermination for a fixed number
// of calls, then true forever after — used to let fillRemainder run for a
// known number of iterations while keeping the generation loop from
// executing afterward.
type terminationAfterCalls struct{ remaining *int }

func (t terminationAfterCalls) IsTermination(ctx heuristic.Context[numSolution]) bool {
	if *t.remaining <= 0 {
		return true
	}
	*t.remaining--
	return false
}

func (t terminationAfterCalls) Estimate(heuristic.Context[numSolution]) float64 { return 0.1 }

func baseConfig(objective heuristic.Objective[numSolution], pop heuristic.Population[numSolution], ctx *fakeContext, termination heuristic.Termination[numSolution], h heuristic.HyperHeuristic[numSolution], telemetry Telemetry[numSolution]) Config[numSolution] {
	return Config[numSolution]{
		Initial: InitialConfig[numSolution]{
			Individuals: []numSolution{{value: 10}},
			MaxSize:     1,
			Operators:   []WeightedInitialOperator[numSolution]{{Operator: fixedInitialOperator{value: 10}, Weight: 1}},
			Quota:       1.0,
		},
		Population:  pop,
		Termination: termination,
		Heuristic:   h,
		Telemetry:   telemetry,
		Environment: heuristic.Environment{Random: fakeRandom{}, Parallelism: 1},
		ContextFactory: func(heuristic.Population[numSolution]) heuristic.Context[numSolution] {
			return ctx
		},
		DesiredAmount: 5,
	}
}

// TestEmptyInitialOperatorsIsConfigError covers scenario S4: zero initial
// operators must fail fast, before a single generation executes.
func TestEmptyInitialOperatorsIsConfigError(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	cfg := baseConfig(objective, pop, ctx, terminationAfterN{max: 5}, fixedHeuristic{operator: shrinkOperator{factor: 0.9}}, tel)
	cfg.Initial.Operators = nil

	_, _, err := Run(cfg)
	if err == nil {
		t.Fatal("Run() with empty initial operators should return an error")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("Run() error type = %T, want *ConfigError", err)
	}

	if initial, gen, _, _ := tel.snapshot(); initial != 0 || gen != 0 {
		t.Errorf("telemetry received OnInitial=%d OnGeneration=%d, want 0 and 0", initial, gen)
	}
}

// TestNonPositiveMaxSizeIsConfigError covers the other fatal precondition
// from spec.md §7.
func TestNonPositiveMaxSizeIsConfigError(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	cfg := baseConfig(objective, pop, ctx, terminationAfterN{max: 5}, fixedHeuristic{operator: shrinkOperator{factor: 0.9}}, tel)
	cfg.Initial.MaxSize = 0

	if _, _, err := Run(cfg); err == nil {
		t.Fatal("Run() with MaxSize=0 should return an error")
	}
}

// TestRunConvergesWithDeterministicShrink mirrors scenario S1: a single
// operator that shrinks the value toward zero, over several generations,
// should strictly improve the best solution each time it runs.
func TestRunConvergesWithDeterministicShrink(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	h := fixedHeuristic{operator: shrinkOperator{factor: 0.5}, onSearch: ctx.advance}
	cfg := baseConfig(objective, pop, ctx, terminationAfterN{max: 5}, h, tel)

	solutions, _, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(solutions) == 0 {
		t.Fatal("Run() returned no solutions")
	}
	// Starting from 10, halved 5 times: 10 * 0.5^5 = 0.3125.
	if got := solutions[0].value; got > 0.5 || got < 0 {
		t.Errorf("best solution = %v, want roughly 0.3125 after 5 halvings", got)
	}

	if initial, gen, result, _ := tel.snapshot(); initial != 1 || gen != 5 || result != 1 {
		t.Errorf("telemetry hits = (initial=%d, gen=%d, result=%d), want (1,5,1)", initial, gen, result)
	}
}

// TestSeedingFiresOnGeneration covers spec.md §4.F step 4: when
// fillRemainder actually produces a solution, the seeding phase must fire
// one on_generation (is_improved=true) and notify the population's
// OnGeneration hook, exactly like a real generation-loop iteration does.
func TestSeedingFiresOnGeneration(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	remaining := 2
	cfg := baseConfig(objective, pop, ctx, terminationAfterCalls{remaining: &remaining}, fixedHeuristic{operator: shrinkOperator{factor: 1}}, tel)
	cfg.Initial.Individuals = nil
	cfg.Initial.MaxSize = 2

	if _, _, err := Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if initial, gen, _, improved := tel.snapshot(); initial != 1 || gen != 1 || improved != 1 {
		t.Errorf("telemetry hits after seeding = (initial=%d, gen=%d, improved=%d), want (1,1,1)", initial, gen, improved)
	}
}

// TestRunStopsMidGenerationOnQuota mirrors scenario S5: the quota flips
// after 3 generations, and the run finishes the in-flight generation (the
// loop condition is only checked at the top of the next iteration) before
// stopping.
func TestRunStopsMidGenerationOnQuota(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	q := &quota.Manual{}
	h := fixedHeuristic{
		operator: shrinkOperator{factor: 0.9},
		onSearch: func() {
			ctx.advance()
			if ctx.Statistics().Generation >= 3 {
				q.Reach()
			}
		},
	}

	cfg := baseConfig(objective, pop, ctx, terminationAfterN{max: 1000}, h, tel)
	cfg.Environment.Quota = q

	_, _, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, gen, _, _ := tel.snapshot(); gen != 3 {
		t.Errorf("OnGeneration hits = %d, want exactly 3 (quota flips during the 3rd)", gen)
	}
}

// TestRunRespectsSizeBound covers invariant 2: seeding never grows the
// population past MaxSize.
func TestRunRespectsSizeBound(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	cfg := baseConfig(objective, pop, ctx, terminationAfterN{max: 0}, fixedHeuristic{operator: shrinkOperator{factor: 1}}, tel)
	cfg.Initial.MaxSize = 3
	cfg.Initial.Individuals = []numSolution{{value: 1}, {value: 2}, {value: 3}, {value: 4}, {value: 5}}

	if _, _, err := Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if pop.Size() > cfg.Initial.MaxSize {
		t.Errorf("population size = %d, want <= %d", pop.Size(), cfg.Initial.MaxSize)
	}
}

// TestRunRankingNeverWorsensOnImprovement covers invariant 3: whenever
// AddAll reports improvement, the ranked-best element doesn't get worse.
func TestRunRankingNeverWorsensOnImprovement(t *testing.T) {
	objective := minimizeObjective{}
	pop := newSlicePopulation(objective)
	pop.Add(numSolution{value: 10})
	ctx := &fakeContext{objective: objective, pop: pop}
	tel := &countingTelemetry{}

	var lastBest float64 = 10
	h := fixedHeuristic{
		operator: shrinkOperator{factor: 0.5},
		onSearch: func() {
			ctx.advance()
		},
	}

	cfg := baseConfig(objective, pop, ctx, terminationAfterN{max: 4}, h, tel)
	cfg.Initial.Individuals = nil
	cfg.Initial.MaxSize = 1

	if _, _, err := Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for s := range pop.Ranked() {
		if s.value > lastBest {
			t.Errorf("ranked best %v worse than prior best %v", s.value, lastBest)
		}
		break
	}
}

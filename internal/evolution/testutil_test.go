package evolution

import (
	"iter"
	"sync"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

type numSolution struct{ value float64 }

func (s numSolution) DeepCopy() numSolution { return numSolution{value: s.value} }

type identityFitness struct{}

func (identityFitness) Fitness(s numSolution) float64 { return s.value }

type minimizeObjective struct{}

func (minimizeObjective) TotalOrder(a, b numSolution) heuristic.Ordering {
	switch {
	case a.value < b.value:
		return heuristic.Less
	case a.value > b.value:
		return heuristic.Greater
	default:
		return heuristic.Equal
	}
}

func (minimizeObjective) Objectives() []heuristic.SubObjective[numSolution] {
	return []heuristic.SubObjective[numSolution]{identityFitness{}}
}

// slicePopulation is an unbounded, sorted-on-demand Population used across
// evolution package tests.
type slicePopulation struct {
	mu        sync.Mutex
	objective heuristic.Objective[numSolution]
	solutions []numSolution
}

func newSlicePopulation(objective heuristic.Objective[numSolution]) *slicePopulation {
	return &slicePopulation{objective: objective}
}

func (p *slicePopulation) Select() []numSolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]numSolution{}, p.solutions...)
}

func (p *slicePopulation) Add(s numSolution) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addLocked(s)
}

func (p *slicePopulation) AddAll(items []numSolution) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	improved := false
	for _, s := range items {
		if p.addLocked(s) {
			improved = true
		}
	}
	return improved
}

func (p *slicePopulation) addLocked(s numSolution) bool {
	best, ok := p.bestLocked()
	improved := !ok || p.objective.TotalOrder(s, best) == heuristic.Less
	p.solutions = append(p.solutions, s)
	return improved
}

func (p *slicePopulation) bestLocked() (numSolution, bool) {
	if len(p.solutions) == 0 {
		return numSolution{}, false
	}
	best := p.solutions[0]
	for _, s := range p.solutions[1:] {
		if p.objective.TotalOrder(s, best) == heuristic.Less {
			best = s
		}
	}
	return best, true
}

func (p *slicePopulation) Ranked() iter.Seq2[numSolution, int] {
	p.mu.Lock()
	sorted := append([]numSolution{}, p.solutions...)
	p.mu.Unlock()
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && p.objective.TotalOrder(sorted[j], sorted[j-1]) == heuristic.Less; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return func(yield func(numSolution, int) bool) {
		for i, s := range sorted {
			if !yield(s, i) {
				return
			}
		}
	}
}

func (p *slicePopulation) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.solutions)
}

func (p *slicePopulation) OnGeneration(heuristic.Statistics) {}

// fakeContext is a minimal, mutable Context used across evolution package
// tests: Statistics.Generation is bumped explicitly by tests via advance(),
// rather than derived automatically, to keep the fixtures simple.
type fakeContext struct {
	mu         sync.Mutex
	objective  heuristic.Objective[numSolution]
	pop        heuristic.Population[numSolution]
	env        heuristic.Environment
	generation int
}

func (c *fakeContext) Objective() heuristic.Objective[numSolution]   { return c.objective }
func (c *fakeContext) Population() heuristic.Population[numSolution] { return c.pop }
func (c *fakeContext) Environment() heuristic.Environment            { return c.env }

func (c *fakeContext) Statistics() heuristic.Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return heuristic.Statistics{Generation: c.generation}
}

func (c *fakeContext) advance() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
}

// fakeRandom always exploits (Uniform returns 1) and always picks index 0.
type fakeRandom struct{}

func (fakeRandom) Uniform() float64               { return 1 }
func (fakeRandom) Weighted(weights []float64) int { return 0 }

// countingTelemetry is a Telemetry sink tests can inspect for call counts.
type countingTelemetry struct {
	mu          sync.Mutex
	initialHits int
	genHits     int
	resultHits  int
	improved    int
}

func (t *countingTelemetry) OnInitial(ctx heuristic.Context[numSolution]) {
	t.mu.Lock()
	t.initialHits++
	t.mu.Unlock()
}

func (t *countingTelemetry) OnGeneration(ctx heuristic.Context[numSolution], estimate float64, elapsedMs int64, improved bool) {
	t.mu.Lock()
	t.genHits++
	if improved {
		t.improved++
	}
	t.mu.Unlock()
}

func (t *countingTelemetry) OnResult(ctx heuristic.Context[numSolution]) {
	t.mu.Lock()
	t.resultHits++
	t.mu.Unlock()
}

func (t *countingTelemetry) TakeMetrics() any { return nil }
func (t *countingTelemetry) Log(runID, msg string) {}

func (t *countingTelemetry) snapshot() (initial, gen, result, improved int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialHits, t.genHits, t.resultHits, t.improved
}

// fixedInitialOperator always returns the same value.
type fixedInitialOperator struct{ value float64 }

func (o fixedInitialOperator) Create(ctx heuristic.Context[numSolution]) numSolution {
	return numSolution{value: o.value}
}

// shrinkOperator multiplies the working value toward zero.
type shrinkOperator struct{ factor float64 }

func (o shrinkOperator) Search(ctx heuristic.Context[numSolution], s numSolution) numSolution {
	return numSolution{value: s.value * o.factor}
}

// fixedHeuristic is a HyperHeuristic that applies a single operator to
// every parent, unconditionally, then calls the test's onSearch hook (used
// to advance the fake context's generation counter, mimicking the real
// dispatcher driving an agent through one MDP step per generation).
type fixedHeuristic struct {
	operator heuristic.Operator[numSolution]
	onSearch func()
}

func (h fixedHeuristic) Search(ctx heuristic.Context[numSolution], parents []numSolution) []numSolution {
	if h.onSearch != nil {
		h.onSearch()
	}
	offspring := make([]numSolution, len(parents))
	for i, p := range parents {
		offspring[i] = h.operator.Search(ctx, p)
	}
	return offspring
}

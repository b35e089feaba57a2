package main

import (
	"iter"
	"sync"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// boundedPopulation is a size-capped container kept sorted best-first: the
// simplest Population that still respects spec.md §3's "bounded multiset"
// contract. Every add inserts the solution, re-sorts, and trims the worst
// once MaxSize is exceeded — greedy elitism, the simplest of the "pluggable
// container" family spec.md §4.F expects a host to supply.
type boundedPopulation struct {
	mu        sync.Mutex
	objective heuristic.Objective[numericSolution]
	maxSize   int
	solutions []numericSolution
}

func newBoundedPopulation(objective heuristic.Objective[numericSolution], maxSize int) *boundedPopulation {
	return &boundedPopulation{objective: objective, maxSize: maxSize}
}

func (p *boundedPopulation) Select() []numericSolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]numericSolution{}, p.solutions...)
}

func (p *boundedPopulation) Add(s numericSolution) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addLocked(s)
}

func (p *boundedPopulation) AddAll(items []numericSolution) bool {
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

func (p *boundedPopulation) addLocked(s numericSolution) bool {
	improved := p.bestLocked() == nil || p.objective.TotalOrder(s, *p.bestLocked()) == heuristic.Less
	p.solutions = append(p.solutions, s)
	p.sortLocked()
	if len(p.solutions) > p.maxSize {
		p.solutions = p.solutions[:p.maxSize]
	}
	return improved
}

func (p *boundedPopulation) bestLocked() *numericSolution {
	if len(p.solutions) == 0 {
		return nil
	}
	best := p.solutions[0]
	for _, s := range p.solutions[1:] {
		if p.objective.TotalOrder(s, best) == heuristic.Less {
			best = s
		}
	}
	return &best
}

func (p *boundedPopulation) sortLocked() {
	for i := 1; i < len(p.solutions); i++ {
		for j := i; j > 0 && p.objective.TotalOrder(p.solutions[j], p.solutions[j-1]) == heuristic.Less; j-- {
			p.solutions[j], p.solutions[j-1] = p.solutions[j-1], p.solutions[j]
		}
	}
}

func (p *boundedPopulation) Ranked() iter.Seq2[numericSolution, int] {
	p.mu.Lock()
	p.sortLocked()
	sorted := append([]numericSolution{}, p.solutions...)
	p.mu.Unlock()

	return func(yield func(numericSolution, int) bool) {
		for i, s := range sorted {
			if !yield(s, i) {
				return
			}
		}
	}
}

func (p *boundedPopulation) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.solutions)
}

func (p *boundedPopulation) OnGeneration(heuristic.Statistics) {}

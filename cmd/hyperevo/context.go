package main

import (
	"iter"
	"sync/atomic"
	"time"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// demoContext is the host-owned heuristic.Context for the CLI demo. It
// derives the generation counter from how many times the core's generation
// loop has called Population.Select — exactly once per generation, per
// spec.md §4.F step 5b — by wrapping the underlying population rather than
// requiring a dedicated hook the core interface doesn't expose.
type demoContext struct {
	objective heuristic.Objective[numericSolution]
	pop       *countingPopulation
	env       heuristic.Environment
	start     time.Time
}

// newDemoContext takes the already-wrapped *countingPopulation so the
// generation counter it maintains reflects every Select call the core's
// generation loop makes against the same population instance — cfg.Population
// and ctx.Population() must be the same object, not independent wrappers.
func newDemoContext(objective heuristic.Objective[numericSolution], pop *countingPopulation, env heuristic.Environment) *demoContext {
	return &demoContext{
		objective: objective,
		pop:       pop,
		env:       env,
		start:     time.Now(),
	}
}

func (c *demoContext) Objective() heuristic.Objective[numericSolution]   { return c.objective }
func (c *demoContext) Population() heuristic.Population[numericSolution] { return c.pop }
func (c *demoContext) Environment() heuristic.Environment                { return c.env }

func (c *demoContext) Statistics() heuristic.Statistics {
	return heuristic.Statistics{
		Generation:     int(c.pop.generations.Load()),
		TimeSinceStart: time.Since(c.start).Seconds(),
	}
}

// countingPopulation increments a generation counter on every Select call
// and otherwise delegates unchanged.
type countingPopulation struct {
	inner       heuristic.Population[numericSolution]
	generations atomic.Int64
}

func (p *countingPopulation) Select() []numericSolution {
	p.generations.Add(1)
	return p.inner.Select()
}

func (p *countingPopulation) Add(s numericSolution) bool      { return p.inner.Add(s) }
func (p *countingPopulation) AddAll(s []numericSolution) bool { return p.inner.AddAll(s) }
func (p *countingPopulation) Ranked() iter.Seq2[numericSolution, int] { return p.inner.Ranked() }
func (p *countingPopulation) Size() int                               { return p.inner.Size() }
func (p *countingPopulation) OnGeneration(stats heuristic.Statistics)  { p.inner.OnGeneration(stats) }

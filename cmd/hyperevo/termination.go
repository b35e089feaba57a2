package main

import "github.com/tutu-network/hyperevo/internal/heuristic"

// maxGenerationsTermination ends the run after a fixed generation count —
// the simplest Termination a host can supply.
type maxGenerationsTermination struct {
	max int
}

func (t maxGenerationsTermination) IsTermination(ctx heuristic.Context[numericSolution]) bool {
	return ctx.Statistics().Generation >= t.max
}

func (t maxGenerationsTermination) Estimate(ctx heuristic.Context[numericSolution]) float64 {
	if t.max <= 0 {
		return 1
	}
	ratio := float64(ctx.Statistics().Generation) / float64(t.max)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

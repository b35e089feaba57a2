package main

import "github.com/tutu-network/hyperevo/internal/heuristic"

// shrinkOperator multiplies the working value toward zero — the operator
// S1/S2 from spec.md §8 call "halves the value" / "returns input − 0.1"
// generalized to a tunable factor.
type shrinkOperator struct {
	factor float64
}

func (o shrinkOperator) Search(ctx heuristic.Context[numericSolution], s numericSolution) numericSolution {
	return numericSolution{value: s.value * o.factor}
}

// noopOperator returns its input unchanged — the "useless" operator B from
// scenario S2, and the "always stagnates" operator from S3.
type noopOperator struct{}

func (noopOperator) Search(ctx heuristic.Context[numericSolution], s numericSolution) numericSolution {
	return s
}

// jitterOperator nudges the value by a small random amount, occasionally
// improving a diverse (non-best) solution — the S3-style "improves diverse
// solutions only" operator, in spirit: it both improves and worsens, but on
// average drifts the population, which is enough to exercise DiverseImprovement.
type jitterOperator struct {
	scale float64
}

func (o jitterOperator) Search(ctx heuristic.Context[numericSolution], s numericSolution) numericSolution {
	delta := (ctx.Environment().Random.Uniform()*2 - 1) * o.scale
	return numericSolution{value: s.value + delta}
}

// randomSeedOperator is the InitialOperator used to fill the population
// past any pre-supplied individuals.
type randomSeedOperator struct {
	min, max float64
}

func (o randomSeedOperator) Create(ctx heuristic.Context[numericSolution]) numericSolution {
	u := ctx.Environment().Random.Uniform()
	return numericSolution{value: o.min + u*(o.max-o.min)}
}

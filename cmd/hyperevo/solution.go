package main

import "github.com/tutu-network/hyperevo/internal/heuristic"

// numericSolution is the toy 1-D real-valued solution the demo CLI
// optimizes: lower value is better, fitness equals the value itself.
type numericSolution struct {
	value float64
}

func (s numericSolution) DeepCopy() numericSolution { return numericSolution{value: s.value} }

type identityFitness struct{}

func (identityFitness) Fitness(s numericSolution) float64 { return s.value }

// minimizeObjective ranks numericSolutions by ascending value.
type minimizeObjective struct{}

func (minimizeObjective) TotalOrder(a, b numericSolution) heuristic.Ordering {
	switch {
	case a.value < b.value:
		return heuristic.Less
	case a.value > b.value:
		return heuristic.Greater
	default:
		return heuristic.Equal
	}
}

func (minimizeObjective) Objectives() []heuristic.SubObjective[numericSolution] {
	return []heuristic.SubObjective[numericSolution]{identityFitness{}}
}

// Package heuristic implements the dynamic-selective hyper-heuristic: the
// inner engine that turns a batch of parent solutions into offspring by
// dispatching each one through an RL-driven state/action loop (internal/mdp)
// over a registry of search operators. It also defines the capability
// boundaries (Objective, Population, Context, Operator, Termination,
// Random) that the evolution simulator (internal/evolution) and its host
// depend on but never implement themselves — those are supplied by the
// caller, per spec.md §6.
package heuristic

import (
	"iter"

	"github.com/tutu-network/hyperevo/internal/mdp"
)

// Ordering is the result of a total-order comparison between two
// solutions, matching the classical three-way comparator shape.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Solution is the self-referential "cloneable" constraint every solution
// type parameter in this module must satisfy. It carries no other
// assumption about the solution's internal structure — the engine treats
// it as opaque, per spec.md §3.
type Solution[S any] interface {
	DeepCopy() S
}

// SubObjective yields a finite real-valued fitness for a solution along one
// scalar dimension of a (possibly multi-objective) ranking.
type SubObjective[S Solution[S]] interface {
	Fitness(s S) float64
}

// Objective exposes a strict weak total order over solutions plus the
// ordered list of scalar sub-objectives used for significance comparisons
// (§4.C's relative-distance computation).
type Objective[S Solution[S]] interface {
	TotalOrder(a, b S) Ordering
	Objectives() []SubObjective[S]
}

// Operator is a pure function producing a new candidate solution without
// mutating shared state. Implementations must treat ctx and s as
// read-only.
type Operator[S Solution[S]] interface {
	Search(ctx Context[S], s S) S
}

// NamedOperator pairs an operator with a display name, used for action
// labelling in telemetry and logs.
type NamedOperator[S Solution[S]] struct {
	Operator Operator[S]
	Name     string
}

// OperatorRegistry is the append-only, stably-indexed list of search
// operators an action (mdp.Action) refers to by position.
type OperatorRegistry[S Solution[S]] []NamedOperator[S]

// Random is the thread-safety-required randomness capability. Re-exported
// from internal/mdp so callers implementing it only need to satisfy one
// interface shape for both the MDP policy and the evolution simulator's
// weighted initial-operator selection.
type Random = mdp.Random

// Quota reports whether the run's wall-clock (or other external) budget
// has been exhausted. A nil Quota means "never reached".
type Quota interface {
	IsReached() bool
}

// Environment aggregates the ambient capabilities a context exposes:
// randomness, the parallelism hint for the episode runner, and an
// optional cancellation quota.
type Environment struct {
	Random      Random
	Parallelism int
	Quota       Quota
}

// Statistics carries running counters a context maintains across
// generations — used by the search-state classifier's significance
// fallback (§4.C) and exposed to operators/termination checks.
type Statistics struct {
	Generation           int
	TimeSinceStart       float64 // seconds
	Improvement1000Ratio float64
	ImprovementAllRatio  float64
}

// Population is a bounded multiset of solutions whose internal ordering
// and selection policy are entirely up to the implementation.
type Population[S Solution[S]] interface {
	Select() []S
	Add(s S) bool
	AddAll(s []S) bool
	Ranked() iter.Seq2[S, int]
	Size() int
	OnGeneration(stats Statistics)
}

// Context aggregates everything a search operator, the classifier, and the
// dispatcher need: the objective, read/write population access, the
// environment, and running statistics.
type Context[S Solution[S]] interface {
	Objective() Objective[S]
	Population() Population[S]
	Environment() Environment
	Statistics() Statistics
}

// Termination decides whether the evolution loop should stop and reports
// a [0,1] progress estimate used to gate initial-solution seeding.
type Termination[S Solution[S]] interface {
	IsTermination(ctx Context[S]) bool
	Estimate(ctx Context[S]) float64
}

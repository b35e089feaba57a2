package heuristic

import (
	"time"

	"github.com/tutu-network/hyperevo/internal/mdp"
	"github.com/tutu-network/hyperevo/internal/remedian"
)

// searchAgent is the per-parent MDP participant (§4.D): it carries the
// context, the original parent, a working solution (initially a deep copy
// of the parent), the operator registry, a reference to the duration
// median, its current state, and the durations it has recorded.
type searchAgent[S Solution[S]] struct {
	ctx      Context[S]
	original S
	working  S
	registry OperatorRegistry[S]
	median   *remedian.Remedian
	classify classifyParams
	rewards  rewardTable
	state    StateKind
	runtime  []time.Duration
}

// newSearchAgent builds an agent for one parent solution. Its initial
// state is BestKnown if the parent is not strictly worse than the current
// best (or there is no best yet), Diverse otherwise — matching
// original_source's compare_to_best bootstrap (SPEC_FULL.md §7.1).
func newSearchAgent[S Solution[S]](ctx Context[S], parent S, registry OperatorRegistry[S], median *remedian.Remedian, classify classifyParams, rewards rewardTable) *searchAgent[S] {
	state := BestKnown
	if best, ok := firstRanked(ctx.Population()); ok {
		if ctx.Objective().TotalOrder(parent, best) == Greater {
			state = Diverse
		}
	}
	return &searchAgent[S]{
		ctx:      ctx,
		original: parent,
		working:  parent.DeepCopy(),
		registry: registry,
		median:   median,
		classify: classify,
		rewards:  rewards,
		state:    state,
	}
}

// State implements mdp.Agent.
func (a *searchAgent[S]) State() StateKind { return a.state }

// TakeAction implements mdp.Agent: it runs the operator at the given
// registry index against the working solution, classifies the resulting
// transition, replaces the working solution, and returns the modulated
// reward for the MDP kernel's learning update.
//
// An operator that panics is treated as having produced its input
// unchanged and transitions the agent to Stagnated — operator failures
// never propagate out of the episode (spec.md §7).
func (a *searchAgent[S]) TakeAction(action mdp.Action) float64 {
	operator := a.registry[action].Operator

	candidate, duration := a.invoke(operator)
	a.runtime = append(a.runtime, duration)

	medianMs, haveMedian := medianOrZero(a.median)
	ratio := newMedianRatio(duration.Milliseconds(), medianMs, haveMedian)

	best, _ := firstRankedPtr(a.ctx.Population())
	kind := classify(a.original, candidate, best, a.ctx.Objective(), a.ctx.Statistics(), a.classify)

	a.state = kind
	a.working = candidate

	return ratio.eval(a.rewards.base(kind))
}

// invoke runs the operator and measures its wall duration, recovering from
// a panic by returning the agent's current working solution unchanged.
func (a *searchAgent[S]) invoke(operator Operator[S]) (result S, duration time.Duration) {
	start := time.Now()
	defer func() {
		duration = time.Since(start)
		if r := recover(); r != nil {
			result = a.working
		}
	}()
	result = operator.Search(a.ctx, a.working)
	return result, duration
}

// Runtime returns the durations recorded across this agent's episodes.
func (a *searchAgent[S]) Runtime() []time.Duration { return a.runtime }

// Solution returns the agent's current working solution — the offspring
// contributed by this agent.
func (a *searchAgent[S]) Solution() S { return a.working }

func medianOrZero(m *remedian.Remedian) (int, bool) {
	if m == nil {
		return 0, false
	}
	return m.ApproxMedian()
}

// firstRanked returns the current best solution by value, if any. Ranked()
// is defined to yield best-first, so the first item produced is the best
// regardless of the rank number attached to it.
func firstRanked[S Solution[S]](pop Population[S]) (S, bool) {
	for s := range pop.Ranked() {
		return s, true
	}
	var zero S
	return zero, false
}

// firstRankedPtr mirrors firstRanked but returns a pointer, matching the
// classifier's "no best yet" (nil) contract.
func firstRankedPtr[S Solution[S]](pop Population[S]) (*S, bool) {
	for s := range pop.Ranked() {
		v := s
		return &v, true
	}
	return nil, false
}

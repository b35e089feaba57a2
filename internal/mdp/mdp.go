// Package mdp implements a small Markov Decision Process kernel: states,
// actions, action-value estimates, a learning strategy, a policy, and an
// episode runner. It is deliberately generic over the state type so it can
// back more than one hyper-heuristic (see internal/heuristic) without
// depending on the domain it is applied to.
package mdp

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// Action identifies a choice available to an agent in a given state. The
// dynamic-selective hyper-heuristic uses registry indices as actions, so a
// plain int is sufficient — no domain ever needs a richer action type here.
type Action = int

// ActionEstimates holds the expected return for every action known in a
// state. The zero value is a valid, empty table — MaxEstimate reports
// ok=false and Get returns 0 for any action, matching the "unseen actions
// start at 0" invariant.
type ActionEstimates struct {
	values map[Action]float64
}

// NewActionEstimates builds an estimate table seeded at 0 for each action.
func NewActionEstimates(actions ...Action) ActionEstimates {
	values := make(map[Action]float64, len(actions))
	for _, a := range actions {
		values[a] = 0
	}
	return ActionEstimates{values: values}
}

// EstimatesFrom wraps an existing action->value map.
func EstimatesFrom(values map[Action]float64) ActionEstimates {
	return ActionEstimates{values: values}
}

// Get returns the current estimate for action, defaulting to 0 if unseen.
func (e ActionEstimates) Get(a Action) float64 {
	if e.values == nil {
		return 0
	}
	return e.values[a]
}

// Set records an estimate for action, allocating the backing map if needed.
func (e *ActionEstimates) Set(a Action, v float64) {
	if e.values == nil {
		e.values = make(map[Action]float64, 1)
	}
	e.values[a] = v
}

// Len reports how many actions currently have an estimate.
func (e ActionEstimates) Len() int { return len(e.values) }

// Actions returns the known action keys, in no particular order.
func (e ActionEstimates) Actions() []Action {
	return maps.Keys(e.values)
}

// MaxEstimate returns the action with the largest estimate and ok=false if
// the table is empty (the terminal reward-only states start this way).
// Ties resolve to the lowest action index so results are reproducible
// regardless of map iteration order.
func (e ActionEstimates) MaxEstimate() (Action, float64, bool) {
	actions := e.Actions()
	if len(actions) == 0 {
		return 0, 0, false
	}
	sort.Ints(actions)

	best := actions[0]
	bestVal := e.Get(best)
	for _, a := range actions[1:] {
		if v := e.Get(a); v > bestVal {
			best, bestVal = a, v
		}
	}
	return best, bestVal, true
}

// Clone returns an independent copy of the estimate table.
func (e ActionEstimates) Clone() ActionEstimates {
	return ActionEstimates{values: maps.Clone(e.values)}
}

// Agent is a single-episode participant in the MDP: it reports its current
// state and, given an action chosen by the policy, executes it and returns
// the realized reward for that step.
type Agent[S comparable] interface {
	State() S
	TakeAction(action Action) (reward float64)
}

// LearningStrategy updates an action-value estimate toward a realized
// return. MonteCarlo is the only strategy this engine ships.
type LearningStrategy interface {
	Update(estimates *ActionEstimates, action Action, realizedReturn float64)
}

// Policy selects an action given the current estimates for a state.
type Policy interface {
	Select(estimates ActionEstimates) (Action, bool)
}

// Reducer collapses the rewards observed for one (state, action) pair across
// a batch of agents in a single episode into one value used for the
// learning update; it is given the state so it can pick a rule per state.
type Reducer[S comparable] func(state S, rewards []float64) float64

// Simulator owns the canonical, persistent action-value estimate table and
// drives single-step episodes for a batch of agents, optionally in
// parallel. The table is only mutated between batches — never while
// episodes are in flight — so an episode holds the lock only while it
// takes a snapshot of its state's estimates.
type Simulator[S comparable] struct {
	mu        sync.Mutex
	estimates map[S]ActionEstimates
	learning  LearningStrategy
	policy    Policy
}

// NewSimulator creates a simulator with the given learning strategy and
// policy. The estimate table starts empty; use SeedEstimates to pre-seed
// known state keys (as the dynamic-selective dispatcher does for BestKnown
// and Diverse).
func NewSimulator[S comparable](learning LearningStrategy, policy Policy) *Simulator[S] {
	return &Simulator[S]{
		estimates: make(map[S]ActionEstimates),
		learning:  learning,
		policy:    policy,
	}
}

// SeedEstimates installs (or replaces) the estimate table for a state key.
func (sim *Simulator[S]) SeedEstimates(state S, estimates ActionEstimates) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.estimates[state] = estimates
}

// GetStateEstimates returns a snapshot of the full estimate table, keyed by
// state. Mutating the returned map does not affect the simulator.
func (sim *Simulator[S]) GetStateEstimates() map[S]ActionEstimates {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	out := make(map[S]ActionEstimates, len(sim.estimates))
	for k, v := range sim.estimates {
		out[k] = v.Clone()
	}
	return out
}

// SetActionEstimates overwrites the estimate table for one state key. Used
// by the dynamic-selective dispatcher's BestKnown<->Diverse exchange.
func (sim *Simulator[S]) SetActionEstimates(state S, estimates ActionEstimates) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.estimates[state] = estimates
}

type episodeOutcome[S comparable] struct {
	state  S
	action Action
	reward float64
	ok     bool
}

// RunEpisodes drives one step per agent: read the agent's state, ask the
// policy for an action from the current estimates for that state, apply
// it, and record the realized reward. Agents run concurrently across a
// worker pool sized by parallelism (at least 1); the barrier at the end
// joins every agent before estimates are merged and updated, so updates
// from one agent are never visible to a sibling mid-batch.
func (sim *Simulator[S]) RunEpisodes(agents []Agent[S], parallelism int, reduce Reducer[S]) []Agent[S] {
	if parallelism < 1 {
		parallelism = 1
	}

	outcomes := make([]episodeOutcome[S], len(agents))

	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup
	for i, agent := range agents {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, agent Agent[S]) {
			defer wg.Done()
			defer func() { <-sem }()

			state := agent.State()
			estimates := sim.snapshotFor(state)
			action, ok := sim.policy.Select(estimates)
			if !ok {
				return
			}
			reward := agent.TakeAction(action)
			outcomes[i] = episodeOutcome[S]{state: state, action: action, reward: reward, ok: true}
		}(i, agent)
	}
	wg.Wait()

	sim.applyUpdates(outcomes, reduce)

	return agents
}

// snapshotFor returns the current estimates for state, seeding an empty
// table if this is the first time the state has been encountered.
func (sim *Simulator[S]) snapshotFor(state S) ActionEstimates {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if est, ok := sim.estimates[state]; ok {
		return est.Clone()
	}
	return ActionEstimates{}
}

// applyUpdates groups the batch's outcomes by (state, action), reduces each
// pair's reward vector via the caller-supplied reducer, and applies the
// Monte-Carlo update once per distinct (state, action) pair observed.
func (sim *Simulator[S]) applyUpdates(outcomes []episodeOutcome[S], reduce Reducer[S]) {
	type key struct {
		state  S
		action Action
	}
	rewardsByKey := make(map[key][]float64)
	for _, o := range outcomes {
		if !o.ok {
			continue
		}
		k := key{state: o.state, action: o.action}
		rewardsByKey[k] = append(rewardsByKey[k], o.reward)
	}

	sim.mu.Lock()
	defer sim.mu.Unlock()
	for k, rewards := range rewardsByKey {
		realized := reduce(k.state, rewards)
		est := sim.estimates[k.state]
		sim.learning.Update(&est, k.action, realized)
		sim.estimates[k.state] = est
	}
}

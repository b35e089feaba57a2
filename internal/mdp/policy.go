package mdp

import "sort"

// Random is the thread-safety-required randomness capability the kernel
// consumes. Implementations backing a single-threaded generator must
// restrict the simulator's parallelism hint to 1 (see internal/randsrc).
type Random interface {
	Uniform() float64
	Weighted(weights []float64) int
}

// EpsilonWeighted is an epsilon-greedy-style policy: with probability
// Epsilon it samples an action weighted by the current estimates (shifted
// to be non-negative so negative-reward actions remain selectable),
// otherwise it exploits the argmax estimate.
type EpsilonWeighted struct {
	Epsilon float64
	Random  Random
}

// NewEpsilonWeighted builds an EpsilonWeighted policy.
func NewEpsilonWeighted(epsilon float64, random Random) *EpsilonWeighted {
	return &EpsilonWeighted{Epsilon: epsilon, Random: random}
}

// Select implements Policy. It returns ok=false only when the state has no
// known actions at all — the terminal reward-only states that start with
// an empty estimate table and so have nothing to pick from.
func (p *EpsilonWeighted) Select(estimates ActionEstimates) (Action, bool) {
	actions := estimates.Actions()
	if len(actions) == 0 {
		return 0, false
	}

	// Stable order so weighted sampling is reproducible for a given Random
	// sequence regardless of map iteration order.
	sort.Ints(actions)

	if p.Random.Uniform() > p.Epsilon {
		best, _, ok := estimates.MaxEstimate()
		if ok {
			return best, true
		}
		return actions[0], true
	}

	weights := make([]float64, len(actions))
	minVal := estimates.Get(actions[0])
	for _, a := range actions {
		if v := estimates.Get(a); v < minVal {
			minVal = v
		}
	}
	shift := 0.0
	if minVal < 0 {
		shift = -minVal
	}
	for i, a := range actions {
		weights[i] = estimates.Get(a) + shift + 1e-9
	}

	idx := p.Random.Weighted(weights)
	if idx < 0 || idx >= len(actions) {
		idx = 0
	}
	return actions[idx], true
}

package heuristic

import (
	"github.com/tutu-network/hyperevo/internal/mdp"
	"github.com/tutu-network/hyperevo/internal/remedian"
)

// HyperHeuristic is the capability the evolution simulator drives once per
// generation: turn a set of parents into offspring.
type HyperHeuristic[S Solution[S]] interface {
	Search(ctx Context[S], parents []S) []S
}

// Hyperparameters controls the dynamic-selective dispatcher's learning
// rate, exploration rate, duration-median tower width, the classifier's
// significance thresholds, and the base reward table. Exposed so
// internal/config can load them from a TOML file (SPEC_FULL.md §5.2);
// DefaultHyperparameters matches spec.md's defaults exactly.
type Hyperparameters struct {
	Alpha        float64
	Epsilon      float64
	RemedianBase int

	SignificanceThreshold    float64
	ImprovementRatioFallback float64

	RewardBestMajorImprovement float64
	RewardBestMinorImprovement float64
	RewardDiverseImprovement   float64
	RewardStagnated            float64
}

// DefaultHyperparameters returns the engine's documented defaults.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Alpha:        0.1,
		Epsilon:      0.1,
		RemedianBase: remedian.DefaultBase,

		SignificanceThreshold:    defaultSignificanceThreshold,
		ImprovementRatioFallback: defaultImprovementRatioFallback,

		RewardBestMajorImprovement: 1000,
		RewardBestMinorImprovement: 100,
		RewardDiverseImprovement:   10,
		RewardStagnated:            -1,
	}
}

// DynamicSelective is the experimental dynamic-selective hyper heuristic:
// it selects inner operators based on how they perform during search, the
// selection process modeled as an MDP (§4.E).
type DynamicSelective[S Solution[S]] struct {
	registry  OperatorRegistry[S]
	simulator *mdp.Simulator[StateKind]
	median    *remedian.Remedian
	classify  classifyParams
	rewards   rewardTable
}

// NewDynamicSelective builds a dispatcher over the given operator registry.
// random backs the epsilon-weighted policy's exploration sampling.
func NewDynamicSelective[S Solution[S]](registry OperatorRegistry[S], random mdp.Random, params Hyperparameters) *DynamicSelective[S] {
	simulator := mdp.NewSimulator[StateKind](
		mdp.NewMonteCarlo(params.Alpha),
		mdp.NewEpsilonWeighted(params.Epsilon, random),
	)

	actions := make([]mdp.Action, len(registry))
	for i := range registry {
		actions[i] = i
	}
	zeroed := mdp.NewActionEstimates(actions...)
	simulator.SeedEstimates(BestKnown, zeroed.Clone())
	simulator.SeedEstimates(Diverse, zeroed.Clone())
	simulator.SeedEstimates(BestMajorImprovement, mdp.ActionEstimates{})
	simulator.SeedEstimates(BestMinorImprovement, mdp.ActionEstimates{})
	simulator.SeedEstimates(DiverseImprovement, mdp.ActionEstimates{})
	simulator.SeedEstimates(Stagnated, mdp.ActionEstimates{})

	return &DynamicSelective[S]{
		registry:  registry,
		simulator: simulator,
		median:    remedian.New(params.RemedianBase),
		classify: classifyParams{
			significanceThreshold:    params.SignificanceThreshold,
			improvementRatioFallback: params.ImprovementRatioFallback,
		},
		rewards: rewardTable{
			bestMajorImprovement: params.RewardBestMajorImprovement,
			bestMinorImprovement: params.RewardBestMinorImprovement,
			diverseImprovement:   params.RewardDiverseImprovement,
			stagnated:            params.RewardStagnated,
		},
	}
}

// rewardReducer implements §4.A's two reducers: BestKnown takes the max of
// the rewards observed for an action this batch, every other state takes
// the arithmetic mean.
func rewardReducer(state StateKind, rewards []float64) float64 {
	if state == BestKnown {
		max := rewards[0]
		for _, r := range rewards[1:] {
			if r > max {
				max = r
			}
		}
		return max
	}
	sum := 0.0
	for _, r := range rewards {
		sum += r
	}
	return sum / float64(len(rewards))
}

// Search implements HyperHeuristic: build one agent per parent, run one
// MDP episode per agent (possibly in parallel, per the context's
// parallelism hint), collect the resulting working solutions as offspring,
// feed recorded durations into the Remedian, and exchange estimates if the
// frontier has stagnated (§4.E steps 1-5).
func (d *DynamicSelective[S]) Search(ctx Context[S], parents []S) []S {
	agents := make([]*searchAgent[S], len(parents))
	mdpAgents := make([]mdp.Agent[StateKind], len(parents))
	for i, parent := range parents {
		a := newSearchAgent(ctx, parent, d.registry, d.median, d.classify, d.rewards)
		agents[i] = a
		mdpAgents[i] = a
	}

	d.simulator.RunEpisodes(mdpAgents, ctx.Environment().Parallelism, rewardReducer)

	offspring := make([]S, 0, len(agents))
	for _, a := range agents {
		offspring = append(offspring, a.Solution())
		for _, dur := range a.Runtime() {
			d.median.AddObservation(int(dur.Milliseconds()))
		}
	}

	d.tryExchangeEstimates()

	return offspring
}

// tryExchangeEstimates reboots exploitation after stagnation at the
// frontier: if BestKnown's best action-value is <= 0 and Diverse's is > 0,
// copy Diverse's estimates into BestKnown's slot (§4.E step 5).
func (d *DynamicSelective[S]) tryExchangeEstimates() {
	snapshot := d.simulator.GetStateEstimates()

	bestKnown, haveBestKnown := snapshot[BestKnown]
	diverse, haveDiverse := snapshot[Diverse]
	if !haveBestKnown || !haveDiverse {
		return
	}

	_, bestKnownMax, bestKnownOk := bestKnown.MaxEstimate()
	_, diverseMax, diverseOk := diverse.MaxEstimate()

	isBestKnownStagnation := !bestKnownOk || bestKnownMax <= 0
	isDiverseImprovement := diverseOk && diverseMax > 0

	if isBestKnownStagnation && isDiverseImprovement {
		d.simulator.SetActionEstimates(BestKnown, diverse.Clone())
	}
}

// StateEstimates exposes a snapshot of the dispatcher's learned action
// values, keyed by state — used by telemetry and tests to observe
// invariant 8 (estimate exchange trigger).
func (d *DynamicSelective[S]) StateEstimates() map[StateKind]mdp.ActionEstimates {
	return d.simulator.GetStateEstimates()
}

// Package config loads engine hyperparameters from a TOML file, seeding a
// Default()-valued struct so a partial file only overrides what it sets.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// Hyperparameters is the on-disk shape of the tunables spec.md §9 flags as
// "exposed as tunables in a reimplementation": the MDP learning rate and
// exploration rate, the remedian tower width, the significance threshold
// and improvement-ratio fallback used by the search-state classifier, and
// the base reward table.
type Hyperparameters struct {
	Alpha        float64 `toml:"alpha"`
	Epsilon      float64 `toml:"epsilon"`
	RemedianBase int     `toml:"remedian_base"`

	SignificanceThreshold    float64 `toml:"significance_threshold"`
	ImprovementRatioFallback float64 `toml:"improvement_ratio_fallback"`

	RewardBestMajorImprovement float64 `toml:"reward_best_major_improvement"`
	RewardBestMinorImprovement float64 `toml:"reward_best_minor_improvement"`
	RewardDiverseImprovement   float64 `toml:"reward_diverse_improvement"`
	RewardStagnated            float64 `toml:"reward_stagnated"`
}

// Default mirrors spec.md's documented defaults exactly.
func Default() Hyperparameters {
	return Hyperparameters{
		Alpha:        0.1,
		Epsilon:      0.1,
		RemedianBase: 11,

		SignificanceThreshold:    0.01,
		ImprovementRatioFallback: 0.01,

		RewardBestMajorImprovement: 1000,
		RewardBestMinorImprovement: 100,
		RewardDiverseImprovement:   10,
		RewardStagnated:            -1,
	}
}

// Load reads hyperparameters from a TOML file at path, filling any field
// left unset in the file from Default().
func Load(path string) (Hyperparameters, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Hyperparameters{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// ToDispatcherParams projects the loaded hyperparameters onto the
// dispatcher's own Hyperparameters shape — config owns the on-disk format,
// heuristic owns the runtime one, and the two are kept separate so a config
// format change never forces a heuristic package change. Every field is
// forwarded: the classifier's thresholds and the reward table are real
// tunables, not just decoration on the TOML file.
func (h Hyperparameters) ToDispatcherParams() heuristic.Hyperparameters {
	return heuristic.Hyperparameters{
		Alpha:        h.Alpha,
		Epsilon:      h.Epsilon,
		RemedianBase: h.RemedianBase,

		SignificanceThreshold:    h.SignificanceThreshold,
		ImprovementRatioFallback: h.ImprovementRatioFallback,

		RewardBestMajorImprovement: h.RewardBestMajorImprovement,
		RewardBestMinorImprovement: h.RewardBestMinorImprovement,
		RewardDiverseImprovement:   h.RewardDiverseImprovement,
		RewardStagnated:            h.RewardStagnated,
	}
}

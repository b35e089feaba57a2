package evolution

import (
	"fmt"

	"github.com/tutu-network/hyperevo/internal/heuristic"
)

// InitialConfig controls the seeding phase: how many solutions to start
// from, how to build the rest, and how much of the run's termination budget
// seeding is allowed to spend.
type InitialConfig[S heuristic.Solution[S]] struct {
	// Individuals are pre-supplied seed solutions, taken up to MaxSize.
	Individuals []S
	// MaxSize is the target population size after construction.
	MaxSize int
	// Operators builds the solutions Individuals doesn't cover. At least
	// one is required — an empty slice is a fatal ConfigError.
	Operators []WeightedInitialOperator[S]
	// Quota is the fraction in [0,1] of the termination estimate reserved
	// for seeding; once Termination.Estimate exceeds it, seeding stops
	// even if MaxSize hasn't been reached.
	Quota float64
}

// Config is the full set of parameters an evolution Simulator run needs.
// None of its capability fields (Population, Termination, Heuristic,
// Telemetry, Environment) are implemented by this package — they are
// supplied by the host, per spec.md §6.
type Config[S heuristic.Solution[S]] struct {
	Initial InitialConfig[S]

	Population  heuristic.Population[S]
	Termination heuristic.Termination[S]
	Heuristic   heuristic.HyperHeuristic[S]
	Telemetry   Telemetry[S]
	Environment heuristic.Environment

	// ContextFactory builds the heuristic.Context[S] the run operates
	// under, given the (possibly partially filled) population. Called
	// once per run, immediately after the seed-from-supplied step.
	ContextFactory func(pop heuristic.Population[S]) heuristic.Context[S]

	// DesiredAmount caps how many ranked solutions Run returns.
	DesiredAmount int
}

// ConfigError reports a fatal, pre-run configuration problem — the only
// error Run ever returns. It wraps an underlying cause using the %w verb so
// callers can still unwrap and compare with errors.Is/As.
type ConfigError struct {
	cause error
}

func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{cause: fmt.Errorf(format, args...)}
}

func (e *ConfigError) Error() string { return fmt.Sprintf("evolution: invalid config: %v", e.cause) }

func (e *ConfigError) Unwrap() error { return e.cause }

// validate checks the fail-fast preconditions spec.md §4.F and §7 require
// before a single generation runs.
func (c Config[S]) validate() error {
	if len(c.Initial.Operators) == 0 {
		return newConfigError("initial.operators must not be empty")
	}
	if c.Initial.MaxSize <= 0 {
		return newConfigError("initial.max_size must be positive, got %d", c.Initial.MaxSize)
	}
	if c.DesiredAmount == 0 {
		return newConfigError("desired_amount must not be zero")
	}
	if c.Population == nil {
		return newConfigError("population must not be nil")
	}
	if c.Termination == nil {
		return newConfigError("termination must not be nil")
	}
	if c.Heuristic == nil {
		return newConfigError("heuristic must not be nil")
	}
	if c.Telemetry == nil {
		return newConfigError("telemetry must not be nil")
	}
	if c.ContextFactory == nil {
		return newConfigError("context factory must not be nil")
	}
	return nil
}

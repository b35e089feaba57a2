package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tutu-network/hyperevo/internal/config"
	"github.com/tutu-network/hyperevo/internal/evolution"
	"github.com/tutu-network/hyperevo/internal/heuristic"
	"github.com/tutu-network/hyperevo/internal/hostapi"
	"github.com/tutu-network/hyperevo/internal/randsrc"
	"github.com/tutu-network/hyperevo/internal/telemetry"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo evolution against a 1-D numeric objective",
	Long: `Run evolves a population of 1-D real numbers toward lower values
(the objective minimizes the value itself) using the
dynamic-selective hyper-heuristic. It's a demonstration of the full engine
end-to-end, not a production optimizer.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int("generations", 20, "Maximum number of generations to run")
	runCmd.Flags().Int("population-size", 10, "Target population size")
	runCmd.Flags().Float64("seed-min", -100, "Lower bound for randomly seeded solutions")
	runCmd.Flags().Float64("seed-max", 100, "Upper bound for randomly seeded solutions")
	runCmd.Flags().Int("parallelism", 4, "Dispatcher episode runner worker pool width")
	runCmd.Flags().String("config", "", "Path to a TOML hyperparameters file (defaults if unset)")
	runCmd.Flags().Bool("serve", false, "Serve /health, /status, /metrics on --addr while running")
	runCmd.Flags().String("addr", ":8090", "Address for --serve")
}

func runRun(cmd *cobra.Command, args []string) error {
	generations, _ := cmd.Flags().GetInt("generations")
	popSize, _ := cmd.Flags().GetInt("population-size")
	seedMin, _ := cmd.Flags().GetFloat64("seed-min")
	seedMax, _ := cmd.Flags().GetFloat64("seed-max")
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	configPath, _ := cmd.Flags().GetString("config")
	serve, _ := cmd.Flags().GetBool("serve")
	addr, _ := cmd.Flags().GetString("addr")

	hyperparams := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		hyperparams = loaded
	}

	random := randsrc.New(time.Now().UnixNano())
	objective := minimizeObjective{}

	registry := heuristic.OperatorRegistry[numericSolution]{
		{Name: "shrink", Operator: shrinkOperator{factor: 0.9}},
		{Name: "noop", Operator: noopOperator{}},
		{Name: "jitter", Operator: jitterOperator{scale: 2}},
	}
	dispatcher := heuristic.NewDynamicSelective[numericSolution](registry, random, hyperparams.ToDispatcherParams())

	rawPop := newBoundedPopulation(objective, popSize)
	pop := &countingPopulation{inner: rawPop}
	env := heuristic.Environment{Random: random, Parallelism: parallelism}
	ctx := newDemoContext(objective, pop, env)

	runID := uuid.NewString()

	var statusServer *hostapi.Server
	if serve {
		statusServer = hostapi.NewServer()
		go func() {
			fmt.Printf("serving /health /status /metrics on %s\n", addr)
			_ = serveHostAPI(addr, statusServer)
		}()
	}

	cfg := evolution.Config[numericSolution]{
		Initial: evolution.InitialConfig[numericSolution]{
			MaxSize: popSize,
			Operators: []evolution.WeightedInitialOperator[numericSolution]{
				{Operator: randomSeedOperator{min: seedMin, max: seedMax}, Weight: 1},
			},
			Quota: 1.0,
		},
		Population:  pop,
		Termination: maxGenerationsTermination{max: generations},
		Heuristic:   dispatcher,
		Telemetry: telemetry.NewMulti[numericSolution](
			telemetry.NewLogging[numericSolution](),
			telemetry.NewPrometheus[numericSolution](),
		),
		Environment: env,
		ContextFactory: func(heuristic.Population[numericSolution]) heuristic.Context[numericSolution] {
			return ctx
		},
		DesiredAmount: 5,
	}

	if statusServer != nil {
		statusServer.SetStatus(hostapi.Status{RunID: runID, Generation: 0})
	}

	solutions, _, err := evolution.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: top %d solutions\n", runID, len(solutions))
	for i, s := range solutions {
		fmt.Printf("  %d. %.6f\n", i+1, s.value)
	}
	if statusServer != nil {
		statusServer.SetStatus(hostapi.Status{RunID: runID, Generation: generations, Done: true})
	}
	return nil
}

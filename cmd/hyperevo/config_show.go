package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutu-network/hyperevo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect engine hyperparameters",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective hyperparameters",
	Long:  `Print the hyperparameters hyperevo run would use — defaults, or a file's contents via --config.`,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().String("config", "", "Path to a TOML hyperparameters file (defaults if unset)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fmt.Printf("alpha                       = %v\n", cfg.Alpha)
	fmt.Printf("epsilon                     = %v\n", cfg.Epsilon)
	fmt.Printf("remedian_base               = %v\n", cfg.RemedianBase)
	fmt.Printf("significance_threshold      = %v\n", cfg.SignificanceThreshold)
	fmt.Printf("improvement_ratio_fallback  = %v\n", cfg.ImprovementRatioFallback)
	fmt.Printf("reward_best_major           = %v\n", cfg.RewardBestMajorImprovement)
	fmt.Printf("reward_best_minor           = %v\n", cfg.RewardBestMinorImprovement)
	fmt.Printf("reward_diverse_improvement  = %v\n", cfg.RewardDiverseImprovement)
	fmt.Printf("reward_stagnated            = %v\n", cfg.RewardStagnated)
	return nil
}

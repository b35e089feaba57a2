package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hyperevo",
	Short: "Dynamic-selective hyper-heuristic evolution engine",
	Long: `hyperevo drives a population of candidate solutions through a
dynamic-selective hyper-heuristic: an RL-driven dispatcher picks search
operators per solution, modeling operator selection as a Markov Decision
Process. This binary ships a toy 1-D numeric objective for demonstration;
production use wires a domain-specific Solution/Objective/Operator set
against the internal/evolution and internal/heuristic packages directly.`,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Command hyperevo is a thin CLI host for the dynamic-selective
// hyper-heuristic evolution engine: it wires a toy 1-D numeric objective
// and a handful of demo operators so the engine is runnable end-to-end.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

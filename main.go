// Package main provides the entry point for SkidSim.
// SkidSim is a cycle-accurate simulator of a valid/ready skid buffer,
// built on the Akita simulation framework.
//
// For the full CLI, use: go run ./cmd/skidsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("SkidSim - Valid/Ready Decoupling Buffer Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: skidsim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to run configuration TOML file")
	fmt.Println("  -width     Data width in bits")
	fmt.Println("  -words     Number of words to stream")
	fmt.Println("  -trace     Log every tick's signal state")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/skidsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/skidsim' instead.")
	}
}

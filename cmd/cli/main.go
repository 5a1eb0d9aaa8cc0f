// Package main is the entry point for the energy-bill CLI.
package main

import (
	"os"

	"energy-billing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "signal-outcome-tracker",
	Short: "A CLI for managing the signal outcome tracking services",
	Long:  `Signal Outcome Tracker evaluates emitted trading signals against later market prices and maintains the learning metrics derived from them.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}

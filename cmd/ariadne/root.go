package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "ariadne",
	Short: "Ariadne - NFA simulator with witness paths",
	Long: `Ariadne simulates nondeterministic finite automata against input strings.
An accepting run is reported as a witness path: the exact sequence of states
visited and the symbol consumed at each step, so you can see not just that a
string was accepted but how.

Automata are plain-text descriptions declaring states, final states,
transition rules and an input string.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mergeCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Package cmd implements the xwordgen command-line surface: fill a
// crossword grid by MCTS search, the supplemented validate and stats
// diagnostics, and the serve/token subcommands that expose the same
// orchestrator over HTTP.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "xwordgen",
	Short: "Crossword grid filler powered by Monte Carlo Tree Search",
	Long: `xwordgen fills a crossword grid from a layout and a word list.

It searches an assignment of one word to every entry such that every
crossing cell carries a consistent letter, using single-player MCTS
over a constraint-propagated crossword state.`,
	Version: version,
}

// Execute adds all child commands to the root command and runs it. It
// is called once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level (0=errors only, 1=info, 2=debug)")
}

func logf(format string, args ...interface{}) {
	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

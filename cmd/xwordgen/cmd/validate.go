package cmd

import (
	"fmt"

	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/spf13/cobra"
)

var validatePathToLayout string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a layout CSV without running a search",
	Long: `Validate parses a layout (a CSV file, or a synthetic blank grid if
--path_to_layout is omitted), reports whether the fixed letters it
carries are internally consistent, and prints entry/crossing counts,
all as a fast pre-flight before spending an MCTS budget on it.

Examples:
  # Validate a layout file
  xwordgen validate --path_to_layout layout.csv

  # Validate the synthetic default grid
  xwordgen validate`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validatePathToLayout, "path_to_layout", "", "CSV path or glob for the layout (default: synthetic 4x5 blank grid)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	var layout grid.LayoutSource
	if validatePathToLayout != "" {
		layout = grid.ExistingLayout{Path: validatePathToLayout}
	} else {
		layout = grid.NewLayout{Rows: 4, Cols: 5}
	}

	blocked, fixed, err := layout.Layout()
	if err != nil {
		fmt.Printf("INVALID: %v\n", err)
		return err
	}

	g, err := grid.Build(blocked, fixed)
	if err != nil {
		fmt.Printf("INVALID: %v\n", err)
		return err
	}

	fmt.Println("VALID")
	fmt.Printf("  rows x cols:      %d x %d\n", g.Rows, g.Cols)
	fmt.Printf("  fixed letters:    %d\n", len(fixed))
	fmt.Printf("  entries:          %d\n", len(g.Entries))

	crossings := 0
	for _, e := range g.Entries {
		if e.Axis != grid.Across {
			continue
		}
		for _, cr := range e.Crossings {
			if cr.EntryID != -1 {
				crossings++
			}
		}
	}
	fmt.Printf("  crossings:        %d\n", crossings)

	if !grid.IsConnected(g) {
		fmt.Println("  warning:          open cells are not all connected")
	}
	if short := grid.ShortEntries(g); len(short) > 0 {
		fmt.Printf("  warning:          %d entries shorter than %d cells: %v\n", len(short), grid.MinWordLength, short)
	}

	return nil
}

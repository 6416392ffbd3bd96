package cmd

import (
	"fmt"
	"os"

	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/mcts"
	"github.com/crossplay/xwordgen/pkg/orchestrator"
	"github.com/crossplay/xwordgen/pkg/wordindex"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	fillPathToLayout  string
	fillNumRows       int
	fillNumCols       int
	fillPathToWords   string
	fillMaxNumWords   int
	fillMaxIterations int
	fillRandomSeed    int64
	fillOutputPath    string
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a crossword grid by Monte Carlo Tree Search",
	Long: `Fill searches an assignment of one word per entry over a layout and
word list, maximising the fraction of entries filled.

Examples:
  # Fill a blank 4x5 grid from the built-in dictionary
  xwordgen fill --max_mcts_iterations 1000

  # Fill a layout read from CSV using a custom word list
  xwordgen fill --path_to_layout layout.csv --path_to_words answers.csv --output_path out/`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVar(&fillPathToLayout, "path_to_layout", "", "CSV path or glob for the layout (default: synthetic blank grid)")
	fillCmd.Flags().IntVar(&fillNumRows, "num_rows", 4, "rows of the synthetic grid (ignored when --path_to_layout is set)")
	fillCmd.Flags().IntVar(&fillNumCols, "num_cols", 5, "columns of the synthetic grid (ignored when --path_to_layout is set)")
	fillCmd.Flags().StringVar(&fillPathToWords, "path_to_words", "", "CSV path or glob with an answer column (default: built-in dictionary)")
	fillCmd.Flags().IntVar(&fillMaxNumWords, "max_num_words", 0, "cap on catalogue size after dedup (0 = unbounded)")
	fillCmd.Flags().IntVar(&fillMaxIterations, "max_mcts_iterations", 1000, "MCTS iteration budget")
	fillCmd.Flags().Int64Var(&fillRandomSeed, "random_seed", 0, "seed for the single run-wide random generator")
	fillCmd.Flags().StringVar(&fillOutputPath, "output_path", "", "directory to write grid.csv and summary.csv into")
}

func runFill(cmd *cobra.Command, args []string) error {
	var layout grid.LayoutSource
	if fillPathToLayout != "" {
		layout = grid.ExistingLayout{Path: fillPathToLayout}
	} else {
		layout = grid.NewLayout{Rows: fillNumRows, Cols: fillNumCols}
	}

	var words wordindex.Source
	if fillPathToWords != "" {
		words = wordindex.FileWords{Path: fillPathToWords}
	} else {
		words = wordindex.DictionaryWords{}
	}

	runID := uuid.NewString()
	logf("run %s: building grid and word index", runID)

	var bar *progressbar.ProgressBar
	if verbosity >= 1 && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.Default(int64(fillMaxIterations), "searching")
	}

	cfg := orchestrator.Config{
		Layout:            layout,
		Words:             words,
		MaxNumWords:       fillMaxNumWords,
		MaxMCTSIterations: fillMaxIterations,
		RandomSeed:        fillRandomSeed,
		OnIteration: func(stat mcts.IterationStat) {
			if bar != nil {
				_ = bar.Set(stat.Iteration)
			}
		},
	}

	result, err := orchestrator.Run(cfg)
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Printf("run %s: best reward %.4f (%d/%d entries filled) over %d iterations\n",
		runID, result.MCTS.BestReward, result.MCTS.BestState.FilledCount(), len(result.Grid.Entries), result.MCTS.IterationsRun)

	if fillOutputPath != "" {
		if err := orchestrator.WriteOutputs(fillOutputPath, runID, result.Grid, result.MCTS.BestState, result.MCTS); err != nil {
			return fmt.Errorf("failed to write outputs: %w", err)
		}
		logf("wrote grid.csv and summary.csv to %s", fillOutputPath)
	}

	return nil
}

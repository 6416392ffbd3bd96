package orchestrator

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/mcts"
)

// WriteOutputs writes grid.csv and summary.csv under dir, per the
// persisted-output contract: grid.csv mirrors the input layout shape
// with fixed/assigned letters in filled cells, underscores in open
// cells with no letter, and empty values for blocked cells; summary.csv
// has one row per iteration, preceded by a
// comment line naming the run that produced it.
func WriteOutputs(dir, runID string, g *grid.Grid, state *crossword.State, result *mcts.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "grid.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writeGridCSV(f, g, state); err != nil {
		return err
	}

	sf, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return err
	}
	defer sf.Close()
	return writeSummaryCSV(sf, runID, result)
}

// RenderOutputs produces grid.csv and summary.csv in memory, for callers
// (the serve subcommand's /fills handlers, the Redis cache) that need
// the content without touching the filesystem.
func RenderOutputs(runID string, g *grid.Grid, state *crossword.State, result *mcts.Result) (gridCSV, summaryCSV string, err error) {
	var gridBuf, summaryBuf strings.Builder
	if err := writeGridCSV(&gridBuf, g, state); err != nil {
		return "", "", err
	}
	if err := writeSummaryCSV(&summaryBuf, runID, result); err != nil {
		return "", "", err
	}
	return gridBuf.String(), summaryBuf.String(), nil
}

func writeGridCSV(w io.Writer, g *grid.Grid, state *crossword.State) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	letters := gridLetters(g, state)
	for r := 0; r < g.Rows; r++ {
		row := make([]string, g.Cols)
		for c := 0; c < g.Cols; c++ {
			if g.Cells[r][c].Blocked {
				row[c] = ""
			} else if letters[r][c] == 0 {
				row[c] = "_"
			} else {
				row[c] = string(letters[r][c])
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// gridLetters resolves every committed letter (fixed or filled) into a
// rows x cols byte grid, 0 where no letter is committed.
func gridLetters(g *grid.Grid, state *crossword.State) [][]byte {
	out := make([][]byte, g.Rows)
	for r := range out {
		out[r] = make([]byte, g.Cols)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			if cell.Fixed {
				out[r][c] = cell.FixedLetter
			}
		}
	}
	for _, e := range g.Entries {
		es := state.Entries[e.ID]
		for i, p := range e.Cells {
			const unknown byte = 0
			if es.Pattern[i] != unknown {
				out[p.Row][p.Col] = es.Pattern[i]
			}
		}
	}
	return out
}

func writeSummaryCSV(w io.Writer, runID string, result *mcts.Result) error {
	if _, err := io.WriteString(w, "# run_id: "+runID+"\n"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"iteration", "best_reward_so_far", "entries_filled_in_best"}); err != nil {
		return err
	}
	for _, stat := range result.Iterations {
		row := []string{
			strconv.Itoa(stat.Iteration),
			strconv.FormatFloat(stat.BestRewardSoFar, 'f', 6, 64),
			strconv.Itoa(stat.EntriesFilledInBest),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

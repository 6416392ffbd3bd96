// Package orchestrator wires the word index, grid, crossword state and
// MCTS engine together (C5): it builds the immutable core from a layout
// and word supplier, drives a bounded number of MCTS iterations, and
// extracts the best terminal state found.
package orchestrator

import (
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/mcts"
	"github.com/crossplay/xwordgen/pkg/wordindex"
)

// Config fixes the inputs to one fill run.
type Config struct {
	Layout            grid.LayoutSource
	Words             wordindex.Source
	MaxWordLength     int
	MaxNumWords       int
	MaxMCTSIterations int
	RandomSeed        int64

	// OnIteration, if non-nil, is called once per completed MCTS
	// iteration (used by the CLI to drive a progress bar).
	OnIteration func(mcts.IterationStat)
}

// Result is everything an external caller (CLI or service) needs to
// report on a completed run.
type Result struct {
	Grid *grid.Grid
	MCTS *mcts.Result
}

// Run executes one full fill: builds the grid and word index from cfg's
// suppliers, constructs the initial crossword state, and runs MCTS for
// up to cfg.MaxMCTSIterations iterations with a generator seeded from
// cfg.RandomSeed, the single entropy source for the whole run.
func Run(cfg Config) (*Result, error) {
	words, err := cfg.Words.Words()
	if err != nil {
		return nil, err
	}
	idx, err := wordindex.Build(words, cfg.MaxWordLength, cfg.MaxNumWords)
	if err != nil {
		return nil, err
	}

	blocked, fixed, err := cfg.Layout.Layout()
	if err != nil {
		return nil, err
	}
	g, err := grid.Build(blocked, fixed)
	if err != nil {
		return nil, err
	}

	initial := crossword.NewState(g, idx)
	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	result := mcts.Run(initial, cfg.MaxMCTSIterations, rng, cfg.OnIteration)

	return &Result{Grid: g, MCTS: result}, nil
}

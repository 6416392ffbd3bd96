package mcts

import (
	"math/rand"
	"testing"

	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/wordindex"
)

func openState(t *testing.T, rows, cols int, words ...string) *crossword.State {
	t.Helper()
	blocked := make([][]bool, rows)
	for r := range blocked {
		blocked[r] = make([]bool, cols)
	}
	g, err := grid.Build(blocked, nil)
	if err != nil {
		t.Fatalf("grid.Build failed: %v", err)
	}
	idx, err := wordindex.Build(words, 0, 0)
	if err != nil {
		t.Fatalf("wordindex.Build failed: %v", err)
	}
	return crossword.NewState(g, idx)
}

func TestRun_2x2FindsPerfectSolution(t *testing.T) {
	s := openState(t, 2, 2, "AB", "CD", "AC", "BD")
	result := Run(s, 200, rand.New(rand.NewSource(0)), nil)
	if result.BestReward != 1 {
		t.Fatalf("expected reward 1, got %v", result.BestReward)
	}
}

func TestRun_3x3FindsPerfectSolutionWithinBudget(t *testing.T) {
	s := openState(t, 3, 3, "CAT", "ARE", "TEN", "CAR", "ATE", "REN")
	result := Run(s, 200, rand.New(rand.NewSource(0)), nil)
	if result.BestReward != 1 {
		t.Fatalf("expected reward 1 within 200 iterations, got %v", result.BestReward)
	}
}

func TestRun_TerminalRootStopsImmediately(t *testing.T) {
	s := openState(t, 1, 1, "AB")
	result := Run(s, 100, rand.New(rand.NewSource(0)), nil)
	if result.IterationsRun != 0 {
		t.Fatalf("expected 0 iterations for an already-terminal root, got %d", result.IterationsRun)
	}
	if result.BestReward != 1 {
		t.Fatalf("expected reward 1 for a grid with no entries, got %v", result.BestReward)
	}
}

func TestRun_UnsatisfiableCaseNeverExceedsPartialReward(t *testing.T) {
	s := openState(t, 2, 2, "AB", "CD")
	result := Run(s, 50, rand.New(rand.NewSource(0)), nil)
	if result.BestReward >= 1 {
		t.Fatalf("AB/CD alone cannot fill a 2x2 grid, got reward %v", result.BestReward)
	}
}

func TestRun_IterationsRunNeverExceedsBudget(t *testing.T) {
	s := openState(t, 3, 3, "CAT", "ARE", "TEN", "CAR", "ATE", "REN")
	result := Run(s, 5, rand.New(rand.NewSource(1)), nil)
	if result.IterationsRun > 5 {
		t.Fatalf("expected at most 5 iterations, ran %d", result.IterationsRun)
	}
}

func TestRun_DeterministicForFixedSeed(t *testing.T) {
	build := func() *Result {
		s := openState(t, 3, 3, "CAT", "ARE", "TEN", "CAR", "ATE", "REN")
		return Run(s, 30, rand.New(rand.NewSource(42)), nil)
	}
	a := build()
	b := build()
	if a.BestReward != b.BestReward || a.IterationsRun != b.IterationsRun {
		t.Fatalf("expected identical results for the same seed, got %v/%d vs %v/%d", a.BestReward, a.IterationsRun, b.BestReward, b.IterationsRun)
	}
}

func TestRun_IterationStatsAreMonotonicNonDecreasing(t *testing.T) {
	s := openState(t, 3, 3, "CAT", "ARE", "TEN", "CAR", "ATE", "REN")
	result := Run(s, 50, rand.New(rand.NewSource(7)), nil)
	for i := 1; i < len(result.Iterations); i++ {
		if result.Iterations[i].BestRewardSoFar < result.Iterations[i-1].BestRewardSoFar {
			t.Fatalf("best reward regressed at iteration %d: %v -> %v", i, result.Iterations[i-1].BestRewardSoFar, result.Iterations[i].BestRewardSoFar)
		}
	}
}

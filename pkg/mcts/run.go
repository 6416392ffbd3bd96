package mcts

import (
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/crossword"
)

// IterationStat is one row of the per-iteration search summary.
type IterationStat struct {
	Iteration           int
	BestRewardSoFar     float64
	EntriesFilledInBest int
}

// Result is the outcome of a bounded Run: the best terminal state seen
// (not the most-visited root child: a one-player domain wants the best
// witnessed outcome), and a per-iteration trace for reporting.
type Result struct {
	BestState     *crossword.State
	BestReward    float64
	Iterations    []IterationStat
	IterationsRun int
}

// Run drives up to maxIterations of select/expand/rollout/backpropagate
// from initial, stopping early if the root becomes terminal or fully
// exhausted (every reachable descendant terminal). All randomness,
// rollout action choice included, flows from rng, the single seeded
// generator for the whole run. onIteration, if non-nil, is called once
// per completed iteration for progress reporting; it must not mutate
// the returned stat.
func Run(initial *crossword.State, maxIterations int, rng *rand.Rand, onIteration func(IterationStat)) *Result {
	t := newTree(initial)

	best := bestTracker{}
	best.consider(initial)

	stats := make([]IterationStat, 0, maxIterations)

	for i := 0; i < maxIterations; i++ {
		if t.isExhausted(rootID) {
			break
		}

		leafID := t.selectLeaf()
		childID, err := t.expand(leafID)
		if err != nil {
			break
		}
		child := t.nodes[childID]

		var value float64
		if child.terminal {
			value = child.state.Reward()
			best.consider(child.state)
		} else {
			final := rollout(child.state, rng)
			value = final.Reward()
			best.consider(final)
		}
		t.backpropagate(childID, value)

		stat := IterationStat{
			Iteration:           i + 1,
			BestRewardSoFar:     best.reward,
			EntriesFilledInBest: best.filledCount,
		}
		stats = append(stats, stat)
		if onIteration != nil {
			onIteration(stat)
		}
	}

	return &Result{
		BestState:     best.state,
		BestReward:    best.reward,
		Iterations:    stats,
		IterationsRun: len(stats),
	}
}

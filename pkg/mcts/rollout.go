package mcts

import (
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/crossword"
)

// rollout repeatedly applies a uniformly random legal action from state
// until terminal, using a disposable clone chain. No tree nodes are
// created here; it returns the terminal state reached so the caller can
// read its reward and fill count for best-state tracking.
func rollout(state *crossword.State, rng *rand.Rand) *crossword.State {
	current := state
	for {
		action, ok := current.RandomAction(rng)
		if !ok {
			return current
		}
		next, err := current.Apply(action)
		if err != nil {
			return current
		}
		current = next
	}
}

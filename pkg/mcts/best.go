package mcts

import "github.com/crossplay/xwordgen/pkg/crossword"

// bestTracker keeps the best terminal state observed across a run:
// highest reward, ties broken by earliest discovery (first write wins,
// so only strict improvements replace the incumbent).
type bestTracker struct {
	state       *crossword.State
	reward      float64
	filledCount int
}

func (b *bestTracker) consider(s *crossword.State) {
	r := s.Reward()
	if b.state == nil || r > b.reward {
		b.state = s
		b.reward = r
		b.filledCount = s.FilledCount()
	}
}

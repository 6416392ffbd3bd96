package mcts

import "math"

// selectLeaf descends from the root while the current node is fully
// expanded and non-terminal, following the child maximising UCB1. Ties
// are broken by smallest child index (the position within the parent's
// action order), since the loop only replaces the incumbent on a strict
// improvement. Returns the first node reached that is terminal or not
// fully expanded.
func (t *tree) selectLeaf() int {
	current := rootID
	for {
		n := t.nodes[current]
		if n.terminal || !n.fullyExpanded() {
			return current
		}

		bestIdx := -1
		bestScore := math.Inf(-1)
		for i, childID := range n.children {
			child := t.nodes[childID]
			score := ucb1(child.reward, child.visits, n.visits)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		current = n.children[bestIdx]
	}
}

func ucb1(childReward float64, childVisits, parentVisits int) float64 {
	exploit := childReward / float64(childVisits)
	explore := explorationConstant * math.Sqrt(math.Log(float64(parentVisits))/float64(childVisits))
	return exploit + explore
}

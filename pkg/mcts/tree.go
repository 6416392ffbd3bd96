// Package mcts implements the single-player Monte Carlo Tree Search
// engine (C4): a tree of nodes keyed by crossword state, UCB1 selection,
// expansion, random rollout, and single-player backpropagation (no sign
// flip: the same scalar is added at every ancestor level).
package mcts

import (
	"math"

	"github.com/crossplay/xwordgen/pkg/crossword"
)

// explorationConstant is the classical UCB1 c = sqrt(2).
const explorationConstant = math.Sqrt2

// node is one arena-indexed tree entry. Children are addressed by
// integer id in both directions (parent and child slice) so the tree
// has no pointer cycles.
type node struct {
	state            *crossword.State
	parent           int // -1 for the root
	actionFromParent crossword.Action

	actions  []crossword.Action // nil until first needed; LegalActions() order
	children []int              // parallel to actions; -1 until expanded

	visits int
	reward float64

	terminal  bool
	exhausted bool
}

func newNode(s *crossword.State, parent int, action crossword.Action) *node {
	return &node{state: s, parent: parent, actionFromParent: action, terminal: s.IsTerminal()}
}

// ensureActions lazily populates a node's action/children slices from
// its state's legal actions.
func (n *node) ensureActions() {
	if n.actions != nil || n.terminal {
		return
	}
	n.actions = n.state.LegalActions()
	n.children = make([]int, len(n.actions))
	for i := range n.children {
		n.children[i] = -1
	}
}

// fullyExpanded reports whether every action has a corresponding child.
// A terminal node is vacuously fully expanded.
func (n *node) fullyExpanded() bool {
	if n.terminal {
		return true
	}
	n.ensureActions()
	for _, c := range n.children {
		if c == -1 {
			return false
		}
	}
	return true
}

// tree is the arena of nodes for one run.
type tree struct {
	nodes []*node
}

func newTree(root *crossword.State) *tree {
	t := &tree{}
	t.add(newNode(root, -1, crossword.Action{}))
	return t
}

func (t *tree) add(n *node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

const rootID = 0

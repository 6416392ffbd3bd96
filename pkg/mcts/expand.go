package mcts

import "fmt"

// expand applies one untried action of leaf to create a child node. If
// leaf is terminal it is returned unchanged, per the main-loop contract
// (child may equal leaf). Untried actions are tried in the order
// produced by LegalActions().
func (t *tree) expand(leafID int) (int, error) {
	n := t.nodes[leafID]
	if n.terminal {
		return leafID, nil
	}
	n.ensureActions()

	for i, childID := range n.children {
		if childID != -1 {
			continue
		}
		action := n.actions[i]
		childState, err := n.state.Apply(action)
		if err != nil {
			return 0, fmt.Errorf("mcts: expand failed: %w", err)
		}
		child := newNode(childState, leafID, action)
		cid := t.add(child)
		n.children[i] = cid
		return cid, nil
	}

	return 0, fmt.Errorf("mcts: expand called on a fully expanded non-terminal node %d", leafID)
}

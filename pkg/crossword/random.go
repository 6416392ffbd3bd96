package crossword

import "math/rand"

// RandomAction uniformly samples one action from LegalActions using rng.
// ok is false when the state is already terminal. rng is the single
// seeded generator threaded through a whole run; no other entropy source
// is used, to keep runs reproducible.
func (s *State) RandomAction(rng *rand.Rand) (Action, bool) {
	actions := s.LegalActions()
	if len(actions) == 0 {
		return Action{}, false
	}
	return actions[rng.Intn(len(actions))], true
}

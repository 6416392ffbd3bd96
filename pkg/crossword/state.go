// Package crossword implements the mutable partial assignment (C3): which
// entries are filled, per-entry candidate sets, and the resulting letters
// in cells. States are produced by cloning a parent and applying exactly
// one (entry, word) action; the word index and grid geometry are shared
// by reference and never mutated.
package crossword

import (
	"errors"

	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/wordindex"
)

// ErrInternal signals an invariant violation that should never fire in
// a correct implementation (e.g. an action referencing an unknown entry,
// or a candidate surviving that no longer matches its pattern).
var ErrInternal = errors.New("crossword: internal invariant violation")

// unknown marks a pattern position with no committed letter yet.
const unknown byte = 0

// Action is one legal move: fill entry EntryID with Word.
type Action struct {
	EntryID int
	Word    string
}

// EntryState is the mutable per-entry fill state: whether it's filled,
// the word assigned (if any), its current letter pattern, and (while
// unfilled) the sorted word-index ids still consistent with it.
type EntryState struct {
	Filled       bool
	AssignedWord string
	Pattern      []byte
	Candidates   []int
}

// State is one node's worth of crossword fill progress. Grid and Index
// are immutable and shared across every clone of a run; Entries and
// filledCount are the only per-state mutable data.
type State struct {
	Grid    *grid.Grid
	Index   *wordindex.Index
	Entries []EntryState

	filledCount int
}

// NewState builds the starting state for g over idx: every entry
// unfilled, its pattern seeded from fixed-cell letters (or all unknown),
// and its candidate set initialised from the word index.
func NewState(g *grid.Grid, idx *wordindex.Index) *State {
	s := &State{
		Grid:    g,
		Index:   idx,
		Entries: make([]EntryState, len(g.Entries)),
	}
	for _, e := range g.Entries {
		pattern := make([]byte, e.Length)
		constraints := make([]wordindex.Constraint, 0, e.Length)
		for i, p := range e.Cells {
			cell := g.CellAt(p)
			if cell.Fixed {
				pattern[i] = cell.FixedLetter
				constraints = append(constraints, wordindex.Constraint{Position: i, Letter: cell.FixedLetter})
			} else {
				pattern[i] = unknown
			}
		}
		s.Entries[e.ID] = EntryState{
			Pattern:    pattern,
			Candidates: idx.Query(e.Length, constraints),
		}
	}
	return s
}

// Clone returns an independent copy: per-entry patterns and candidate
// slices are duplicated, Grid and Index stay shared by reference.
func (s *State) Clone() *State {
	out := &State{
		Grid:        s.Grid,
		Index:       s.Index,
		Entries:     make([]EntryState, len(s.Entries)),
		filledCount: s.filledCount,
	}
	for i, es := range s.Entries {
		cp := es
		if es.Pattern != nil {
			cp.Pattern = append([]byte(nil), es.Pattern...)
		}
		if es.Candidates != nil {
			cp.Candidates = append([]int(nil), es.Candidates...)
		}
		out.Entries[i] = cp
	}
	return out
}

// nextEntry returns the id of the unfilled entry with the smallest
// candidate-set size, ties broken by smallest id (fail-first). ok is
// false when every entry is already filled.
func (s *State) nextEntry() (id int, ok bool) {
	best := -1
	for i, es := range s.Entries {
		if es.Filled {
			continue
		}
		if best == -1 || len(es.Candidates) < len(s.Entries[best].Candidates) {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// LegalActions enumerates candidate words for the next entry to fill,
// the unfilled entry with the smallest candidate set. Empty when every
// entry is filled, or when that entry's candidate set is empty.
func (s *State) LegalActions() []Action {
	id, ok := s.nextEntry()
	if !ok {
		return nil
	}
	es := s.Entries[id]
	if len(es.Candidates) == 0 {
		return nil
	}
	length := s.Grid.Entry(id).Length
	actions := make([]Action, len(es.Candidates))
	for i, wid := range es.Candidates {
		actions[i] = Action{EntryID: id, Word: s.Index.Word(length, wid)}
	}
	return actions
}

// IsTerminal reports whether no further action can be taken: every entry
// is filled, or the next entry to fill has no remaining candidates.
func (s *State) IsTerminal() bool {
	return len(s.LegalActions()) == 0
}

// Reward is the fraction of entries filled, in [0,1]. A grid with no
// entries at all is vacuously fully solved.
func (s *State) Reward() float64 {
	if len(s.Entries) == 0 {
		return 1
	}
	return float64(s.filledCount) / float64(len(s.Entries))
}

// FilledCount returns the number of filled entries in s.
func (s *State) FilledCount() int {
	return s.filledCount
}

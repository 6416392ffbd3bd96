package crossword

import (
	"fmt"

	"github.com/crossplay/xwordgen/pkg/wordindex"
)

// Apply produces a child state in which entry a.EntryID is filled with
// a.Word. The parent is left untouched. See the package doc for the
// cloning rationale.
//
// Steps: clone; mark the entry filled and set its pattern to a.Word;
// for each crossing position, commit the implied letter into the
// neighbour's pattern (if not already known) and refilter its candidate
// set against the word index; finally drop a.Word's id from every other
// unfilled entry of the same length, since no word may be used twice.
func (s *State) Apply(a Action) (*State, error) {
	entry := s.Grid.Entry(a.EntryID)
	if entry == nil {
		return nil, fmt.Errorf("%w: apply references unknown entry %d", ErrInternal, a.EntryID)
	}
	if s.Entries[a.EntryID].Filled {
		return nil, fmt.Errorf("%w: apply targets already-filled entry %d", ErrInternal, a.EntryID)
	}
	if len(a.Word) != entry.Length {
		return nil, fmt.Errorf("%w: word %q length %d does not match entry %d length %d", ErrInternal, a.Word, len(a.Word), a.EntryID, entry.Length)
	}

	child := s.Clone()
	es := &child.Entries[a.EntryID]
	es.Filled = true
	es.AssignedWord = a.Word
	es.Pattern = []byte(a.Word)
	es.Candidates = nil
	child.filledCount++

	for i, crossing := range entry.Crossings {
		if crossing.EntryID == -1 {
			continue
		}
		other := &child.Entries[crossing.EntryID]
		if other.Filled {
			continue
		}
		letter := a.Word[i]
		j := crossing.Position
		if other.Pattern[j] != unknown {
			continue
		}
		other.Pattern[j] = letter
		otherLen := len(other.Pattern)
		posting := child.Index.Query(otherLen, []wordindex.Constraint{{Position: j, Letter: letter}})
		other.Candidates = intersectSorted(other.Candidates, posting)
	}

	if wid, ok := child.Index.IDOf(a.Word); ok {
		for id := range child.Entries {
			if id == a.EntryID {
				continue
			}
			oe := &child.Entries[id]
			if oe.Filled || child.Grid.Entry(id).Length != entry.Length {
				continue
			}
			oe.Candidates = removeID(oe.Candidates, wid)
		}
	}

	return child, nil
}

// intersectSorted intersects two ascending-sorted id slices in linear time.
func intersectSorted(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// removeID returns ids with target removed, preserving order.
func removeID(ids []int, target int) []int {
	for i, id := range ids {
		if id == target {
			out := make([]int, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			out = append(out, ids[i+1:]...)
			return out
		}
	}
	return ids
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

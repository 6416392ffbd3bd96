package grid

import "errors"

// ErrInconsistentFixedLetters is returned by Build when two supplied
// fixed letters target the same cell with different letters.
var ErrInconsistentFixedLetters = errors.New("grid: inconsistent fixed letters")

// FixedLetter pins a single cell to an uppercase letter supplied by the
// layout. Passed as a list (rather than a map) so Build can detect two
// contradictory entries for the same cell.
type FixedLetter struct {
	Row, Col int
	Letter   byte
}

// Build derives the entry list and crossing relation from a blocked-cell
// map and an optional set of fixed letters at open cells.
//
// blocked[r][c] == true means the cell never carries a letter. Entries
// are the maximal contiguous open runs (length >= 2) scanned per row
// (Across) and per column (Down); ids are assigned 0..n-1, Across
// entries first in row-major order, then Down entries in column-major
// order, a stable, deterministic numbering independent of any
// clue-numbering convention.
func Build(blocked [][]bool, fixedLetters []FixedLetter) (*Grid, error) {
	rows := len(blocked)
	cols := 0
	if rows > 0 {
		cols = len(blocked[0])
	}

	cells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			cells[r][c] = Cell{Blocked: blocked[r][c]}
		}
	}

	fixedByCell := make(map[Pos]byte, len(fixedLetters))
	for _, fl := range fixedLetters {
		p := Pos{Row: fl.Row, Col: fl.Col}
		if existing, ok := fixedByCell[p]; ok && existing != fl.Letter {
			return nil, ErrInconsistentFixedLetters
		}
		fixedByCell[p] = fl.Letter
	}
	for p, letter := range fixedByCell {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			continue
		}
		if cells[p.Row][p.Col].Blocked {
			continue
		}
		cells[p.Row][p.Col].Fixed = true
		cells[p.Row][p.Col].FixedLetter = letter
	}

	g := &Grid{Rows: rows, Cols: cols, Cells: cells}

	acrossAt := make(map[Pos]*Entry)
	downAt := make(map[Pos]*Entry)

	// Across entries: row-major scan.
	for r := 0; r < rows; r++ {
		c := 0
		for c < cols {
			if cells[r][c].Blocked {
				c++
				continue
			}
			start := c
			var run []Pos
			for c < cols && !cells[r][c].Blocked {
				run = append(run, Pos{Row: r, Col: c})
				c++
			}
			if len(run) >= 2 {
				e := &Entry{
					ID:        len(g.Entries),
					Axis:      Across,
					StartRow:  r,
					StartCol:  start,
					Length:    len(run),
					Cells:     run,
					Crossings: make([]Crossing, len(run)),
				}
				for i := range e.Crossings {
					e.Crossings[i] = Crossing{EntryID: -1}
				}
				g.Entries = append(g.Entries, e)
				for _, p := range run {
					acrossAt[p] = e
				}
			}
		}
	}

	// Down entries: column-major scan.
	for c := 0; c < cols; c++ {
		r := 0
		for r < rows {
			if cells[r][c].Blocked {
				r++
				continue
			}
			start := r
			var run []Pos
			for r < rows && !cells[r][c].Blocked {
				run = append(run, Pos{Row: r, Col: c})
				r++
			}
			if len(run) >= 2 {
				e := &Entry{
					ID:        len(g.Entries),
					Axis:      Down,
					StartRow:  start,
					StartCol:  c,
					Length:    len(run),
					Cells:     run,
					Crossings: make([]Crossing, len(run)),
				}
				for i := range e.Crossings {
					e.Crossings[i] = Crossing{EntryID: -1}
				}
				g.Entries = append(g.Entries, e)
				for _, p := range run {
					downAt[p] = e
				}
			}
		}
	}

	// Crossing relation: for every cell shared by an Across and a Down
	// entry, record a crossing pointer on both sides.
	for p, across := range acrossAt {
		down, ok := downAt[p]
		if !ok {
			continue
		}
		acrossPos := p.Col - across.StartCol
		downPos := p.Row - down.StartRow
		across.Crossings[acrossPos] = Crossing{EntryID: down.ID, Position: downPos}
		down.Crossings[downPos] = Crossing{EntryID: across.ID, Position: acrossPos}
	}

	return g, nil
}

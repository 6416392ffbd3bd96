package grid

import "testing"

func TestBuild_SingleRowAcrossOnly(t *testing.T) {
	blocked := [][]bool{{false, false, false}}
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(g.Entries))
	}
	e := g.Entries[0]
	if e.Axis != Across || e.Length != 3 || e.ID != 0 {
		t.Errorf("unexpected entry: %+v", e)
	}
	for _, c := range e.Crossings {
		if c.EntryID != -1 {
			t.Errorf("expected no crossings in a single row, got %+v", c)
		}
	}
}

func TestBuild_SingleCellRunsAreNotEntries(t *testing.T) {
	blocked := [][]bool{
		{false, true, false},
	}
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Entries) != 0 {
		t.Fatalf("expected no entries from two isolated single cells, got %d", len(g.Entries))
	}
}

func TestBuild_CrossingRelation(t *testing.T) {
	// 3x3 open grid: across entries get ids 0,1,2 (rows), down entries 3,4,5 (cols)
	g, err := Build(emptyBlocked(3, 3), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(g.Entries))
	}

	row0 := g.Entry(0)
	if row0.Axis != Across || row0.StartRow != 0 {
		t.Fatalf("entry 0 should be the first across entry, got %+v", row0)
	}
	col0 := g.Entry(3)
	if col0.Axis != Down || col0.StartCol != 0 {
		t.Fatalf("entry 3 should be the first down entry, got %+v", col0)
	}

	// cell (0,0) is shared by row0 at position 0 and col0 at position 0
	cr := row0.Crossings[0]
	if cr.EntryID != col0.ID || cr.Position != 0 {
		t.Errorf("row0 crossing at position 0 = %+v, want entry %d pos 0", cr, col0.ID)
	}
	cr2 := col0.Crossings[0]
	if cr2.EntryID != row0.ID || cr2.Position != 0 {
		t.Errorf("col0 crossing at position 0 = %+v, want entry %d pos 0", cr2, row0.ID)
	}
}

func TestBuild_FixedLetterRecorded(t *testing.T) {
	g, err := Build(emptyBlocked(2, 2), []FixedLetter{{Row: 0, Col: 1, Letter: 'X'}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cell := g.CellAt(Pos{Row: 0, Col: 1})
	if !cell.Fixed || cell.FixedLetter != 'X' {
		t.Errorf("expected cell (0,1) fixed to X, got %+v", cell)
	}
	other := g.CellAt(Pos{Row: 0, Col: 0})
	if other.Fixed {
		t.Errorf("expected cell (0,0) to not be fixed, got %+v", other)
	}
}

func TestBuild_InconsistentFixedLetters(t *testing.T) {
	_, err := Build(emptyBlocked(2, 2), []FixedLetter{
		{Row: 0, Col: 0, Letter: 'A'},
		{Row: 0, Col: 0, Letter: 'B'},
	})
	if err != ErrInconsistentFixedLetters {
		t.Fatalf("expected ErrInconsistentFixedLetters, got %v", err)
	}
}

func TestBuild_SameFixedLetterTwiceIsNotInconsistent(t *testing.T) {
	_, err := Build(emptyBlocked(2, 2), []FixedLetter{
		{Row: 0, Col: 0, Letter: 'A'},
		{Row: 0, Col: 0, Letter: 'A'},
	})
	if err != nil {
		t.Fatalf("expected no error for a repeated identical fixed letter, got %v", err)
	}
}

func TestBuild_FullyBlockedGridHasNoEntries(t *testing.T) {
	blocked := emptyBlocked(3, 3)
	for r := range blocked {
		for c := range blocked[r] {
			blocked[r][c] = true
		}
	}
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Entries) != 0 {
		t.Errorf("expected no entries in a fully blocked grid, got %d", len(g.Entries))
	}
}

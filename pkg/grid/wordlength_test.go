package grid

import "testing"

func TestShortEntries_NoneBelowThreshold(t *testing.T) {
	g, err := Build(emptyBlocked(4, 4), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if ids := ShortEntries(g); len(ids) != 0 {
		t.Errorf("expected no short entries in a 4x4 open grid, got %v", ids)
	}
}

func TestShortEntries_FlagsLengthTwo(t *testing.T) {
	// a 2x4 grid has across entries of length 4 and down entries of length 2
	g, err := Build(emptyBlocked(2, 4), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ids := ShortEntries(g)
	if len(ids) == 0 {
		t.Fatal("expected the length-2 down entries to be flagged")
	}
	for _, id := range ids {
		if g.Entry(id).Length >= MinWordLength {
			t.Errorf("entry %d has length %d, should not have been flagged", id, g.Entry(id).Length)
		}
	}
}

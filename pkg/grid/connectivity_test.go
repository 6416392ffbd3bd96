package grid

import "testing"

func emptyBlocked(rows, cols int) [][]bool {
	b := make([][]bool, rows)
	for r := range b {
		b[r] = make([]bool, cols)
	}
	return b
}

func TestIsConnected_EmptyGrid(t *testing.T) {
	g, err := Build(emptyBlocked(5, 5), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !IsConnected(g) {
		t.Error("all-open grid should be connected")
	}
}

func TestIsConnected_HorizontalWall(t *testing.T) {
	blocked := emptyBlocked(5, 5)
	for c := 0; c < 5; c++ {
		blocked[2][c] = true
	}
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if IsConnected(g) {
		t.Error("grid split by a full horizontal wall should be disconnected")
	}
}

func TestIsConnected_VerticalWall(t *testing.T) {
	blocked := emptyBlocked(5, 5)
	for r := 0; r < 5; r++ {
		blocked[r][2] = true
	}
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if IsConnected(g) {
		t.Error("grid split by a full vertical wall should be disconnected")
	}
}

func TestIsConnected_ScatteredBlocks(t *testing.T) {
	blocked := emptyBlocked(7, 7)
	blocked[0][0] = true
	blocked[6][6] = true
	blocked[3][5] = true
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !IsConnected(g) {
		t.Error("scattered blocks that don't wall off a region should stay connected")
	}
}

func TestIsConnected_AllBlocked(t *testing.T) {
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
	if !IsConnected(g) {
		t.Error("a grid with no open cells is vacuously connected")
	}
}

func TestIsConnected_NilGrid(t *testing.T) {
	if !IsConnected(nil) {
		t.Error("nil grid should be vacuously connected")
	}
}

func TestIsConnected_TwoDisjointRegions(t *testing.T) {
	blocked := emptyBlocked(3, 5)
	for r := 0; r < 3; r++ {
		blocked[r][2] = true
	}
	g, err := Build(blocked, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if IsConnected(g) {
		t.Error("two regions split by a full column wall should be disconnected")
	}
}

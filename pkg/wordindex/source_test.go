package wordindex

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestFileWords_SingleFileAnswerColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	content := "clue,answer\n\"capital of france\",paris\n\"big cat\",tiger\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	words, err := FileWords{Path: path}.Words()
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	sort.Strings(words)
	want := []string{"paris", "tiger"}
	if len(words) != 2 || words[0] != want[0] || words[1] != want[1] {
		t.Errorf("Words() = %v, want %v", words, want)
	}
}

func TestFileWords_MissingAnswerColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	if err := os.WriteFile(path, []byte("clue,word\nx,y\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := FileWords{Path: path}.Words()
	if err == nil {
		t.Fatal("expected an error for a missing answer column")
	}
}

func TestFileWords_Glob(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(a, []byte("answer\nCAT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("answer\nDOG\n"), 0644); err != nil {
		t.Fatal(err)
	}

	words, err := FileWords{Path: filepath.Join(dir, "*.csv")}.Words()
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	sort.Strings(words)
	if len(words) != 2 || words[0] != "CAT" || words[1] != "DOG" {
		t.Errorf("Words() = %v, want [CAT DOG]", words)
	}
}

func TestFileWords_NoMatches(t *testing.T) {
	dir := t.TempDir()
	_, err := FileWords{Path: filepath.Join(dir, "*.csv")}.Words()
	if err == nil {
		t.Fatal("expected an error when no files match the glob")
	}
}

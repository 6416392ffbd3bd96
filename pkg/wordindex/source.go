package wordindex

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidWordList is returned for malformed or missing word-list input.
var ErrInvalidWordList = fmt.Errorf("wordindex: invalid word list")

// Source supplies the raw, unfiltered strings Build consumes. It is the
// capability interface behind which the two concrete suppliers
// (DictionaryWords, FileWords) are dispatched; no open extension is
// required by the core.
type Source interface {
	// Words returns every candidate string; Build applies all
	// normalization and filtering.
	Words() ([]string, error)
}

// DictionaryWords supplies the built-in English dictionary (embedded,
// length >= 2).
type DictionaryWords struct{}

// Words implements Source.
func (DictionaryWords) Words() ([]string, error) {
	lines := strings.Split(strings.TrimSpace(dictionaryData), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out, nil
}

// FileWords supplies words read from one or more CSV files, each
// containing a column named "answer". Path may be a single file or a
// glob pattern (e.g. "words/*.csv").
type FileWords struct {
	Path string
}

// Words implements Source.
func (f FileWords) Words() ([]string, error) {
	matches, err := filepath.Glob(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: bad glob %q: %v", ErrInvalidWordList, f.Path, err)
	}
	if len(matches) == 0 {
		// Not a glob pattern, or a glob with no matches: try the literal path.
		if _, statErr := os.Stat(f.Path); statErr == nil {
			matches = []string{f.Path}
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match %q", ErrInvalidWordList, f.Path)
	}
	sort.Strings(matches)

	var words []string
	for _, path := range matches {
		fileWords, err := readAnswerColumn(path)
		if err != nil {
			return nil, err
		}
		words = append(words, fileWords...)
	}
	return words, nil
}

func readAnswerColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %q: %v", ErrInvalidWordList, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header of %q: %v", ErrInvalidWordList, path, err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "answer") {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("%w: %q has no \"answer\" column", ErrInvalidWordList, path)
	}

	var words []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %q: %v", ErrInvalidWordList, path, err)
		}
		if col < len(record) {
			words = append(words, record[col])
		}
	}
	return words, nil
}

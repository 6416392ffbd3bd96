package grid

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidLayout is returned for malformed or non-rectangular layout input.
var ErrInvalidLayout = errors.New("grid: invalid layout")

// LayoutSource supplies the raw cell map and fixed letters Build
// consumes. The two concrete variants below are the closed set the core
// needs; no open extension is required.
type LayoutSource interface {
	Layout() (blocked [][]bool, fixed []FixedLetter, err error)
}

// NewLayout is the synthetic generator: an all-open grid of the given
// dimensions, with no fixed letters.
type NewLayout struct {
	Rows, Cols int
}

// Layout implements LayoutSource.
func (l NewLayout) Layout() ([][]bool, []FixedLetter, error) {
	if l.Rows <= 0 || l.Cols <= 0 {
		return nil, nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidLayout, l.Rows, l.Cols)
	}
	blocked := make([][]bool, l.Rows)
	for r := range blocked {
		blocked[r] = make([]bool, l.Cols)
	}
	return blocked, nil, nil
}

// ExistingLayout reads a layout from a CSV file (or glob matching
// exactly one file). The CSV has an index column and a header row;
// blocked cells are empty strings, open-free cells are "_", open-fixed
// cells hold a single uppercase letter. The separator (comma or
// semicolon) is auto-detected from the header line.
type ExistingLayout struct {
	Path string
}

// Layout implements LayoutSource.
func (l ExistingLayout) Layout() ([][]bool, []FixedLetter, error) {
	path, err := resolveSingle(l.Path)
	if err != nil {
		return nil, nil, err
	}

	sep, err := sniffSeparator(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open %q: %v", ErrInvalidLayout, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = sep
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse %q: %v", ErrInvalidLayout, path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: %q has no data rows", ErrInvalidLayout, path)
	}

	header := records[0]
	cols := len(header) - 1
	if cols <= 0 {
		return nil, nil, fmt.Errorf("%w: %q has no data columns", ErrInvalidLayout, path)
	}

	dataRows := records[1:]
	blocked := make([][]bool, len(dataRows))
	var fixed []FixedLetter

	for r, row := range dataRows {
		if len(row)-1 != cols {
			return nil, nil, fmt.Errorf("%w: %q row %d has %d cells, want %d", ErrInvalidLayout, path, r, len(row)-1, cols)
		}
		blocked[r] = make([]bool, cols)
		for c, raw := range row[1:] {
			cell := strings.TrimSpace(raw)
			switch {
			case cell == "":
				blocked[r][c] = true
			case cell == "_":
				// open-free: nothing to record
			case len(cell) == 1 && isASCIILetter(cell[0]):
				fixed = append(fixed, FixedLetter{Row: r, Col: c, Letter: toUpperByte(cell[0])})
			default:
				return nil, nil, fmt.Errorf("%w: %q row %d col %d has invalid cell %q", ErrInvalidLayout, path, r, c, raw)
			}
		}
	}

	return blocked, fixed, nil
}

func resolveSingle(path string) (string, error) {
	matches, err := filepath.Glob(path)
	if err != nil {
		return "", fmt.Errorf("%w: bad glob %q: %v", ErrInvalidLayout, path, err)
	}
	if len(matches) == 0 {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: no files match %q", ErrInvalidLayout, path)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w: %q matches %d files, want exactly one", ErrInvalidLayout, path, len(matches))
	}
	return matches[0], nil
}

func sniffSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to open %q: %v", ErrInvalidLayout, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, fmt.Errorf("%w: %q is empty", ErrInvalidLayout, path)
	}
	line := scanner.Text()

	commas := strings.Count(line, ",")
	semicolons := strings.Count(line, ";")
	if semicolons > commas {
		return ';', nil
	}
	return ',', nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

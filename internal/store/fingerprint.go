package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// FingerprintWords hashes a word list order-independently: two sources
// that supply the same words in different orders fingerprint identically,
// matching wordindex.Build's own dedup-before-order semantics.
func FingerprintWords(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	h, _ := blake2b.New256(nil)
	for _, w := range sorted {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// FingerprintLayout hashes a blocked-cell map plus its fixed letters.
// Row order is significant (it is the layout's actual shape); fixed
// letters are sorted by (row, col) first so two equal sets fingerprint
// identically regardless of supplier iteration order.
func FingerprintLayout(blocked [][]bool, fixed []FixedLetterFingerprint) string {
	h, _ := blake2b.New256(nil)

	for _, row := range blocked {
		var sb strings.Builder
		for _, b := range row {
			if b {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		h.Write([]byte(sb.String()))
		h.Write([]byte{'\n'})
	}

	sortedFixed := append([]FixedLetterFingerprint(nil), fixed...)
	sort.Slice(sortedFixed, func(i, j int) bool {
		if sortedFixed[i].Row != sortedFixed[j].Row {
			return sortedFixed[i].Row < sortedFixed[j].Row
		}
		return sortedFixed[i].Col < sortedFixed[j].Col
	})
	for _, f := range sortedFixed {
		h.Write([]byte(strconv.Itoa(f.Row)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.Itoa(f.Col)))
		h.Write([]byte{'='})
		h.Write([]byte{f.Letter})
		h.Write([]byte{';'})
	}

	return fmt.Sprintf("%x", h.Sum(nil))
}

// FixedLetterFingerprint is the minimal shape FingerprintLayout needs,
// kept free of a pkg/grid import so store has no dependency on the core.
type FixedLetterFingerprint struct {
	Row, Col int
	Letter   byte
}

// RunKey combines a layout and word fingerprint with the run parameters
// that affect the outcome (same layout, word list, iteration budget,
// and seed always produce the same result) into one cache key.
func RunKey(layoutFingerprint, wordFingerprint string, maxIterations int, seed int64) string {
	return fmt.Sprintf("fill:%s:%s:%d:%d", layoutFingerprint, wordFingerprint, maxIterations, seed)
}

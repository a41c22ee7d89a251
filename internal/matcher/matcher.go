// Package matcher decides whether a free-text answer is close enough to the expected one.
// Every function is pure and safe for concurrent use; malformed input degrades to a
// similarity of 0 or a negative verdict instead of an error.
package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// DefaultThreshold is the similarity an answer needs to count as correct in the recall game.
const DefaultThreshold = 0.8

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Distance returns the Levenshtein distance between a and b after trimming and lower-casing both.
// The distance is counted in runes, so umlauts cost a single edit.
func Distance(a, b string) int {
	return levenshtein.Distance(normalize(a), normalize(b), nil)
}

// Similarity returns 1 - distance / max(len(a), len(b)) on the normalized strings.
// An empty input yields 0; two strings that are blank after trimming yield 1.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	na, nb := normalize(a), normalize(b)
	maxLen := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))
	if maxLen == 0 {
		return 1
	}
	distance := levenshtein.Distance(na, nb, nil)
	return float64(maxLen-distance) / float64(maxLen)
}

// IsCloseMatch is the verdict used by the recall game: a case-insensitive exact match,
// or a similarity of at least threshold. A non-positive threshold falls back to DefaultThreshold.
func IsCloseMatch(input, answer string, threshold float64) bool {
	if input == "" || answer == "" {
		return false
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if normalize(input) == normalize(answer) {
		return true
	}
	return Similarity(input, answer) >= threshold
}

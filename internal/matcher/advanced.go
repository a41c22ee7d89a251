package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MatchType tells which strategy accepted or rejected an answer.
type MatchType string

const (
	MatchNone         MatchType = "none"
	MatchExact        MatchType = "exact"
	MatchPartial      MatchType = "partial"
	MatchAbbreviation MatchType = "abbreviation"
	MatchSimilar      MatchType = "similar"
	MatchDifferent    MatchType = "different"
)

const (
	minPartialRatio        = 0.6
	abbreviationSimilarity = 0.9
)

// MatchResult is the structured outcome of AdvancedMatch, meant for answer feedback.
type MatchResult struct {
	IsMatch    bool      `json:"is_match"`
	Similarity float64   `json:"similarity"`
	Type       MatchType `json:"match_type"`
}

type matchOptions struct {
	threshold         float64
	allowPartial      bool
	ignoreAccents     bool
	allowAbbreviation bool
}

// MatchOption configures AdvancedMatch.
type MatchOption func(*matchOptions)

// WithThreshold sets the similarity threshold of the final fuzzy layer.
func WithThreshold(threshold float64) MatchOption {
	return func(o *matchOptions) {
		if threshold > 0 {
			o.threshold = threshold
		}
	}
}

// WithPartialMatch toggles the substring layer.
func WithPartialMatch(enabled bool) MatchOption {
	return func(o *matchOptions) {
		o.allowPartial = enabled
	}
}

// WithIgnoreAccents toggles diacritic folding before the exact and partial layers.
func WithIgnoreAccents(enabled bool) MatchOption {
	return func(o *matchOptions) {
		o.ignoreAccents = enabled
	}
}

// WithAbbreviations toggles the initials layer for multi-word answers.
func WithAbbreviations(enabled bool) MatchOption {
	return func(o *matchOptions) {
		o.allowAbbreviation = enabled
	}
}

// AdvancedMatch tries exact, partial, abbreviation and fuzzy matching in that order
// and reports the first strategy that accepts the input.
func AdvancedMatch(input, answer string, opts ...MatchOption) MatchResult {
	options := matchOptions{
		threshold:         DefaultThreshold,
		allowPartial:      true,
		ignoreAccents:     true,
		allowAbbreviation: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if input == "" || answer == "" {
		return MatchResult{Type: MatchNone}
	}

	normalizedInput := normalize(input)
	normalizedAnswer := normalize(answer)
	if options.ignoreAccents {
		normalizedInput = stripAccents(normalizedInput)
		normalizedAnswer = stripAccents(normalizedAnswer)
	}

	if normalizedInput == normalizedAnswer {
		return MatchResult{IsMatch: true, Similarity: 1, Type: MatchExact}
	}

	if options.allowPartial {
		if ratio, ok := partialRatio(normalizedInput, normalizedAnswer); ok && ratio >= minPartialRatio {
			return MatchResult{IsMatch: true, Similarity: ratio, Type: MatchPartial}
		}
	}

	if options.allowAbbreviation && isAbbreviation(normalizedInput, normalizedAnswer) {
		return MatchResult{IsMatch: true, Similarity: abbreviationSimilarity, Type: MatchAbbreviation}
	}

	similarity := Similarity(input, answer)
	if similarity >= options.threshold {
		return MatchResult{IsMatch: true, Similarity: similarity, Type: MatchSimilar}
	}
	return MatchResult{Similarity: similarity, Type: MatchDifferent}
}

// partialRatio reports the length ratio shorter/longer when one string contains the other.
func partialRatio(a, b string) (float64, bool) {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0, false
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longer, shorter := max(la, lb), min(la, lb)
	if longer == 0 {
		return 1, true
	}
	return float64(shorter) / float64(longer), true
}

// isAbbreviation accepts "t. m", "t.m" and the genus form "t. merula" for "turdus merula".
func isAbbreviation(input, answer string) bool {
	words := strings.Fields(answer)
	if len(words) < 2 {
		return false
	}

	initials := make([]string, len(words))
	for i, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		initials[i] = string(r)
	}
	spaced := strings.Join(initials, ". ")
	genus := initials[0] + ". " + strings.Join(words[1:], " ")

	candidates := []string{
		spaced,
		strings.ReplaceAll(spaced, ". ", "."),
		genus,
		strings.ReplaceAll(genus, ". ", "."),
	}
	for _, candidate := range candidates {
		if input == candidate {
			return true
		}
	}
	return false
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

package matcher

import "sort"

const (
	// DefaultMaxSuggestions is used when Suggestions is called with a non-positive limit.
	DefaultMaxSuggestions = 3
	minSuggestionScore    = 0.3
)

// Suggestion is a "did you mean" candidate.
type Suggestion struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// Suggestions ranks candidates by similarity to input, drops those below 0.3 and
// returns at most maxSuggestions of them.
func Suggestions(input string, candidates []string, maxSuggestions int) []Suggestion {
	if input == "" || len(candidates) == 0 {
		return nil
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		score := Similarity(input, candidate)
		if score < minSuggestionScore {
			continue
		}
		suggestions = append(suggestions, Suggestion{Text: candidate, Similarity: score})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

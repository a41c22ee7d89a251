package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestions(t *testing.T) {
	candidates := []string{"Kohlmeise", "Amsel", "Amsle", "Zilpzalp", "Blaumeise"}

	t.Run("ranks by similarity and applies the limit", func(t *testing.T) {
		got := Suggestions("amsel", candidates, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "Amsel", got[0].Text)
		assert.Equal(t, 1.0, got[0].Similarity)
		assert.Equal(t, "Amsle", got[1].Text)
		assert.InDelta(t, 0.6, got[1].Similarity, 1e-9)
	})

	t.Run("never returns weak candidates and stays sorted", func(t *testing.T) {
		got := Suggestions("meise", candidates, 10)
		require.NotEmpty(t, got)
		for i, s := range got {
			assert.GreaterOrEqual(t, s.Similarity, 0.3, s.Text)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Similarity, s.Similarity)
			}
			assert.NotEqual(t, "Zilpzalp", s.Text)
		}
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		got := Suggestions("a", []string{"a", "ab", "abc", "b"}, 0)
		assert.LessOrEqual(t, len(got), DefaultMaxSuggestions)
	})

	t.Run("no input", func(t *testing.T) {
		assert.Nil(t, Suggestions("", candidates, 3))
		assert.Nil(t, Suggestions("amsel", nil, 3))
	})
}

func TestIsReasonableAttempt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		answer string
		want   bool
	}{
		{name: "genuine attempt", input: "Amsel", answer: "Amsel", want: true},
		{name: "typo with a digit", input: "Ams3l", answer: "Amsel", want: true},
		{name: "umlauts are letters", input: "Grünfink", answer: "Grünfink", want: true},
		{name: "too short", input: "A", answer: "Amsel", want: false},
		{name: "too long", input: "Amselamselamsel", answer: "Amsel", want: false},
		{name: "mostly digits", input: "12345", answer: "Amsel", want: false},
		{name: "empty", input: "", answer: "Amsel", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReasonableAttempt(tt.input, tt.answer))
		})
	}
}

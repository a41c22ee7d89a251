package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "Amsel", b: "Amsel", want: 0},
		{name: "case and surrounding whitespace are ignored", a: "  AMSEL ", b: "amsel", want: 0},
		{name: "single substitution", a: "amzel", b: "Amsel", want: 1},
		{name: "classic example", a: "kitten", b: "sitting", want: 3},
		{name: "umlaut counts as one rune", a: "Rotkehlchen", b: "Rötkehlchen", want: 1},
		{name: "empty against word", a: "", b: "Meise", want: 5},
		{name: "both empty", a: "", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Amsel", "Drossel"},
		{"Turdus merula", "T. merula"},
		{"", "Kohlmeise"},
		{"Zaunkönig", "zaunkonig"},
		{"Buchfink", "Bergfink"},
	}
	for _, pair := range pairs {
		assert.Equal(t, Distance(pair[0], pair[1]), Distance(pair[1], pair[0]), "%q vs %q", pair[0], pair[1])
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "Amsel", b: "Amsel", want: 1},
		{name: "one typo in five letters", a: "amzel", b: "Amsel", want: 0.8},
		{name: "nothing in common", a: "xyz", b: "Amsel", want: 0},
		{name: "absent input", a: "", b: "Amsel", want: 0},
		{name: "absent answer", a: "Amsel", b: "", want: 0},
		{name: "blank strings are equal", a: "  ", b: " ", want: 1},
		{name: "blank against word", a: "   ", b: "Star", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_SelfIsOne(t *testing.T) {
	for _, s := range []string{"Amsel", "Turdus merula", "  Grünfink ", "a", "Æ"} {
		assert.Equal(t, 1.0, Similarity(s, s), s)
		assert.True(t, IsCloseMatch(s, s, DefaultThreshold), s)
	}
}

func TestIsCloseMatch(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		answer    string
		threshold float64
		want      bool
	}{
		{name: "case-insensitive exact", input: "amsel", answer: "Amsel", threshold: 0.8, want: true},
		{name: "one-edit typo reaches threshold", input: "amzel", answer: "Amsel", threshold: 0.8, want: true},
		{name: "unrelated answer", input: "xyz", answer: "Amsel", threshold: 0.8, want: false},
		{name: "two typos miss threshold", input: "amzl", answer: "Amsel", threshold: 0.8, want: false},
		{name: "looser threshold accepts two typos", input: "amzl", answer: "Amsel", threshold: 0.5, want: true},
		{name: "zero threshold uses default", input: "amzel", answer: "Amsel", threshold: 0, want: true},
		{name: "empty input", input: "", answer: "Amsel", threshold: 0.8, want: false},
		{name: "empty answer", input: "Amsel", answer: "", threshold: 0.8, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCloseMatch(tt.input, tt.answer, tt.threshold))
		})
	}
}

package matcher

import (
	"unicode"
	"unicode/utf8"
)

const (
	minLengthRatio = 0.3
	maxLengthRatio = 2.0
	minLetterRatio = 0.7
)

// IsReasonableAttempt filters out input that is obviously not an attempt at answer:
// far too short or too long, or mostly made of non-letters. It is advisory only.
func IsReasonableAttempt(input, answer string) bool {
	if input == "" || answer == "" {
		return false
	}

	inputLen := utf8.RuneCountInString(input)
	answerLen := float64(utf8.RuneCountInString(answer))
	if float64(inputLen) < answerLen*minLengthRatio {
		return false
	}
	if float64(inputLen) > answerLen*maxLengthRatio {
		return false
	}

	letters := 0
	for _, r := range input {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters)/float64(inputLen) >= minLetterRatio
}

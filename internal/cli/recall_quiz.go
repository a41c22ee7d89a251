package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/matcher"
	"github.com/at-ishikawa/birdling/internal/scheduler"
)

// RecallQuizCLI asks for the name of a bird and checks the typed answer.
type RecallQuizCLI struct {
	*InteractiveQuizCLI
	threshold float64
	lenient   bool
	names     []string
}

// NewRecallQuizCLI creates a recall session. Answers are accepted when they are at
// least threshold similar to the name; lenient also accepts parts of the name and initials.
func NewRecallQuizCLI(ctx context.Context, s PracticeScheduler, learnerID int64, batchSize int, threshold float64, lenient bool, terminal *IO) (*RecallQuizCLI, error) {
	base, err := newInteractiveQuizCLI(ctx, s, learnerID, batchSize, terminal)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(base.cards))
	for _, card := range base.cards {
		names = append(names, card.Item.DisplayName())
	}
	return &RecallQuizCLI{
		InteractiveQuizCLI: base,
		threshold:          threshold,
		lenient:            lenient,
		names:              names,
	}, nil
}

func (r *RecallQuizCLI) Session(ctx context.Context) error {
	card, ok := r.nextCard()
	if !ok {
		return r.finish()
	}

	_, _ = fmt.Fprintf(r.stdoutWriter, "%s\n", r.italic.Sprint(card.Item.ScientificName))
	_, _ = fmt.Fprint(r.stdoutWriter, "Name: ")
	startTime := time.Now()
	input, err := r.readLine()
	if err != nil {
		return r.endOr(err)
	}
	if isQuit(input) {
		return r.finish()
	}
	responseTime := time.Since(startTime)

	answer := card.Item.DisplayName()
	correct := r.isCorrect(input, answer)
	if correct {
		_, _ = fmt.Fprint(r.stdoutWriter, "✅ ")
		_, _ = r.green.Fprintf(r.stdoutWriter, "It's correct: %s\n", r.bold.Sprint(answer))
	} else {
		_, _ = fmt.Fprint(r.stdoutWriter, "❌ ")
		_, _ = r.red.Fprintf(r.stdoutWriter, "It's wrong. The name is %s\n", r.bold.Sprint(answer))
		r.printHint(input, answer)
	}

	return r.record(ctx, card, correct, scheduler.WithMode(learning.ModeRecall), scheduler.WithResponseTime(responseTime))
}

func (r *RecallQuizCLI) isCorrect(input, answer string) bool {
	if r.lenient {
		return matcher.AdvancedMatch(input, answer, matcher.WithThreshold(r.threshold)).IsMatch
	}
	return matcher.IsCloseMatch(input, answer, r.threshold)
}

// printHint tells the learner which other bird of the session the answer resembles.
func (r *RecallQuizCLI) printHint(input, answer string) {
	if !matcher.IsReasonableAttempt(input, answer) {
		return
	}
	for _, suggestion := range matcher.Suggestions(input, r.names, 1) {
		if suggestion.Text == answer {
			_, _ = fmt.Fprintf(r.stdoutWriter, "Close: %.0f%% similar\n", suggestion.Similarity*100)
			continue
		}
		_, _ = fmt.Fprintf(r.stdoutWriter, "Did you mean %s?\n", suggestion.Text)
	}
}

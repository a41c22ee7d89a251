package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/scheduler"
)

// RecognitionQuizCLI shows a bird and lets the learner judge whether they knew its name.
type RecognitionQuizCLI struct {
	*InteractiveQuizCLI
}

func NewRecognitionQuizCLI(ctx context.Context, s PracticeScheduler, learnerID int64, batchSize int, terminal *IO) (*RecognitionQuizCLI, error) {
	base, err := newInteractiveQuizCLI(ctx, s, learnerID, batchSize, terminal)
	if err != nil {
		return nil, err
	}
	return &RecognitionQuizCLI{InteractiveQuizCLI: base}, nil
}

func (r *RecognitionQuizCLI) Session(ctx context.Context) error {
	card, ok := r.nextCard()
	if !ok {
		return r.finish()
	}

	_, _ = fmt.Fprintf(r.stdoutWriter, "%s\n", r.italic.Sprint(card.Item.ScientificName))
	_, _ = fmt.Fprint(r.stdoutWriter, "Press Enter to reveal the name: ")
	startTime := time.Now()
	input, err := r.readLine()
	if err != nil {
		return r.endOr(err)
	}
	if isQuit(input) {
		return r.finish()
	}
	responseTime := time.Since(startTime)

	_, _ = fmt.Fprintf(r.stdoutWriter, "It is %s", r.bold.Sprint(card.Item.DisplayName()))
	if card.Item.EnglishName != "" && card.Item.EnglishName != card.Item.DisplayName() {
		_, _ = fmt.Fprintf(r.stdoutWriter, " (%s)", card.Item.EnglishName)
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)

	for {
		_, _ = fmt.Fprint(r.stdoutWriter, "Did you know it? [y/n]: ")
		answer, err := r.readLine()
		if err != nil {
			return r.endOr(err)
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return r.record(ctx, card, true, scheduler.WithMode(learning.ModeRecognition), scheduler.WithResponseTime(responseTime))
		case "n", "no":
			return r.record(ctx, card, false, scheduler.WithMode(learning.ModeRecognition), scheduler.WithResponseTime(responseTime))
		case "quit", "exit":
			return r.finish()
		}
	}
}

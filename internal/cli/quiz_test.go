package cli

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/birdling/internal/learning"
	mock_cli "github.com/at-ishikawa/birdling/internal/mocks/cli"
	"github.com/at-ishikawa/birdling/internal/scheduler"
)

var now = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

// setupScheduler returns a scheduler over two birds that are always selected
// in the same order: the robin was never practiced, the great tit was.
func setupScheduler(t *testing.T) (*scheduler.Scheduler, *learning.MemoryRepository) {
	t.Helper()
	ctx := context.Background()
	repo := learning.NewMemoryRepository()

	robin := learning.Item{ScientificName: "Erithacus rubecula", GermanName: "Rotkehlchen", EnglishName: "European Robin"}
	tit := learning.Item{ScientificName: "Parus major", GermanName: "Kohlmeise"}
	require.NoError(t, repo.Create(ctx, &robin))
	require.NoError(t, repo.Create(ctx, &tit))

	robinRecord := learning.NewMasteryRecord(1, robin.ID, now.AddDate(0, 0, -20))
	require.NoError(t, repo.CreateRecord(ctx, &robinRecord))
	titRecord := learning.NewMasteryRecord(1, tit.ID, now.AddDate(0, 0, -20))
	practiced := now.AddDate(0, 0, -10)
	titRecord.LastPracticedAt = &practiced
	require.NoError(t, repo.CreateRecord(ctx, &titRecord))

	return scheduler.New(repo,
		scheduler.WithClock(func() time.Time { return now }),
		scheduler.WithRand(rand.New(rand.NewSource(1))),
	), repo
}

func TestRecognitionQuizCLI(t *testing.T) {
	tests := []struct {
		name  string
		input string

		wantCorrect []bool
		wantOutput  []string
	}{
		{
			name:        "answers every card",
			input:       "\ny\n\nmaybe\nn\n",
			wantCorrect: []bool{true, false},
			wantOutput: []string{
				"Erithacus rubecula\nPress Enter to reveal the name: It is Rotkehlchen (European Robin)\n",
				"It is Kohlmeise\n",
				"Did you know it? [y/n]: Did you know it? [y/n]: ",
				"Practice session ended: 1 of 2 correct (50%)",
			},
		},
		{
			name:        "quit before revealing",
			input:       "quit\n",
			wantCorrect: nil,
			wantOutput:  []string{"Practice session ended.\n"},
		},
		{
			name:        "end of input",
			input:       "\ny\n",
			wantCorrect: []bool{true},
			wantOutput:  []string{"Practice session ended: 1 of 1 correct (100%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, repo := setupScheduler(t)
			var out bytes.Buffer
			quiz, err := NewRecognitionQuizCLI(ctx, s, 1, 5, &IO{In: strings.NewReader(tt.input), Out: &out})
			require.NoError(t, err)
			assert.Equal(t, 2, quiz.CardCount())

			require.NoError(t, Run(ctx, quiz))
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}

			attempts, err := repo.FindAttempts(ctx, 1)
			require.NoError(t, err)
			require.Len(t, attempts, len(tt.wantCorrect))
			for i, attempt := range attempts {
				assert.Equal(t, tt.wantCorrect[i], attempt.Correct)
				assert.Equal(t, learning.ModeRecognition, attempt.Mode)
				require.NotNil(t, attempt.SessionID)
				assert.Equal(t, quiz.sessionID, *attempt.SessionID)
			}
		})
	}
}

func TestRecallQuizCLI(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		threshold float64
		lenient   bool

		wantCorrect []bool
		wantOutput  []string
		wantNoHint  bool
	}{
		{
			name:        "typos are accepted",
			input:       "Rotkelchen\nBlaumeise\n",
			threshold:   0.8,
			wantCorrect: []bool{true, false},
			wantOutput: []string{
				"✅ It's correct: Rotkehlchen",
				"❌ It's wrong. The name is Kohlmeise\nClose: 56% similar\n",
				"Practice session ended: 1 of 2 correct (50%)",
			},
		},
		{
			name:        "a name of another bird",
			input:       "rotkehlchen\nRotkehlchen\n",
			threshold:   0.8,
			wantCorrect: []bool{true, false},
			wantOutput:  []string{"Did you mean Rotkehlchen?"},
		},
		{
			name:        "strict threshold",
			input:       "Rotkelchen\nquit\n",
			threshold:   0.95,
			wantCorrect: []bool{false},
			wantOutput:  []string{"It's wrong. The name is Rotkehlchen"},
		},
		{
			name:        "lenient matching accepts part of the name",
			input:       "Rotkehl\nKohlmeis\n",
			threshold:   0.8,
			lenient:     true,
			wantCorrect: []bool{true, true},
		},
		{
			name:        "nonsense gets no hint",
			input:       "!!!\nexit\n",
			threshold:   0.8,
			wantCorrect: []bool{false},
			wantNoHint:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, repo := setupScheduler(t)
			var out bytes.Buffer
			quiz, err := NewRecallQuizCLI(ctx, s, 1, 5, tt.threshold, tt.lenient, &IO{In: strings.NewReader(tt.input), Out: &out})
			require.NoError(t, err)

			require.NoError(t, Run(ctx, quiz))
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			if tt.wantNoHint {
				assert.NotContains(t, out.String(), "Did you mean")
				assert.NotContains(t, out.String(), "Close:")
			}

			attempts, err := repo.FindAttempts(ctx, 1)
			require.NoError(t, err)
			require.Len(t, attempts, len(tt.wantCorrect))
			for i, attempt := range attempts {
				assert.Equal(t, tt.wantCorrect[i], attempt.Correct)
				assert.Equal(t, learning.ModeRecall, attempt.Mode)
				assert.NotNil(t, attempt.ResponseTimeMs)
			}
			assert.Equal(t, len(tt.wantCorrect), quiz.Score().Total)
		})
	}
}

func TestInteractiveQuizCLI_record(t *testing.T) {
	tests := []struct {
		name       string
		result     scheduler.OutcomeResult
		wantOutput string
	}{
		{name: "promotion", result: scheduler.OutcomeResult{PreviousLevel: 2, NewLevel: 3}, wantOutput: "Level up! ★★★☆☆\n"},
		{name: "reset", result: scheduler.OutcomeResult{PreviousLevel: 4, NewLevel: 1}, wantOutput: "Back to level 1 ★☆☆☆☆\n"},
		{name: "unchanged", result: scheduler.OutcomeResult{PreviousLevel: 5, NewLevel: 5}, wantOutput: "Level ★★★★★\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			s := mock_cli.NewMockPracticeScheduler(ctrl)
			card := learning.CollectionEntry{Item: learning.Item{ID: 5, ScientificName: "Parus major"}}
			s.EXPECT().SelectBatch(gomock.Any(), int64(1), 3).Return([]learning.CollectionEntry{card}, nil)
			s.EXPECT().RecordOutcome(gomock.Any(), int64(1), int64(5), true, gomock.Any()).Return(tt.result, nil)

			var out bytes.Buffer
			cli, err := newInteractiveQuizCLI(ctx, s, 1, 3, &IO{In: strings.NewReader(""), Out: &out})
			require.NoError(t, err)

			require.NoError(t, cli.record(ctx, card, true))
			assert.Equal(t, tt.wantOutput+"\n", out.String())
			assert.Equal(t, 0, cli.CardCount())
			assert.Equal(t, scheduler.Score{Correct: 1, Total: 1}, cli.Score())
		})
	}
}

func TestNewRecallQuizCLI_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	s := scheduler.New(learning.NewMemoryRepository())

	_, err := NewRecallQuizCLI(ctx, s, 1, 5, 0.8, false, &IO{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, scheduler.ErrEmptyCollection)
}

func TestRun(t *testing.T) {
	sessionErr := errors.New("store unavailable")
	tests := []struct {
		name      string
		results   []error
		wantError error
	}{
		{name: "ends normally", results: []error{nil, nil, errEnd}},
		{name: "stops at the first error", results: []error{nil, sessionErr}, wantError: sessionErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mock_cli.NewMockSession(ctrl)
			calls := make([]any, 0, len(tt.results))
			for _, result := range tt.results {
				calls = append(calls, session.EXPECT().Session(gomock.Any()).Return(result))
			}
			gomock.InOrder(calls...)

			err := Run(context.Background(), session)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInteractiveQuizCLI_Finish(t *testing.T) {
	tests := []struct {
		name  string
		score scheduler.Score
		want  string
	}{
		{name: "no answers", score: scheduler.Score{}, want: "Practice session ended.\n"},
		{name: "rounds up", score: scheduler.Score{Correct: 2, Total: 3}, want: "Practice session ended: 2 of 3 correct (67%)\n"},
		{name: "rounds down", score: scheduler.Score{Correct: 1, Total: 3}, want: "Practice session ended: 1 of 3 correct (33%)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			quiz := &InteractiveQuizCLI{score: tt.score, stdoutWriter: &out}

			err := quiz.finish()
			assert.ErrorIs(t, err, errEnd)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

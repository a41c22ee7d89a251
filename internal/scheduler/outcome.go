package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
)

// recentAttemptWindow bounds how far back a promotion streak is counted.
const recentAttemptWindow = 10

var ErrInvalidMode = errors.New("invalid game mode")

type outcomeOptions struct {
	mode         learning.GameMode
	responseTime *time.Duration
	sessionID    *string
}

type OutcomeOption func(*outcomeOptions)

// WithMode sets the game mode of the attempt. Recall is the default.
func WithMode(mode learning.GameMode) OutcomeOption {
	return func(o *outcomeOptions) {
		o.mode = mode
	}
}

func WithResponseTime(d time.Duration) OutcomeOption {
	return func(o *outcomeOptions) {
		o.responseTime = &d
	}
}

// WithSessionID groups the attempt with the other answers of one practice run.
func WithSessionID(id string) OutcomeOption {
	return func(o *outcomeOptions) {
		if id != "" {
			o.sessionID = &id
		}
	}
}

// OutcomeResult describes how one answer changed a mastery record.
type OutcomeResult struct {
	ItemID        int64
	PreviousLevel int
	NewLevel      int
	LevelChanged  bool
	CorrectCount  int
	WrongCount    int
}

// RecordOutcome appends the answer to the attempt log and updates the mastery record
// in one store transaction. A wrong answer resets the level to 1; a correct one
// promotes by one level once the trailing run of correct answers reaches the
// threshold of the current level.
func (s *Scheduler) RecordOutcome(ctx context.Context, learnerID, itemID int64, correct bool, opts ...OutcomeOption) (OutcomeResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("record_outcome", time.Since(start)) }()

	options := outcomeOptions{mode: learning.ModeRecall}
	for _, opt := range opts {
		opt(&options)
	}
	if !options.mode.Valid() {
		return OutcomeResult{}, fmt.Errorf("%w: %q", ErrInvalidMode, options.mode)
	}

	unlock := s.locks.lock(lockKey{learnerID: learnerID, itemID: itemID})
	defer unlock()

	now := s.now()
	var result OutcomeResult
	err := s.repo.UpdateRecord(ctx, learnerID, itemID, func(ctx context.Context, tx learning.RecordTx) error {
		record := tx.Record()
		result = OutcomeResult{ItemID: itemID, PreviousLevel: record.Level}

		attempt := &learning.Attempt{
			Mode:      options.mode,
			Correct:   correct,
			SessionID: options.sessionID,
			CreatedAt: now,
		}
		if options.responseTime != nil {
			ms := options.responseTime.Milliseconds()
			attempt.ResponseTimeMs = &ms
		}
		if err := tx.AppendAttempt(ctx, attempt); err != nil {
			return fmt.Errorf("tx.AppendAttempt() > %w", err)
		}

		if correct {
			record.CorrectCount++
			if record.Level < learning.MaxLevel {
				recent, err := tx.RecentAttempts(ctx, recentAttemptWindow)
				if err != nil {
					return fmt.Errorf("tx.RecentAttempts() > %w", err)
				}
				if trailingCorrect(recent) >= promotionThreshold(record.Level) {
					record.Level++
				}
			}
		} else {
			record.WrongCount++
			record.Level = learning.MinLevel
		}
		record.LastPracticedAt = &now

		if err := tx.SaveRecord(ctx, record); err != nil {
			return fmt.Errorf("tx.SaveRecord() > %w", err)
		}

		result.NewLevel = record.Level
		result.LevelChanged = record.Level != result.PreviousLevel
		result.CorrectCount = record.CorrectCount
		result.WrongCount = record.WrongCount
		return nil
	})
	if errors.Is(err, learning.ErrRecordNotFound) {
		return OutcomeResult{}, ErrItemNotInCollection
	}
	if err != nil {
		return OutcomeResult{}, s.storeError("record_outcome", "repo.UpdateRecord()", err)
	}

	s.metrics.RecordOutcome(string(options.mode), correct)
	s.metrics.RecordLevelChange(result.PreviousLevel, result.NewLevel)
	slog.Default().Debug("recorded outcome",
		slog.Int64("learnerID", learnerID),
		slog.Int64("itemID", itemID),
		slog.Bool("correct", correct),
		slog.Int("previousLevel", result.PreviousLevel),
		slog.Int("newLevel", result.NewLevel),
	)
	return result, nil
}

// Outcome is one answer of a batch submission.
type Outcome struct {
	ItemID       int64
	Correct      bool
	ResponseTime time.Duration
}

// Score summarizes a batch submission.
type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// RecordOutcomes records the answers one after another and scores them.
// Each answer is applied on its own; when one fails, the earlier ones stay recorded
// and the results recorded so far are returned with the error.
func (s *Scheduler) RecordOutcomes(ctx context.Context, learnerID int64, outcomes []Outcome, opts ...OutcomeOption) ([]OutcomeResult, Score, error) {
	results := make([]OutcomeResult, 0, len(outcomes))
	var score Score
	for _, outcome := range outcomes {
		itemOpts := opts
		if outcome.ResponseTime > 0 {
			itemOpts = append(append([]OutcomeOption{}, opts...), WithResponseTime(outcome.ResponseTime))
		}
		result, err := s.RecordOutcome(ctx, learnerID, outcome.ItemID, outcome.Correct, itemOpts...)
		if err != nil {
			return results, score.withPercentage(), fmt.Errorf("record outcome of item %d: %w", outcome.ItemID, err)
		}
		results = append(results, result)

		score.Total++
		if outcome.Correct {
			score.Correct++
		}
	}
	return results, score.withPercentage(), nil
}

// Percent is the share of correct answers rounded to the nearest whole percent, 0 without answers.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) * 100 / float64(s.Total)))
}

func (s Score) withPercentage() Score {
	s.Percentage = s.Percent()
	return s
}

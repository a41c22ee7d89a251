package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
)

var reviewIntervalDays = map[int]int{1: 1, 2: 3, 3: 7, 4: 14, 5: 30}

// ReviewInterval is how long an item at level may rest before it is due again.
// Levels outside 1..5 are clamped.
func ReviewInterval(level int) time.Duration {
	level = max(learning.MinLevel, min(level, learning.MaxLevel))
	return time.Duration(reviewIntervalDays[level]) * 24 * time.Hour
}

// NextReview returns when a record becomes due; never-practiced records are due immediately.
func NextReview(record learning.MasteryRecord) *time.Time {
	if !record.Practiced() {
		return nil
	}
	next := record.LastPracticedAt.Add(ReviewInterval(record.Level))
	return &next
}

func isDue(record learning.MasteryRecord, now time.Time) bool {
	if !record.Practiced() {
		return true
	}
	return now.Sub(*record.LastPracticedAt) > ReviewInterval(record.Level)
}

// DueForReview returns the items whose review interval has passed, or that were never
// practiced, ordered by level and then by how long ago they were practiced.
func (s *Scheduler) DueForReview(ctx context.Context, learnerID int64) ([]learning.CollectionEntry, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("due_for_review", time.Since(start)) }()

	entries, err := s.repo.FindCollection(ctx, learnerID)
	if err != nil {
		return nil, s.storeError("due_for_review", "repo.FindCollection()", err)
	}

	now := s.now()
	due := make([]learning.CollectionEntry, 0, len(entries))
	for _, e := range entries {
		if isDue(e.Record, now) {
			due = append(due, e)
		}
	}
	sortByLevelThenLastPracticed(due)
	return due, nil
}

// sortByLevelThenLastPracticed orders by level, then never-practiced first, then oldest practice first.
func sortByLevelThenLastPracticed(entries []learning.CollectionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Record, entries[j].Record
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Practiced() != b.Practiced() {
			return !a.Practiced()
		}
		if a.Practiced() && !a.LastPracticedAt.Equal(*b.LastPracticedAt) {
			return a.LastPracticedAt.Before(*b.LastPracticedAt)
		}
		return entries[i].Item.ID < entries[j].Item.ID
	})
}

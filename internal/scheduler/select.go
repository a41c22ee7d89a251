package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
)

// SelectBatch returns up to count items of the learner's collection, the ones
// most in need of practice first. Items of equal priority come in random order.
func (s *Scheduler) SelectBatch(ctx context.Context, learnerID int64, count int) ([]learning.CollectionEntry, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("select_batch", time.Since(start)) }()

	entries, err := s.repo.FindCollection(ctx, learnerID)
	if err != nil {
		return nil, s.storeError("select_batch", "repo.FindCollection()", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCollection
	}
	if count <= 0 {
		return []learning.CollectionEntry{}, nil
	}

	now := s.now()
	s.shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return priority(entries[i].Record, now) < priority(entries[j].Record, now)
	})

	if len(entries) > count {
		entries = entries[:count]
	}
	s.metrics.RecordBatch(len(entries))
	slog.Default().Debug("selected practice batch",
		slog.Int64("learnerID", learnerID),
		slog.Int("requested", count),
		slog.Int("selected", len(entries)),
	)
	return entries, nil
}

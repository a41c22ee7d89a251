package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/statistics"
)

const (
	accuracyWindow      = 7 * 24 * time.Hour
	recentActivityLimit = 10
	upNextLimit         = 5
)

// Stats is a snapshot of a learner's progress.
type Stats struct {
	LevelDistribution []statistics.LevelCount `json:"levelDistribution" yaml:"level_distribution"`
	TotalItems        int                     `json:"totalItems" yaml:"total_items"`
	MasteredItems     int                     `json:"masteredItems" yaml:"mastered_items"`
	TotalSessions     int                     `json:"totalSessions" yaml:"total_sessions"`
	RecentAccuracy    int                     `json:"recentAccuracy" yaml:"recent_accuracy"`
	Streak            int                     `json:"streak" yaml:"streak"`
}

func (s *Scheduler) LearningStats(ctx context.Context, learnerID int64) (Stats, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("learning_stats", time.Since(start)) }()

	entries, err := s.repo.FindCollection(ctx, learnerID)
	if err != nil {
		return Stats{}, s.storeError("learning_stats", "repo.FindCollection()", err)
	}
	total, err := s.repo.CountAttempts(ctx, learnerID, time.Time{})
	if err != nil {
		return Stats{}, s.storeError("learning_stats", "repo.CountAttempts(all)", err)
	}

	now := s.now()
	recent, err := s.repo.CountAttempts(ctx, learnerID, now.Add(-accuracyWindow))
	if err != nil {
		return Stats{}, s.storeError("learning_stats", "repo.CountAttempts(recent)", err)
	}
	practiceTimes, err := s.repo.PracticeTimes(ctx, learnerID)
	if err != nil {
		return Stats{}, s.storeError("learning_stats", "repo.PracticeTimes()", err)
	}

	return Stats{
		LevelDistribution: statistics.LevelDistribution(entries),
		TotalItems:        len(entries),
		MasteredItems:     statistics.CountMastered(entries),
		TotalSessions:     total.Total,
		RecentAccuracy:    statistics.AccuracyPercent(recent),
		Streak:            statistics.Streak(practiceTimes, now, s.location),
	}, nil
}

// Activity is an attempt with the item it was about.
type Activity struct {
	Attempt learning.Attempt
	Item    learning.Item
}

// Progress is the learner's overview: where the collection stands, what was
// practiced lately and what comes next.
type Progress struct {
	LevelDistribution []statistics.LevelCount
	RecentActivity    []Activity
	UpNext            []learning.CollectionEntry
}

func (s *Scheduler) Progress(ctx context.Context, learnerID int64) (Progress, error) {
	entries, err := s.repo.FindCollection(ctx, learnerID)
	if err != nil {
		return Progress{}, s.storeError("progress", "repo.FindCollection()", err)
	}
	attempts, err := s.repo.RecentAttempts(ctx, learnerID, recentActivityLimit)
	if err != nil {
		return Progress{}, s.storeError("progress", "repo.RecentAttempts()", err)
	}

	items := make(map[int64]learning.Item, len(entries))
	for _, e := range entries {
		items[e.Item.ID] = e.Item
	}
	activity := make([]Activity, 0, len(attempts))
	for _, a := range attempts {
		activity = append(activity, Activity{Attempt: a, Item: items[a.ItemID]})
	}

	upNext := append([]learning.CollectionEntry(nil), entries...)
	sortByLevelThenLastPracticed(upNext)
	if len(upNext) > upNextLimit {
		upNext = upNext[:upNextLimit]
	}

	return Progress{
		LevelDistribution: statistics.LevelDistribution(entries),
		RecentActivity:    activity,
		UpNext:            upNext,
	}, nil
}

func (s *Scheduler) storeError(operation, call string, err error) error {
	s.metrics.RecordStoreError(operation)
	return fmt.Errorf("%w: %s > %w", ErrStoreUnavailable, call, err)
}

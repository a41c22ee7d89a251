package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/birdling/internal/learning"
)

func entriesWithLevels(levels ...int) []learning.CollectionEntry {
	entries := make([]learning.CollectionEntry, 0, len(levels))
	for i, level := range levels {
		entries = append(entries, learning.CollectionEntry{
			Item:   learning.Item{ID: int64(i + 1)},
			Record: learning.MasteryRecord{ItemID: int64(i + 1), Level: level},
		})
	}
	return entries
}

func TestLevelDistribution(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   []LevelCount
	}{
		{
			name:   "empty collection",
			levels: nil,
			want:   []LevelCount{},
		},
		{
			name:   "only present levels in ascending order",
			levels: []int{5, 1, 3, 1, 5, 1},
			want:   []LevelCount{{Level: 1, Count: 3}, {Level: 3, Count: 1}, {Level: 5, Count: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelDistribution(entriesWithLevels(tt.levels...)))
		})
	}
}

func TestCountMastered(t *testing.T) {
	assert.Equal(t, 2, CountMastered(entriesWithLevels(5, 4, 5, 1)))
	assert.Equal(t, 0, CountMastered(nil))
}

func TestAccuracyPercent(t *testing.T) {
	tests := []struct {
		name  string
		count learning.AttemptCount
		want  int
	}{
		{name: "no attempts", count: learning.AttemptCount{}, want: 0},
		{name: "all correct", count: learning.AttemptCount{Total: 4, Correct: 4}, want: 100},
		{name: "rounds down", count: learning.AttemptCount{Total: 3, Correct: 1}, want: 33},
		{name: "rounds half up", count: learning.AttemptCount{Total: 8, Correct: 5}, want: 63},
		{name: "two thirds", count: learning.AttemptCount{Total: 3, Correct: 2}, want: 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AccuracyPercent(tt.count))
		})
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2025, 6, 10+offset, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{
			name:  "no attempts",
			times: nil,
			want:  0,
		},
		{
			name:  "practiced today only",
			times: []time.Time{day(0, 9), day(0, 8)},
			want:  1,
		},
		{
			name:  "three consecutive days including today",
			times: []time.Time{day(0, 9), day(-1, 20), day(-1, 7), day(-2, 12)},
			want:  3,
		},
		{
			name:  "gap stops the walk",
			times: []time.Time{day(0, 9), day(-1, 9), day(-3, 9), day(-4, 9)},
			want:  2,
		},
		{
			name:  "newest practice yesterday gives zero",
			times: []time.Time{day(-1, 9), day(-2, 9)},
			want:  0,
		},
		{
			name:  "newest practice two days ago",
			times: []time.Time{day(-2, 9), day(-3, 9)},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.times, now, time.UTC))
		})
	}
}

func TestStreak_UsesLearnerTimeZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2025-06-10 16:00 UTC is already 2025-06-11 in Tokyo.
	now := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	times := []time.Time{
		time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, Streak(times, now, tokyo))
	assert.Equal(t, 1, Streak(times, now, time.UTC))
}

func TestPracticeDates(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC),
	}
	want := []time.Time{
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, PracticeDates(times, time.UTC))
}

func TestCalculateMonthlyStatistics(t *testing.T) {
	attempts := []learning.Attempt{
		{ItemID: 1, Correct: true, CreatedAt: time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)},
		{ItemID: 1, Correct: false, CreatedAt: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)},
		{ItemID: 2, Correct: true, CreatedAt: time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)},
		{ItemID: 2, Correct: true, CreatedAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)},
		{ItemID: 3, Correct: true, CreatedAt: time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		name  string
		year  int
		month int
		want  []PeriodStatistics
	}{
		{
			name: "no filter",
			want: []PeriodStatistics{
				{Period: "2024-12", Attempts: 1, Correct: 1, UniqueItems: 1},
				{Period: "2025-01", Attempts: 3, Correct: 2, UniqueItems: 2},
				{Period: "2025-02", Attempts: 1, Correct: 1, UniqueItems: 1},
			},
		},
		{
			name: "year filter",
			year: 2025,
			want: []PeriodStatistics{
				{Period: "2025-01", Attempts: 3, Correct: 2, UniqueItems: 2},
				{Period: "2025-02", Attempts: 1, Correct: 1, UniqueItems: 1},
			},
		},
		{
			name:  "year and month filter",
			year:  2025,
			month: 2,
			want: []PeriodStatistics{
				{Period: "2025-02", Attempts: 1, Correct: 1, UniqueItems: 1},
			},
		},
		{
			name: "no matching period",
			year: 2023,
			want: []PeriodStatistics{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateMonthlyStatistics(attempts, time.UTC, tt.year, tt.month))
		})
	}
	assert.Equal(t, 67, PeriodStatistics{Attempts: 3, Correct: 2}.AccuracyPercent())
}

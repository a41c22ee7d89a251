// Package statistics aggregates attempt logs and mastery records into learning statistics.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
)

// LevelCount is the number of items at one mastery level.
type LevelCount struct {
	Level int `json:"level" yaml:"level"`
	Count int `json:"count" yaml:"count"`
}

// LevelDistribution counts the entries per level, ascending, omitting empty levels.
func LevelDistribution(entries []learning.CollectionEntry) []LevelCount {
	counts := make(map[int]int)
	for _, e := range entries {
		counts[e.Record.Level]++
	}

	distribution := make([]LevelCount, 0, len(counts))
	for level, count := range counts {
		distribution = append(distribution, LevelCount{Level: level, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Level < distribution[j].Level
	})
	return distribution
}

// CountMastered counts entries at the top level.
func CountMastered(entries []learning.CollectionEntry) int {
	mastered := 0
	for _, e := range entries {
		if e.Record.Level == learning.MaxLevel {
			mastered++
		}
	}
	return mastered
}

// AccuracyPercent returns the share of correct attempts as a rounded percentage, 0 when there are none.
func AccuracyPercent(count learning.AttemptCount) int {
	if count.Total == 0 {
		return 0
	}
	return int(math.Round(float64(count.Correct) * 100 / float64(count.Total)))
}

// civilDate maps t to midnight UTC of its calendar date in loc so that
// day differences are not affected by DST.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PracticeDates returns the distinct calendar dates in loc, newest first.
func PracticeDates(times []time.Time, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, t := range times {
		date := civilDate(t, loc)
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})
	return dates
}

// Streak counts consecutive practice days ending today.
// It is 0 when the newest practice is more than a day old, and also when
// nothing was practiced today yet, because the walk starts at today.
func Streak(times []time.Time, now time.Time, loc *time.Location) int {
	dates := PracticeDates(times, loc)
	if len(dates) == 0 {
		return 0
	}

	today := civilDate(now, loc)
	if today.Sub(dates[0]) > 24*time.Hour {
		return 0
	}

	streak := 0
	current := today
	for _, date := range dates {
		if !date.Equal(current) {
			break
		}
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}

// PeriodStatistics holds attempt totals for one month.
type PeriodStatistics struct {
	Period      string // "2025-01"
	Attempts    int
	Correct     int
	UniqueItems int
}

// AccuracyPercent returns the rounded share of correct attempts in the period.
func (p PeriodStatistics) AccuracyPercent() int {
	return AccuracyPercent(learning.AttemptCount{Total: p.Attempts, Correct: p.Correct})
}

// CalculateMonthlyStatistics groups attempts by month in loc, oldest month first.
// It accepts optional year and month filters (0 means no filter).
func CalculateMonthlyStatistics(attempts []learning.Attempt, loc *time.Location, year, month int) []PeriodStatistics {
	type periodData struct {
		attempts int
		correct  int
		items    map[int64]struct{}
	}
	periods := make(map[string]*periodData)

	for _, a := range attempts {
		local := a.CreatedAt.In(loc)
		if !matchesFilter(local.Year(), int(local.Month()), year, month) {
			continue
		}
		key := fmt.Sprintf("%d-%02d", local.Year(), int(local.Month()))
		data, ok := periods[key]
		if !ok {
			data = &periodData{items: make(map[int64]struct{})}
			periods[key] = data
		}
		data.attempts++
		if a.Correct {
			data.correct++
		}
		data.items[a.ItemID] = struct{}{}
	}

	result := make([]PeriodStatistics, 0, len(periods))
	for period, data := range periods {
		result = append(result, PeriodStatistics{
			Period:      period,
			Attempts:    data.attempts,
			Correct:     data.correct,
			UniqueItems: len(data.items),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period < result[j].Period
	})
	return result
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear != 0 && logYear != filterYear {
		return false
	}
	if filterMonth != 0 && logMonth != filterMonth {
		return false
	}
	return true
}

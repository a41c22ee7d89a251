package scheduler

import (
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
)

const outOfRangeLevelWeight = 10

var levelWeights = map[int]int{1: 1, 2: 2, 3: 4, 4: 8, 5: 16}

// priority ranks a record for practice; lower comes first.
func priority(record learning.MasteryRecord, now time.Time) int {
	return levelWeight(record) + recencyWeight(record, now)
}

// levelWeight is 0 for never-practiced items regardless of their level.
func levelWeight(record learning.MasteryRecord) int {
	if !record.Practiced() {
		return 0
	}
	weight, ok := levelWeights[record.Level]
	if !ok {
		return outOfRangeLevelWeight
	}
	return weight
}

func recencyWeight(record learning.MasteryRecord, now time.Time) int {
	if !record.Practiced() {
		return 0
	}
	elapsed := now.Sub(*record.LastPracticedAt)
	switch {
	case elapsed >= 7*24*time.Hour:
		return 0
	case elapsed >= 3*24*time.Hour:
		return 2
	case elapsed >= 24*time.Hour:
		return 4
	default:
		return 8
	}
}

// promotionThreshold is how many trailing correct answers a level needs before it is promoted.
func promotionThreshold(level int) int {
	switch level {
	case 1:
		return 2
	case 2:
		return 3
	case 3:
		return 4
	case 4:
		return 5
	default:
		return 5
	}
}

// trailingCorrect counts correct attempts from the newest one until the first wrong one.
func trailingCorrect(newestFirst []learning.Attempt) int {
	streak := 0
	for _, a := range newestFirst {
		if !a.Correct {
			break
		}
		streak++
	}
	return streak
}

// Package learning provides the bird collection domain models and the mastery record store.
package learning

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

var (
	ErrRecordNotFound = errors.New("mastery record not found")
	ErrRecordExists   = errors.New("mastery record already exists")
	ErrItemNotFound   = errors.New("item not found")
)

// GameMode is how an attempt was practiced.
// It is stored as the legacy game_type values "memory" and "name".
type GameMode string

const (
	ModeRecognition GameMode = "recognition"
	ModeRecall      GameMode = "recall"
)

var gameModeColumns = map[GameMode]string{
	ModeRecognition: "memory",
	ModeRecall:      "name",
}

func (m GameMode) Valid() bool {
	_, ok := gameModeColumns[m]
	return ok
}

func (m GameMode) Value() (driver.Value, error) {
	column, ok := gameModeColumns[m]
	if !ok {
		return nil, fmt.Errorf("unknown game mode: %q", string(m))
	}
	return column, nil
}

func (m *GameMode) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into GameMode", src)
	}
	for mode, column := range gameModeColumns {
		if s == column || s == string(mode) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown game_type: %q", s)
}

// Item is a bird species that can be part of a collection.
type Item struct {
	ID             int64     `db:"id" yaml:"-"`
	ScientificName string    `db:"scientific_name" yaml:"scientific_name"`
	GermanName     string    `db:"german_name" yaml:"german_name,omitempty"`
	EnglishName    string    `db:"english_name" yaml:"english_name,omitempty"`
	SpeciesCode    string    `db:"species_code" yaml:"species_code,omitempty"`
	CreatedAt      time.Time `db:"created_at" yaml:"-"`
}

// DisplayName prefers the German name the collection is learned in.
func (i Item) DisplayName() string {
	if i.GermanName != "" {
		return i.GermanName
	}
	if i.EnglishName != "" {
		return i.EnglishName
	}
	return i.ScientificName
}

// MasteryRecord is the learning state of one item for one learner.
type MasteryRecord struct {
	LearnerID       int64      `db:"user_id" yaml:"-"`
	ItemID          int64      `db:"bird_id" yaml:"-"`
	Level           int        `db:"level" yaml:"level"`
	CorrectCount    int        `db:"correct_count" yaml:"correct_count"`
	WrongCount      int        `db:"wrong_count" yaml:"wrong_count"`
	LastPracticedAt *time.Time `db:"last_practiced" yaml:"last_practiced_at,omitempty"`
	AddedAt         time.Time  `db:"added_at" yaml:"added_at"`
}

// NewMasteryRecord returns the state of an item the learner has just added.
func NewMasteryRecord(learnerID, itemID int64, addedAt time.Time) MasteryRecord {
	return MasteryRecord{
		LearnerID: learnerID,
		ItemID:    itemID,
		Level:     MinLevel,
		AddedAt:   addedAt,
	}
}

func (r MasteryRecord) Practiced() bool {
	return r.LastPracticedAt != nil
}

// Attempt is one answer given by a learner. Attempts are never modified.
type Attempt struct {
	ID             int64     `db:"id" yaml:"-"`
	LearnerID      int64     `db:"user_id" yaml:"-"`
	ItemID         int64     `db:"bird_id" yaml:"-"`
	Mode           GameMode  `db:"game_type" yaml:"mode"`
	Correct        bool      `db:"correct" yaml:"correct"`
	ResponseTimeMs *int64    `db:"response_time" yaml:"response_time_ms,omitempty"`
	SessionID      *string   `db:"session_id" yaml:"session_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" yaml:"created_at"`
}

// AttemptCount summarizes a range of attempts.
type AttemptCount struct {
	Total   int `db:"total"`
	Correct int `db:"correct"`
}

// CollectionEntry is an item of a learner's collection with its mastery record.
type CollectionEntry struct {
	Item   Item
	Record MasteryRecord
}

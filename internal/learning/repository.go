package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/birdling/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning

// MasteryRepository stores mastery records and the attempt log of each learner.
type MasteryRepository interface {
	FindCollection(ctx context.Context, learnerID int64) ([]CollectionEntry, error)
	FindRecord(ctx context.Context, learnerID, itemID int64) (*MasteryRecord, error)
	CreateRecord(ctx context.Context, record *MasteryRecord) error
	// DeleteRecord removes the record together with the pair's attempts.
	DeleteRecord(ctx context.Context, learnerID, itemID int64) error
	// UpdateRecord locks the record and runs fn in one transaction.
	// Nothing fn wrote is kept when fn returns an error.
	UpdateRecord(ctx context.Context, learnerID, itemID int64, fn func(ctx context.Context, tx RecordTx) error) error

	RecentAttempts(ctx context.Context, learnerID int64, limit int) ([]Attempt, error)
	FindAttempts(ctx context.Context, learnerID int64) ([]Attempt, error)
	// CountAttempts counts attempts created at or after since; a zero since counts all.
	CountAttempts(ctx context.Context, learnerID int64, since time.Time) (AttemptCount, error)
	// PracticeTimes returns the creation time of every attempt, newest first.
	PracticeTimes(ctx context.Context, learnerID int64) ([]time.Time, error)
	BatchCreateAttempts(ctx context.Context, attempts []Attempt) error
}

// RecordTx is the view of a locked record handed to UpdateRecord callbacks.
type RecordTx interface {
	Record() MasteryRecord
	// RecentAttempts returns up to limit attempts of the pair, newest first.
	RecentAttempts(ctx context.Context, limit int) ([]Attempt, error)
	AppendAttempt(ctx context.Context, attempt *Attempt) error
	SaveRecord(ctx context.Context, record MasteryRecord) error
}

// DBMasteryRepository implements MasteryRepository over user_birds and learning_sessions.
type DBMasteryRepository struct {
	db *sqlx.DB
}

func NewDBMasteryRepository(db *sqlx.DB) *DBMasteryRepository {
	return &DBMasteryRepository{db: db}
}

const (
	selectRecord  = "SELECT user_id, bird_id, level, correct_count, wrong_count, last_practiced, added_at FROM user_birds"
	selectAttempt = "SELECT id, user_id, bird_id, game_type, correct, response_time, session_id, created_at FROM learning_sessions"

	attemptBatchSize = 500
)

var attemptColumns = []string{"user_id", "bird_id", "game_type", "correct", "response_time", "session_id", "created_at"}

type collectionRow struct {
	ItemID          int64      `db:"item_id"`
	ScientificName  string     `db:"scientific_name"`
	GermanName      string     `db:"german_name"`
	EnglishName     string     `db:"english_name"`
	SpeciesCode     string     `db:"species_code"`
	ItemCreatedAt   time.Time  `db:"item_created_at"`
	LearnerID       int64      `db:"user_id"`
	Level           int        `db:"level"`
	CorrectCount    int        `db:"correct_count"`
	WrongCount      int        `db:"wrong_count"`
	LastPracticedAt *time.Time `db:"last_practiced"`
	AddedAt         time.Time  `db:"added_at"`
}

func (row collectionRow) entry() CollectionEntry {
	return CollectionEntry{
		Item: Item{
			ID:             row.ItemID,
			ScientificName: row.ScientificName,
			GermanName:     row.GermanName,
			EnglishName:    row.EnglishName,
			SpeciesCode:    row.SpeciesCode,
			CreatedAt:      row.ItemCreatedAt,
		},
		Record: MasteryRecord{
			LearnerID:       row.LearnerID,
			ItemID:          row.ItemID,
			Level:           row.Level,
			CorrectCount:    row.CorrectCount,
			WrongCount:      row.WrongCount,
			LastPracticedAt: row.LastPracticedAt,
			AddedAt:         row.AddedAt,
		},
	}
}

// FindCollection returns every item of the learner in the order they were added.
func (r *DBMasteryRepository) FindCollection(ctx context.Context, learnerID int64) ([]CollectionEntry, error) {
	var rows []collectionRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT b.id AS item_id, b.scientific_name, b.german_name, b.english_name, b.species_code, b.created_at AS item_created_at,
			ub.user_id, ub.level, ub.correct_count, ub.wrong_count, ub.last_practiced, ub.added_at
		FROM user_birds ub
		JOIN birds b ON b.id = ub.bird_id
		WHERE ub.user_id = ?
		ORDER BY ub.added_at, b.id`, learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(user_birds) > %w", err)
	}

	entries := make([]CollectionEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.entry())
	}
	return entries, nil
}

// FindRecord returns ErrRecordNotFound when the item is not in the learner's collection.
func (r *DBMasteryRepository) FindRecord(ctx context.Context, learnerID, itemID int64) (*MasteryRecord, error) {
	var record MasteryRecord
	err := r.db.GetContext(ctx, &record, selectRecord+" WHERE user_id = ? AND bird_id = ?", learnerID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(user_birds) > %w", err)
	}
	return &record, nil
}

// CreateRecord returns ErrRecordExists when the pair already has a record.
func (r *DBMasteryRepository) CreateRecord(ctx context.Context, record *MasteryRecord) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM user_birds WHERE user_id = ? AND bird_id = ?",
			record.LearnerID, record.ItemID); err != nil {
			return fmt.Errorf("tx.GetContext(count user_birds) > %w", err)
		}
		if count > 0 {
			return ErrRecordExists
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_birds (user_id, bird_id, level, correct_count, wrong_count, last_practiced, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.LearnerID, record.ItemID, record.Level, record.CorrectCount, record.WrongCount,
			utcPtr(record.LastPracticedAt), record.AddedAt.UTC()); err != nil {
			return fmt.Errorf("tx.ExecContext(insert user_bird) > %w", err)
		}
		return nil
	})
}

// DeleteRecord returns ErrRecordNotFound when there is nothing to delete.
func (r *DBMasteryRepository) DeleteRecord(ctx context.Context, learnerID, itemID int64) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM user_birds WHERE user_id = ? AND bird_id = ?", learnerID, itemID)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(delete user_bird) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}
		if affected == 0 {
			return ErrRecordNotFound
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM learning_sessions WHERE user_id = ? AND bird_id = ?", learnerID, itemID); err != nil {
			return fmt.Errorf("tx.ExecContext(delete learning_sessions) > %w", err)
		}
		return nil
	})
}

func (r *DBMasteryRepository) UpdateRecord(ctx context.Context, learnerID, itemID int64, fn func(ctx context.Context, tx RecordTx) error) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		query := selectRecord + " WHERE user_id = ? AND bird_id = ?"
		// SQLite has no row locks; its single writer connection serializes instead.
		if r.db.DriverName() == database.DriverMySQL {
			query += " FOR UPDATE"
		}

		var record MasteryRecord
		err := tx.GetContext(ctx, &record, query, learnerID, itemID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("tx.GetContext(user_birds for update) > %w", err)
		}
		return fn(ctx, &dbRecordTx{tx: tx, record: record})
	})
}

func (r *DBMasteryRepository) RecentAttempts(ctx context.Context, learnerID int64, limit int) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		selectAttempt+" WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		learnerID, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(recent learning_sessions) > %w", err)
	}
	return attempts, nil
}

// FindAttempts returns the whole attempt log of the learner, oldest first.
func (r *DBMasteryRepository) FindAttempts(ctx context.Context, learnerID int64) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		selectAttempt+" WHERE user_id = ? ORDER BY created_at, id", learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(learning_sessions) > %w", err)
	}
	return attempts, nil
}

func (r *DBMasteryRepository) CountAttempts(ctx context.Context, learnerID int64, since time.Time) (AttemptCount, error) {
	query := "SELECT COUNT(*) AS total, COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0) AS correct FROM learning_sessions WHERE user_id = ?"
	args := []any{learnerID}
	if !since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, since.UTC())
	}

	var count AttemptCount
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return AttemptCount{}, fmt.Errorf("db.GetContext(count learning_sessions) > %w", err)
	}
	return count, nil
}

func (r *DBMasteryRepository) PracticeTimes(ctx context.Context, learnerID int64) ([]time.Time, error) {
	var times []time.Time
	if err := r.db.SelectContext(ctx, &times,
		"SELECT created_at FROM learning_sessions WHERE user_id = ? ORDER BY created_at DESC", learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(learning_sessions created_at) > %w", err)
	}
	return times, nil
}

// BatchCreateAttempts inserts attempts in chunks inside a single transaction.
func (r *DBMasteryRepository) BatchCreateAttempts(ctx context.Context, attempts []Attempt) error {
	if len(attempts) == 0 {
		return nil
	}
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for start := 0; start < len(attempts); start += attemptBatchSize {
			end := min(start+attemptBatchSize, len(attempts))
			chunk := attempts[start:end]

			args := make([]any, 0, len(chunk)*len(attemptColumns))
			for _, a := range chunk {
				args = append(args, a.LearnerID, a.ItemID, a.Mode, a.Correct, a.ResponseTimeMs, a.SessionID, a.CreatedAt.UTC())
			}
			query := database.BuildMultiRowInsert("learning_sessions", attemptColumns, len(chunk))
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("tx.ExecContext(batch insert learning_sessions) > %w", err)
			}
		}
		return nil
	})
}

type dbRecordTx struct {
	tx     *sqlx.Tx
	record MasteryRecord
}

func (t *dbRecordTx) Record() MasteryRecord {
	return t.record
}

func (t *dbRecordTx) RecentAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	var attempts []Attempt
	if err := t.tx.SelectContext(ctx, &attempts,
		selectAttempt+" WHERE user_id = ? AND bird_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		t.record.LearnerID, t.record.ItemID, limit); err != nil {
		return nil, fmt.Errorf("tx.SelectContext(learning_sessions of record) > %w", err)
	}
	return attempts, nil
}

func (t *dbRecordTx) AppendAttempt(ctx context.Context, attempt *Attempt) error {
	attempt.LearnerID = t.record.LearnerID
	attempt.ItemID = t.record.ItemID
	result, err := t.tx.ExecContext(ctx,
		`INSERT INTO learning_sessions (user_id, bird_id, game_type, correct, response_time, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		attempt.LearnerID, attempt.ItemID, attempt.Mode, attempt.Correct, attempt.ResponseTimeMs, attempt.SessionID, attempt.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("tx.ExecContext(insert learning_session) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	attempt.ID = id
	return nil
}

// SaveRecord writes the mutable fields; the learner and item of the locked record are kept.
func (t *dbRecordTx) SaveRecord(ctx context.Context, record MasteryRecord) error {
	if _, err := t.tx.ExecContext(ctx,
		"UPDATE user_birds SET level = ?, correct_count = ?, wrong_count = ?, last_practiced = ? WHERE user_id = ? AND bird_id = ?",
		record.Level, record.CorrectCount, record.WrongCount, utcPtr(record.LastPracticedAt),
		t.record.LearnerID, t.record.ItemID); err != nil {
		return fmt.Errorf("tx.ExecContext(update user_bird) > %w", err)
	}
	record.LearnerID = t.record.LearnerID
	record.ItemID = t.record.ItemID
	t.record = record
	return nil
}

// Times are written in UTC so that text-backed drivers compare them correctly.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

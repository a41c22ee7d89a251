package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=item_repository.go -destination=../mocks/learning/mock_item_repository.go -package=mock_learning

// ItemRepository defines operations for the shared species catalog.
type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (*Item, error)
	FindByScientificName(ctx context.Context, scientificName string) (*Item, error)
	Create(ctx context.Context, item *Item) error
}

// DBItemRepository implements ItemRepository over the birds table.
type DBItemRepository struct {
	db *sqlx.DB
}

func NewDBItemRepository(db *sqlx.DB) *DBItemRepository {
	return &DBItemRepository{db: db}
}

const selectItem = "SELECT id, scientific_name, german_name, english_name, species_code, created_at FROM birds"

// FindByID returns ErrItemNotFound when no bird has the id.
func (r *DBItemRepository) FindByID(ctx context.Context, id int64) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, selectItem+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(birds by id) > %w", err)
	}
	return &item, nil
}

// FindByScientificName returns ErrItemNotFound when the species is not in the catalog yet.
func (r *DBItemRepository) FindByScientificName(ctx context.Context, scientificName string) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, selectItem+" WHERE scientific_name = ?", scientificName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(birds by scientific_name) > %w", err)
	}
	return &item, nil
}

// Create inserts the item and sets its ID.
func (r *DBItemRepository) Create(ctx context.Context, item *Item) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO birds (scientific_name, german_name, english_name, species_code, created_at) VALUES (?, ?, ?, ?, ?)",
		item.ScientificName, item.GermanName, item.EnglishName, item.SpeciesCode, item.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert bird) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	item.ID = id
	return nil
}

// Package collection manages which birds belong to a learner's collection.
package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/species"
)

//go:generate mockgen -source=collection.go -destination=../mocks/collection/mock_collection.go -package=mock_collection

var ErrAlreadyCollected = errors.New("bird is already in the collection")

// SpeciesProvider resolves a scientific name to species data.
type SpeciesProvider interface {
	Lookup(ctx context.Context, scientificName string) (species.Species, error)
}

type Service struct {
	items    learning.ItemRepository
	records  learning.MasteryRepository
	provider SpeciesProvider
	clock    func() time.Time
}

type Option func(*Service)

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a collection service. provider may be nil, in which case
// only birds already in the catalog can be added.
func NewService(items learning.ItemRepository, records learning.MasteryRepository, provider SpeciesProvider, opts ...Option) *Service {
	s := &Service{
		items:    items,
		records:  records,
		provider: provider,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add puts the bird into the learner's collection at the first level.
// Birds missing from the catalog are looked up with the species provider first.
func (s *Service) Add(ctx context.Context, learnerID int64, scientificName string) (learning.CollectionEntry, error) {
	item, err := s.findOrCreateItem(ctx, scientificName)
	if err != nil {
		return learning.CollectionEntry{}, err
	}

	record := learning.NewMasteryRecord(learnerID, item.ID, s.clock().UTC())
	if err := s.records.CreateRecord(ctx, &record); err != nil {
		if errors.Is(err, learning.ErrRecordExists) {
			return learning.CollectionEntry{}, fmt.Errorf("%w: %s", ErrAlreadyCollected, item.ScientificName)
		}
		return learning.CollectionEntry{}, fmt.Errorf("records.CreateRecord() > %w", err)
	}

	slog.Default().Info("added a bird to the collection",
		slog.Int64("learnerID", learnerID),
		slog.Int64("itemID", item.ID),
		slog.String("scientificName", item.ScientificName),
	)
	return learning.CollectionEntry{Item: *item, Record: record}, nil
}

func (s *Service) findOrCreateItem(ctx context.Context, scientificName string) (*learning.Item, error) {
	scientificName = strings.TrimSpace(scientificName)
	item, err := s.items.FindByScientificName(ctx, scientificName)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, learning.ErrItemNotFound) {
		return nil, fmt.Errorf("items.FindByScientificName() > %w", err)
	}
	if s.provider == nil {
		return nil, fmt.Errorf("%w: %s", learning.ErrItemNotFound, scientificName)
	}

	found, err := s.provider.Lookup(ctx, scientificName)
	if err != nil {
		return nil, fmt.Errorf("provider.Lookup(%s) > %w", scientificName, err)
	}
	// the provider may return a differently cased name that is already in the catalog
	if found.ScientificName != scientificName {
		item, err := s.items.FindByScientificName(ctx, found.ScientificName)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, learning.ErrItemNotFound) {
			return nil, fmt.Errorf("items.FindByScientificName() > %w", err)
		}
	}

	item = &learning.Item{
		ScientificName: found.ScientificName,
		GermanName:     found.LocalName,
		EnglishName:    found.EnglishName,
		SpeciesCode:    found.SpeciesCode,
		CreatedAt:      s.clock().UTC(),
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("items.Create() > %w", err)
	}
	return item, nil
}

// Remove takes the bird out of the collection and forgets its attempts.
func (s *Service) Remove(ctx context.Context, learnerID int64, scientificName string) error {
	item, err := s.items.FindByScientificName(ctx, strings.TrimSpace(scientificName))
	if err != nil {
		return fmt.Errorf("items.FindByScientificName() > %w", err)
	}
	if err := s.records.DeleteRecord(ctx, learnerID, item.ID); err != nil {
		return fmt.Errorf("records.DeleteRecord() > %w", err)
	}

	slog.Default().Info("removed a bird from the collection",
		slog.Int64("learnerID", learnerID),
		slog.Int64("itemID", item.ID),
	)
	return nil
}

// List returns the learner's collection in the order the birds were added.
func (s *Service) List(ctx context.Context, learnerID int64) ([]learning.CollectionEntry, error) {
	entries, err := s.records.FindCollection(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("records.FindCollection() > %w", err)
	}
	return entries, nil
}

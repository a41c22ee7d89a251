// Package datasync provides import/export of a learner's collection as YAML files.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/birdling/internal/learning"
)

const documentVersion = 1

// Document is the file format of an exported collection.
type Document struct {
	Version    int         `yaml:"version"`
	ExportedAt time.Time   `yaml:"exported_at"`
	Birds      []BirdEntry `yaml:"birds"`
}

// BirdEntry is one collected bird with its mastery and attempt log.
type BirdEntry struct {
	learning.Item `yaml:",inline"`
	Mastery       learning.MasteryRecord `yaml:"mastery"`
	Attempts      []learning.Attempt     `yaml:"attempts,omitempty"`
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	ItemsNew         int
	RecordsNew       int
	RecordsSkipped   int
	AttemptsNew      int
	AttemptsWarnings int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer writes a Document into the stores.
type Importer struct {
	itemRepo    learning.ItemRepository
	masteryRepo learning.MasteryRepository
	writer      io.Writer
}

func NewImporter(itemRepo learning.ItemRepository, masteryRepo learning.MasteryRepository, writer io.Writer) *Importer {
	return &Importer{
		itemRepo:    itemRepo,
		masteryRepo: masteryRepo,
		writer:      writer,
	}
}

// Import adds the document's birds to the learner's collection.
// Birds the learner already collected are skipped together with their attempts.
func (imp *Importer) Import(ctx context.Context, learnerID int64, doc *Document, opts ImportOptions) (*ImportResult, error) {
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}

	var result ImportResult
	for _, bird := range doc.Birds {
		if err := imp.importBird(ctx, learnerID, bird, opts, &result); err != nil {
			return nil, fmt.Errorf("importBird(%s) > %w", bird.ScientificName, err)
		}
	}
	return &result, nil
}

func (imp *Importer) importBird(ctx context.Context, learnerID int64, bird BirdEntry, opts ImportOptions, result *ImportResult) error {
	item, err := imp.itemRepo.FindByScientificName(ctx, bird.ScientificName)
	switch {
	case err == nil:
	case errors.Is(err, learning.ErrItemNotFound):
		item = &learning.Item{
			ScientificName: bird.ScientificName,
			GermanName:     bird.GermanName,
			EnglishName:    bird.EnglishName,
			SpeciesCode:    bird.SpeciesCode,
			CreatedAt:      bird.Mastery.AddedAt,
		}
		if !opts.DryRun {
			if err := imp.itemRepo.Create(ctx, item); err != nil {
				return fmt.Errorf("itemRepo.Create() > %w", err)
			}
		}
		result.ItemsNew++
	default:
		return fmt.Errorf("itemRepo.FindByScientificName() > %w", err)
	}

	if item.ID != 0 {
		if _, err := imp.masteryRepo.FindRecord(ctx, learnerID, item.ID); err == nil {
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %s (%s)\n", bird.ScientificName, item.DisplayName())
			result.RecordsSkipped++
			return nil
		} else if !errors.Is(err, learning.ErrRecordNotFound) {
			return fmt.Errorf("masteryRepo.FindRecord() > %w", err)
		}
	}

	record := bird.Mastery
	record.LearnerID = learnerID
	record.ItemID = item.ID
	if record.Level < learning.MinLevel || record.Level > learning.MaxLevel {
		_, _ = fmt.Fprintf(imp.writer, "  [WARN]  %s has level %d, importing at level %d\n", bird.ScientificName, record.Level, learning.MinLevel)
		record.Level = learning.MinLevel
	}

	attempts := make([]learning.Attempt, 0, len(bird.Attempts))
	for _, attempt := range bird.Attempts {
		if !attempt.Mode.Valid() {
			_, _ = fmt.Fprintf(imp.writer, "  [WARN]  %s has an attempt with unknown mode %q\n", bird.ScientificName, attempt.Mode)
			result.AttemptsWarnings++
			continue
		}
		attempt.ID = 0
		attempt.LearnerID = learnerID
		attempt.ItemID = item.ID
		attempts = append(attempts, attempt)
	}

	if !opts.DryRun {
		if err := imp.masteryRepo.CreateRecord(ctx, &record); err != nil {
			return fmt.Errorf("masteryRepo.CreateRecord() > %w", err)
		}
		if err := imp.masteryRepo.BatchCreateAttempts(ctx, attempts); err != nil {
			return fmt.Errorf("masteryRepo.BatchCreateAttempts() > %w", err)
		}
	}
	_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %s (%s), %d attempts\n", bird.ScientificName, item.DisplayName(), len(attempts))
	result.RecordsNew++
	result.AttemptsNew += len(attempts)
	return nil
}

// Exporter reads a learner's data from the stores.
type Exporter struct {
	masteryRepo learning.MasteryRepository
	clock       func() time.Time
}

func NewExporter(masteryRepo learning.MasteryRepository) *Exporter {
	return &Exporter{
		masteryRepo: masteryRepo,
		clock:       time.Now,
	}
}

// Export reads the learner's collection and attempt log.
func (e *Exporter) Export(ctx context.Context, learnerID int64) (*Document, error) {
	entries, err := e.masteryRepo.FindCollection(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("masteryRepo.FindCollection() > %w", err)
	}
	attempts, err := e.masteryRepo.FindAttempts(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("masteryRepo.FindAttempts() > %w", err)
	}

	attemptsByItem := make(map[int64][]learning.Attempt)
	for _, attempt := range attempts {
		attemptsByItem[attempt.ItemID] = append(attemptsByItem[attempt.ItemID], attempt)
	}

	doc := &Document{
		Version:    documentVersion,
		ExportedAt: e.clock().UTC(),
		Birds:      make([]BirdEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		doc.Birds = append(doc.Birds, BirdEntry{
			Item:     entry.Item,
			Mastery:  entry.Record,
			Attempts: attemptsByItem[entry.Item.ID],
		})
	}
	return doc, nil
}

// WriteFile writes the document as YAML, creating the directory when needed.
func WriteFile(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return &doc, nil
}

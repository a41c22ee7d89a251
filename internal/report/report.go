// Package report renders a learner's progress as a markdown document and, optionally, a PDF.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/birdling/internal/assets"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/scheduler"
	"github.com/at-ishikawa/birdling/internal/statistics"
)

// Source provides the learner data a report is built from. *scheduler.Scheduler satisfies it.
type Source interface {
	LearningStats(ctx context.Context, learnerID int64) (scheduler.Stats, error)
	DueForReview(ctx context.Context, learnerID int64) ([]learning.CollectionEntry, error)
}

type Options struct {
	// Year and Month filter the monthly table; 0 means no filter.
	Year  int
	Month int
	PDF   bool
}

type Generator struct {
	source       Source
	repo         learning.MasteryRepository
	templatePath string
	outputDir    string
	location     *time.Location
	clock        func() time.Time
}

func NewGenerator(source Source, repo learning.MasteryRepository, templatePath, outputDir string, location *time.Location) *Generator {
	if location == nil {
		location = time.Local
	}
	return &Generator{
		source:       source,
		repo:         repo,
		templatePath: templatePath,
		outputDir:    outputDir,
		location:     location,
		clock:        time.Now,
	}
}

// Generate writes the report and returns the paths of the written files,
// the markdown file first.
func (g *Generator) Generate(ctx context.Context, learnerID int64, opts Options) ([]string, error) {
	data, err := g.templateData(ctx, learnerID, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", g.outputDir, err)
	}
	markdownPath := filepath.Join(g.outputDir, fmt.Sprintf("learning-report-%d-%s.md", learnerID, data.GeneratedAt.Format("20060102")))
	output, err := os.Create(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	defer func() {
		_ = output.Close()
	}()
	if err := assets.WriteReport(output, g.templatePath, data); err != nil {
		return nil, fmt.Errorf("assets.WriteReport(%s, %s) > %w", markdownPath, g.templatePath, err)
	}

	paths := []string{markdownPath}
	if !opts.PDF {
		return paths, nil
	}
	pdfPath, err := convertMarkdownToPDF(markdownPath)
	if err != nil {
		return paths, fmt.Errorf("convertMarkdownToPDF(%s) > %w", markdownPath, err)
	}
	return append(paths, pdfPath), nil
}

func (g *Generator) templateData(ctx context.Context, learnerID int64, opts Options) (assets.ReportTemplate, error) {
	stats, err := g.source.LearningStats(ctx, learnerID)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("source.LearningStats() > %w", err)
	}
	due, err := g.source.DueForReview(ctx, learnerID)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("source.DueForReview() > %w", err)
	}
	entries, err := g.repo.FindCollection(ctx, learnerID)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("repo.FindCollection() > %w", err)
	}
	attempts, err := g.repo.FindAttempts(ctx, learnerID)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("repo.FindAttempts() > %w", err)
	}

	data := assets.ReportTemplate{
		Title:          "Bird learning report",
		GeneratedAt:    g.clock().In(g.location),
		MaxLevel:       learning.MaxLevel,
		TotalItems:     stats.TotalItems,
		MasteredItems:  stats.MasteredItems,
		TotalSessions:  stats.TotalSessions,
		RecentAccuracy: stats.RecentAccuracy,
		Streak:         stats.Streak,
	}
	for _, level := range stats.LevelDistribution {
		data.Levels = append(data.Levels, assets.ReportLevel{Level: level.Level, Count: level.Count})
	}
	for _, month := range statistics.CalculateMonthlyStatistics(attempts, g.location, opts.Year, opts.Month) {
		data.Months = append(data.Months, assets.ReportMonth{
			Period:      month.Period,
			Attempts:    month.Attempts,
			Correct:     month.Correct,
			Accuracy:    month.AccuracyPercent(),
			UniqueItems: month.UniqueItems,
		})
	}
	for _, entry := range due {
		data.Due = append(data.Due, g.reportBird(entry))
	}
	for _, entry := range entries {
		data.Collection = append(data.Collection, g.reportBird(entry))
	}
	return data, nil
}

func (g *Generator) reportBird(entry learning.CollectionEntry) assets.ReportBird {
	bird := assets.ReportBird{
		Name:           entry.Item.DisplayName(),
		ScientificName: entry.Item.ScientificName,
		Level:          entry.Record.Level,
		CorrectCount:   entry.Record.CorrectCount,
		WrongCount:     entry.Record.WrongCount,
		NextReview:     scheduler.NextReview(entry.Record),
	}
	if entry.Record.LastPracticedAt != nil {
		practiced := entry.Record.LastPracticedAt.In(g.location)
		bird.LastPracticed = &practiced
	}
	if bird.NextReview != nil {
		next := bird.NextReview.In(g.location)
		bird.NextReview = &next
	}
	return bird
}

// convertMarkdownToPDF writes a PDF next to the markdown file and returns its absolute path.
func convertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

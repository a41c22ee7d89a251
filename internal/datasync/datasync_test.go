package datasync

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/birdling/internal/learning"
	mock_learning "github.com/at-ishikawa/birdling/internal/mocks/learning"
)

var (
	addedAt     = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	practicedAt = time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	exportedAt  = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
)

func seedRepository(t *testing.T, learnerID int64) *learning.MemoryRepository {
	t.Helper()
	ctx := context.Background()
	repo := learning.NewMemoryRepository()

	robin := learning.Item{ScientificName: "Erithacus rubecula", GermanName: "Rotkehlchen", SpeciesCode: "eurrob1"}
	tit := learning.Item{ScientificName: "Parus major", GermanName: "Kohlmeise"}
	require.NoError(t, repo.Create(ctx, &robin))
	require.NoError(t, repo.Create(ctx, &tit))

	robinRecord := learning.NewMasteryRecord(learnerID, robin.ID, addedAt)
	robinRecord.Level = 2
	robinRecord.CorrectCount = 2
	robinRecord.LastPracticedAt = &practicedAt
	require.NoError(t, repo.CreateRecord(ctx, &robinRecord))
	titRecord := learning.NewMasteryRecord(learnerID, tit.ID, addedAt.Add(time.Hour))
	require.NoError(t, repo.CreateRecord(ctx, &titRecord))

	responseTime := int64(1200)
	require.NoError(t, repo.BatchCreateAttempts(ctx, []learning.Attempt{
		{LearnerID: learnerID, ItemID: robin.ID, Mode: learning.ModeRecognition, Correct: true, CreatedAt: practicedAt.Add(-time.Minute)},
		{LearnerID: learnerID, ItemID: robin.ID, Mode: learning.ModeRecall, Correct: true, ResponseTimeMs: &responseTime, CreatedAt: practicedAt},
	}))
	return repo
}

func TestExporter_Export(t *testing.T) {
	repo := seedRepository(t, 1)
	exporter := NewExporter(repo)
	exporter.clock = func() time.Time { return exportedAt }

	doc, err := exporter.Export(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, documentVersion, doc.Version)
	assert.Equal(t, exportedAt, doc.ExportedAt)
	require.Len(t, doc.Birds, 2)
	assert.Equal(t, "Erithacus rubecula", doc.Birds[0].ScientificName)
	assert.Equal(t, 2, doc.Birds[0].Mastery.Level)
	require.Len(t, doc.Birds[0].Attempts, 2)
	assert.Equal(t, learning.ModeRecognition, doc.Birds[0].Attempts[0].Mode)
	assert.Equal(t, "Parus major", doc.Birds[1].ScientificName)
	assert.Empty(t, doc.Birds[1].Attempts)
}

func TestExporter_Export_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_learning.NewMockMasteryRepository(ctrl)
	storeErr := errors.New("connection refused")
	repo.EXPECT().FindCollection(gomock.Any(), int64(1)).Return(nil, storeErr)

	_, err := NewExporter(repo).Export(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	source := seedRepository(t, 1)
	doc, err := NewExporter(source).Export(ctx, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export", "birds.yml")
	require.NoError(t, WriteFile(path, doc))
	read, err := ReadFile(path)
	require.NoError(t, err)

	target := learning.NewMemoryRepository()
	var out bytes.Buffer
	result, err := NewImporter(target, target, &out).Import(ctx, 9, read, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{ItemsNew: 2, RecordsNew: 2, AttemptsNew: 2}, result)
	assert.Contains(t, out.String(), "[NEW]  Erithacus rubecula (Rotkehlchen), 2 attempts")

	entries, err := target.FindCollection(ctx, 9)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(9), entries[0].Record.LearnerID)
	assert.Equal(t, 2, entries[0].Record.Level)
	require.NotNil(t, entries[0].Record.LastPracticedAt)
	assert.True(t, practicedAt.Equal(*entries[0].Record.LastPracticedAt))

	attempts, err := target.FindAttempts(ctx, 9)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, entries[0].Item.ID, attempts[1].ItemID)
	require.NotNil(t, attempts[1].ResponseTimeMs)
	assert.Equal(t, int64(1200), *attempts[1].ResponseTimeMs)
}

func TestImporter_Import(t *testing.T) {
	doc := &Document{
		Version: documentVersion,
		Birds: []BirdEntry{
			{
				Item:    learning.Item{ScientificName: "Erithacus rubecula", GermanName: "Rotkehlchen"},
				Mastery: learning.MasteryRecord{Level: 9, AddedAt: addedAt},
				Attempts: []learning.Attempt{
					{Mode: learning.ModeRecall, Correct: true, CreatedAt: practicedAt},
					{Mode: learning.GameMode("quiz"), CreatedAt: practicedAt},
				},
			},
		},
	}

	tests := []struct {
		name      string
		collected bool
		opts      ImportOptions

		want         *ImportResult
		wantLevel    int
		wantAttempts int
		wantOutput   []string
	}{
		{
			name:         "invalid values are corrected or skipped",
			want:         &ImportResult{ItemsNew: 1, RecordsNew: 1, AttemptsNew: 1, AttemptsWarnings: 1},
			wantLevel:    learning.MinLevel,
			wantAttempts: 1,
			wantOutput:   []string{"[WARN]  Erithacus rubecula has level 9", `unknown mode "quiz"`},
		},
		{
			name:         "already collected birds are skipped",
			collected:    true,
			want:         &ImportResult{RecordsSkipped: 1},
			wantLevel:    3,
			wantAttempts: 0,
			wantOutput:   []string{"[SKIP]  Erithacus rubecula (Rotkehlchen)"},
		},
		{
			name:         "dry run writes nothing",
			opts:         ImportOptions{DryRun: true},
			want:         &ImportResult{ItemsNew: 1, RecordsNew: 1, AttemptsNew: 1, AttemptsWarnings: 1},
			wantAttempts: 0,
			wantOutput:   []string{"[NEW]  Erithacus rubecula"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := learning.NewMemoryRepository()
			if tt.collected {
				item := learning.Item{ScientificName: "Erithacus rubecula", GermanName: "Rotkehlchen"}
				require.NoError(t, repo.Create(ctx, &item))
				record := learning.NewMasteryRecord(1, item.ID, addedAt)
				record.Level = 3
				require.NoError(t, repo.CreateRecord(ctx, &record))
			}

			var out bytes.Buffer
			got, err := NewImporter(repo, repo, &out).Import(ctx, 1, doc, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}

			entries, err := repo.FindCollection(ctx, 1)
			require.NoError(t, err)
			if tt.wantLevel == 0 {
				assert.Empty(t, entries)
			} else {
				require.Len(t, entries, 1)
				assert.Equal(t, tt.wantLevel, entries[0].Record.Level)
			}
			attempts, err := repo.FindAttempts(ctx, 1)
			require.NoError(t, err)
			assert.Len(t, attempts, tt.wantAttempts)
		})
	}
}

func TestImporter_Import_UnsupportedVersion(t *testing.T) {
	repo := learning.NewMemoryRepository()
	_, err := NewImporter(repo, repo, &bytes.Buffer{}).Import(context.Background(), 1, &Document{Version: 2}, ImportOptions{})
	assert.Error(t, err)
}

func TestImporter_Import_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock_learning.NewMockItemRepository(ctrl)
	records := mock_learning.NewMockMasteryRepository(ctrl)
	storeErr := errors.New("connection refused")

	items.EXPECT().FindByScientificName(gomock.Any(), "Parus major").Return(&learning.Item{ID: 4, ScientificName: "Parus major"}, nil)
	records.EXPECT().FindRecord(gomock.Any(), int64(1), int64(4)).Return(nil, learning.ErrRecordNotFound)
	records.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return(storeErr)

	doc := &Document{
		Version: documentVersion,
		Birds:   []BirdEntry{{Item: learning.Item{ScientificName: "Parus major"}, Mastery: learning.MasteryRecord{Level: 1}}},
	}
	_, err := NewImporter(items, records, &bytes.Buffer{}).Import(context.Background(), 1, doc, ImportOptions{})
	assert.ErrorIs(t, err, storeErr)
}

func TestReadFile_Invalid(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

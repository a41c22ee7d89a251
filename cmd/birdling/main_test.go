package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/birdling/internal/config"
	"github.com/at-ishikawa/birdling/internal/database"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/scheduler"
	"github.com/at-ishikawa/birdling/internal/statistics"
	"github.com/at-ishikawa/birdling/internal/testutil"
)

func setConfigFile(t *testing.T, path string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = path
	t.Cleanup(func() { configFile = oldConfigFile })
}

func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("learning:\n  learner_id: -1\n"), 0644))
	return cfgPath
}

// seedCatalog adds birds to the catalog of the database the test config points to.
func seedCatalog(t *testing.T, tmpDir string, birds map[string]string) {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(tmpDir, "birdling.db"),
	})
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	require.NoError(t, database.EnsureSchema(context.Background(), db))
	for scientificName, germanName := range birds {
		testutil.InsertBird(t, db, scientificName, germanName)
	}
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "birdling", cmd.Use)
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{
		"init", "practice", "check", "due", "stats", "progress", "collection", "export", "import", "report",
	}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestModeFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    learning.GameMode
		wantErr bool
	}{
		{name: "recall", value: "recall", want: learning.ModeRecall},
		{name: "recognition", value: "recognition", want: learning.ModeRecognition},
		{name: "unknown", value: "listening", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := ModeFlag(learning.ModeRecall)
			err := mode.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, learning.ModeRecall, mode.GameMode())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode.GameMode())
			assert.Equal(t, tt.value, mode.String())
		})
	}
}

func TestModeFlag_Type(t *testing.T) {
	var mode ModeFlag
	assert.Equal(t, "mode", mode.Type())
}

func TestFormatFlag_Set(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "text"},
		{value: "json"},
		{value: "yaml"},
		{value: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			format := FormatText
			err := format.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, FormatText, format)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, format.String())
		})
	}
}

func TestWriteStats(t *testing.T) {
	stats := scheduler.Stats{
		LevelDistribution: []statistics.LevelCount{
			{Level: 1, Count: 2},
			{Level: 2, Count: 0},
			{Level: 3, Count: 0},
			{Level: 4, Count: 0},
			{Level: 5, Count: 1},
		},
		TotalItems:     3,
		MasteredItems:  1,
		TotalSessions:  12,
		RecentAccuracy: 75,
		Streak:         2,
	}

	tests := []struct {
		name   string
		format FormatFlag
		want   []string
	}{
		{
			name:   "text",
			format: FormatText,
			want: []string{
				"Birds:           3 (1 mastered)\n",
				"Accuracy (7d):   75%\n",
				"Streak:          2 days\n",
				"  ★☆☆☆☆  2\n",
				"  ★★★★★  1\n",
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			want:   []string{"total_items: 3\n", "recent_accuracy: 75\n", "level_distribution:\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, writeStats(&out, stats, tt.format))
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeStats(&out, stats, FormatJSON))
		var got scheduler.Stats
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, stats, got)
	})
}

func TestNewCheckCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "typo is accepted",
			args: []string{"Rotkelchen", "Rotkehlchen"},
			want: []string{"correct (similarity 0.91, distance 1)"},
		},
		{
			name: "unrelated answer",
			args: []string{"Amsel", "Rotkehlchen"},
			want: []string{"wrong"},
		},
		{
			name: "suggestions",
			args: []string{"Kohlmeis", "Rotkehlchen", "--candidates", "Kohlmeise,Blaumeise"},
			want: []string{"did you mean Kohlmeise? (0.89)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, newCheckCommand(), "", tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestNewCheckCommand_Args(t *testing.T) {
	_, err := execute(t, newCheckCommand(), "", "Rotkehlchen")
	assert.Error(t, err)
}

func TestCommands_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	tests := []struct {
		name string
		cmd  *cobra.Command
		args []string
	}{
		{name: "init", cmd: newInitCommand()},
		{name: "practice", cmd: newPracticeCommand()},
		{name: "due", cmd: newDueCommand()},
		{name: "stats", cmd: newStatsCommand()},
		{name: "progress", cmd: newProgressCommand()},
		{name: "collection list", cmd: newCollectionCommand(), args: []string{"list"}},
		{name: "export", cmd: newExportCommand()},
		{name: "report", cmd: newReportCommand()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.cmd, "", tt.args...)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "configuration")
		})
	}
}

func TestNewReportCommand_InvalidMonth(t *testing.T) {
	_, err := execute(t, newReportCommand(), "", "--month", "13")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid month 13")
}

func TestNewPracticeCommand_EmptyCollection(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

	out, err := execute(t, newPracticeCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Your collection is empty.")
}

func TestNewPracticeCommand_InvalidMode(t *testing.T) {
	_, err := execute(t, newPracticeCommand(), "", "--mode", "listening")
	assert.Error(t, err)
}

func TestCommands_CollectionLifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	seedCatalog(t, tmpDir, map[string]string{
		"Erithacus rubecula": "Rotkehlchen",
		"Parus major":        "Kohlmeise",
	})

	out, err := execute(t, newInitCommand(), "")
	require.NoError(t, err)
	assert.Equal(t, "The sqlite database is ready.\n", out)

	out, err = execute(t, newCollectionCommand(), "", "add", "--offline", "Erithacus rubecula")
	require.NoError(t, err)
	assert.Equal(t, "Added Rotkehlchen (Erithacus rubecula).\n", out)

	out, err = execute(t, newCollectionCommand(), "", "add", "--offline", "Erithacus rubecula")
	require.NoError(t, err)
	assert.Equal(t, "Erithacus rubecula is already in your collection.\n", out)

	_, err = execute(t, newCollectionCommand(), "", "add", "--offline", "Turdus merula")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `no species is named "Turdus merula"`)

	out, err = execute(t, newCollectionCommand(), "", "list")
	require.NoError(t, err)
	assert.Equal(t, "★☆☆☆☆  Rotkehlchen (Erithacus rubecula)\n", out)

	out, err = execute(t, newDueCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Rotkehlchen (Erithacus rubecula), last practiced never")

	out, err = execute(t, newPracticeCommand(), "Rotkehlchen\n", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Practice session started (recall).")
	assert.Contains(t, out, "It's correct: Rotkehlchen")
	assert.Contains(t, out, "Practice session ended: 1 of 1 correct (100%)")

	out, err = execute(t, newStatsCommand(), "", "--format", "json")
	require.NoError(t, err)
	var stats scheduler.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.TotalItems)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.Streak)

	out, err = execute(t, newProgressCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "correct  recall       Rotkehlchen")
	assert.Contains(t, out, "level 2: 1")

	exportPath := filepath.Join(tmpDir, "export", "backup.yml")
	out, err = execute(t, newExportCommand(), "", "--output", exportPath)
	require.NoError(t, err)
	assert.Equal(t, "Exported 1 birds to "+exportPath+"\n", out)
	assert.FileExists(t, exportPath)

	out, err = execute(t, newImportCommand(), "", exportPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[SKIP]  Erithacus rubecula (Rotkehlchen)")
	assert.Contains(t, out, "(dry-run mode, no changes made)")
	assert.Contains(t, out, "Records:  0 new, 1 skipped")

	out, err = execute(t, newReportCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+filepath.Join(tmpDir, "report", "learning-report-1-"))

	out, err = execute(t, newCollectionCommand(), "", "remove", "Erithacus rubecula")
	require.NoError(t, err)
	assert.Equal(t, "Removed Erithacus rubecula.\n", out)

	_, err = execute(t, newCollectionCommand(), "", "remove", "Erithacus rubecula")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "is not in your collection")

	out, err = execute(t, newCollectionCommand(), "", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Package testutil provides shared test helpers for config files and databases.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/birdling/internal/config"
	"github.com/at-ishikawa/birdling/internal/database"
)

// SetupTestConfig creates a config file backed by a SQLite database inside tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"species_cache", "export", "report"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
species:
  base_url: http://127.0.0.1:1
  cache_directory: %s
  retry_attempts: 0
learning:
  learner_id: 1
  time_zone: UTC
outputs:
  export_directory: %s
  report_directory: %s
`,
		filepath.Join(tmpDir, "birdling.db"),
		filepath.Join(tmpDir, "species_cache"),
		filepath.Join(tmpDir, "export"),
		filepath.Join(tmpDir, "report"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// OpenTestDB opens a fresh SQLite database with all tables created.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "birdling.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, database.EnsureSchema(context.Background(), db))
	return db
}

// InsertBird adds a catalog row and returns its ID.
func InsertBird(t *testing.T, db *sqlx.DB, scientificName, germanName string) int64 {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO birds (scientific_name, german_name, english_name, species_code, created_at) VALUES (?, ?, '', '', ?)",
		scientificName, germanName, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

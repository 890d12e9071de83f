// Package testutil opens throwaway databases for repository and service tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fieldtrans/internal/db"
	"fieldtrans/internal/snowflake"
)

// NewTestDB returns a migrated database in a temp dir, closed on cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// SeedContentType inserts appLabel.model and returns its ID.
func SeedContentType(t *testing.T, database *sql.DB, appLabel, modelName string) int64 {
	t.Helper()

	id := snowflake.NextID()
	_, err := database.Exec(`INSERT INTO content_types (id, app_label, model) VALUES (?, ?, ?)`, id, appLabel, modelName)
	require.NoError(t, err)
	return id
}

// SeedProduct inserts a product with a fixed ID.
func SeedProduct(t *testing.T, database *sql.DB, id int64, name, description string) {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := database.Exec(
		`INSERT INTO products (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, description, now, now,
	)
	require.NoError(t, err)
}

// SeedTranslation inserts a translated field row directly, bypassing save hooks.
func SeedTranslation(t *testing.T, database *sql.DB, language string, contentTypeID, objectID int64, fieldName, value string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := database.Exec(
		`INSERT INTO translated_fields (id, language, content_type_id, object_id, field_name, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, language, contentTypeID, objectID, fieldName, value, now, now,
	)
	require.NoError(t, err)
	return id
}

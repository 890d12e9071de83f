package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS content_types (
  id INTEGER PRIMARY KEY,
  app_label TEXT NOT NULL,
  model TEXT NOT NULL,
  UNIQUE (app_label, model)
);

CREATE TABLE IF NOT EXISTS translated_fields (
  id INTEGER PRIMARY KEY,
  language TEXT NOT NULL,
  content_type_id INTEGER NOT NULL,
  object_id INTEGER NOT NULL,
  field_name TEXT NOT NULL,
  value TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (content_type_id) REFERENCES content_types(id)
);

CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dynamic_templates (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  template_group TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: one row per (language, content type, object, field)
	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_translated_fields_key
		ON translated_fields(language, content_type_id, object_id, field_name)`); err != nil {
		return fmt.Errorf("create idx_translated_fields_key: %w", err)
	}

	// Migration 2: editor lookups list every language of one field
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_translated_fields_object
		ON translated_fields(content_type_id, object_id, field_name)`); err != nil {
		return fmt.Errorf("create idx_translated_fields_object: %w", err)
	}

	// Migration 3: group rendering of dynamic templates
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_dynamic_templates_group
		ON dynamic_templates(template_group)`); err != nil {
		return fmt.Errorf("create idx_dynamic_templates_group: %w", err)
	}

	return nil
}

package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// schemaDDL holds the schema statements in creation order; runs reference
// descriptions.
var schemaDDL = []struct {
	object string
	stmt   string
}{
	{"schema_version table", `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`},
	{"descriptions table", `
		CREATE TABLE IF NOT EXISTS descriptions (
			id TEXT PRIMARY KEY NOT NULL,
			source TEXT NOT NULL,
			size INTEGER NOT NULL,
			states INTEGER NOT NULL,
			rules INTEGER NOT NULL
		)`},
	{"runs table", `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			structural_id TEXT NOT NULL UNIQUE,
			desc_id TEXT NOT NULL REFERENCES descriptions(id),
			source TEXT NOT NULL,
			input TEXT NOT NULL,
			accepted INTEGER NOT NULL,
			output TEXT NOT NULL,
			steps INTEGER NOT NULL
		)`},
	{"runs desc_id index", `
		CREATE INDEX IF NOT EXISTS idx_runs_desc_id ON runs(desc_id)`},
}

// CreateSchema creates the SQLite schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	for _, d := range schemaDDL {
		if _, err := db.Exec(d.stmt); err != nil {
			return fmt.Errorf("creating %s: %w", d.object, err)
		}
	}
	return stampVersion(db)
}

// stampVersion records SchemaVersion on first creation. Reopening an existing
// store leaves the stored version untouched.
func stampVersion(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
	}
	return nil
}

package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// MergeConfig configures the merge operation.
type MergeConfig struct {
	// SourcePaths are the database files to merge from.
	SourcePaths []string
	// DestPath is the destination database file.
	DestPath string
}

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	DescriptionsMerged int
	RunsMerged         int
	SourcesProcessed   int
}

// Merge combines several SQLite datastores into one. Rows carry content-based
// identifiers, so INSERT OR IGNORE deduplicates across sources: descriptions
// on their primary key, runs on the structural_id uniqueness constraint.
func Merge(cfg MergeConfig) (*MergeStats, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, fmt.Errorf("no source databases specified")
	}
	if cfg.DestPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	destDB, err := sql.Open("sqlite", cfg.DestPath)
	if err != nil {
		return nil, fmt.Errorf("opening destination database: %w", err)
	}
	defer destDB.Close()

	if err := CreateSchema(destDB); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	stats := &MergeStats{}
	for _, sourcePath := range cfg.SourcePaths {
		if err := mergeFrom(destDB, sourcePath, stats); err != nil {
			return stats, fmt.Errorf("merging from %s: %w", sourcePath, err)
		}
		stats.SourcesProcessed++
	}
	return stats, nil
}

// mergeFrom copies one source into the destination inside a single
// transaction. Descriptions copy before the runs that reference them.
func mergeFrom(destDB *sql.DB, sourcePath string, stats *MergeStats) error {
	sourceDB, err := sql.Open("sqlite", sourcePath)
	if err != nil {
		return fmt.Errorf("opening source database: %w", err)
	}
	defer sourceDB.Close()

	if err := checkSchemaVersion(sourceDB); err != nil {
		return err
	}

	tx, err := destDB.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	descs, err := copyTable(tx, sourceDB, "descriptions",
		"id", "source", "size", "states", "rules")
	if err != nil {
		return fmt.Errorf("merging descriptions: %w", err)
	}

	runs, err := copyTable(tx, sourceDB, "runs",
		"structural_id", "desc_id", "source", "input", "accepted", "output", "steps")
	if err != nil {
		return fmt.Errorf("merging runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	stats.DescriptionsMerged += descs
	stats.RunsMerged += runs
	return nil
}

// checkSchemaVersion refuses sources written under a different schema.
func checkSchemaVersion(db *sql.DB) error {
	var v int
	if err := db.QueryRow("SELECT version FROM schema_version").Scan(&v); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if v != SchemaVersion {
		return fmt.Errorf("source has schema version %d, expected %d", v, SchemaVersion)
	}
	return nil
}

// copyTable streams every row of the named table into the destination
// transaction under INSERT OR IGNORE and reports how many rows were new.
func copyTable(tx *sql.Tx, sourceDB *sql.DB, table string, columns ...string) (int, error) {
	colList := strings.Join(columns, ", ")
	rows, err := sourceDB.Query("SELECT " + colList + " FROM " + table)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO " + table + " (" + colList + ") VALUES (" + placeholders + ")")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	values := make([]any, len(columns))
	targets := make([]any, len(columns))
	for i := range values {
		targets[i] = &values[i]
	}

	merged := 0
	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return merged, err
		}
		res, err := stmt.Exec(values...)
		if err != nil {
			return merged, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			merged++
		}
	}
	return merged, rows.Err()
}

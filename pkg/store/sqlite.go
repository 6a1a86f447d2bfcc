package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// SQLiteStore persists descriptions and runs in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the SQLite database at path, creating the file and
// schema as needed.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// AddDescription stores a description record (idempotent by ID).
func (s *SQLiteStore) AddDescription(d *types.DescriptionRecord) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO descriptions (id, source, size, states, rules) VALUES (?, ?, ?, ?, ?)",
		d.ID.Hex(), d.Source, d.Size, d.States, d.Rules,
	)
	if err != nil {
		return fmt.Errorf("inserting description: %w", err)
	}
	return nil
}

// AddRun stores a run record (deduplicated by structural ID).
func (s *SQLiteStore) AddRun(r *types.RunRecord) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO runs (structural_id, desc_id, source, input, accepted, output, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		r.StructuralID,
		r.DescID.Hex(),
		r.Source,
		r.Input,
		r.Accepted,
		r.Output,
		r.Steps,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// RunExists checks if a run with this structural ID exists.
func (s *SQLiteStore) RunExists(structuralID string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE structural_id = ?", structuralID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking run existence: %w", err)
	}
	return count > 0, nil
}

// DescriptionExists checks if a description has already been recorded.
func (s *SQLiteStore) DescriptionExists(id types.DescID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM descriptions WHERE id = ?", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking description existence: %w", err)
	}
	return count > 0, nil
}

// GetRuns retrieves all runs ordered by source then input.
func (s *SQLiteStore) GetRuns() ([]*types.RunRecord, error) {
	return s.queryRuns(`
		SELECT structural_id, desc_id, source, input, accepted, output, steps
		FROM runs
		ORDER BY source, input
	`)
}

// GetRunsByDescription retrieves the runs of one description.
func (s *SQLiteStore) GetRunsByDescription(id types.DescID) ([]*types.RunRecord, error) {
	return s.queryRuns(`
		SELECT structural_id, desc_id, source, input, accepted, output, steps
		FROM runs
		WHERE desc_id = ?
		ORDER BY source, input
	`, id.Hex())
}

func (s *SQLiteStore) queryRuns(query string, args ...any) ([]*types.RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.RunRecord
	for rows.Next() {
		var r types.RunRecord
		var descIDHex string

		err := rows.Scan(
			&r.StructuralID,
			&descIDHex,
			&r.Source,
			&r.Input,
			&r.Accepted,
			&r.Output,
			&r.Steps,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		descID, err := types.ParseDescID(descIDHex)
		if err != nil {
			return nil, fmt.Errorf("parsing description ID: %w", err)
		}
		r.DescID = descID

		runs = append(runs, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// GetDescriptions retrieves all description records ordered by source.
func (s *SQLiteStore) GetDescriptions() ([]*types.DescriptionRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, source, size, states, rules
		FROM descriptions
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("querying descriptions: %w", err)
	}
	defer rows.Close()

	var descs []*types.DescriptionRecord
	for rows.Next() {
		var d types.DescriptionRecord
		var idHex string

		if err := rows.Scan(&idHex, &d.Source, &d.Size, &d.States, &d.Rules); err != nil {
			return nil, fmt.Errorf("scanning description: %w", err)
		}

		id, err := types.ParseDescID(idHex)
		if err != nil {
			return nil, fmt.Errorf("parsing description ID: %w", err)
		}
		d.ID = id

		descs = append(descs, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating descriptions: %w", err)
	}

	return descs, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

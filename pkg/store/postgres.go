package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// PostgresStore implements Store using PostgreSQL via the pgx driver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed store from a DSN.
func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := createPostgresSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// createPostgresSchema mirrors the SQLite schema with PostgreSQL types.
func createPostgresSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES ($1)", SchemaVersion); err != nil {
			return err
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS descriptions (
			id TEXT PRIMARY KEY NOT NULL,
			source TEXT NOT NULL,
			size BIGINT NOT NULL,
			states INTEGER NOT NULL,
			rules INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating descriptions table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id BIGSERIAL PRIMARY KEY,
			structural_id TEXT NOT NULL UNIQUE,
			desc_id TEXT NOT NULL REFERENCES descriptions(id),
			source TEXT NOT NULL,
			input TEXT NOT NULL,
			accepted BOOLEAN NOT NULL,
			output TEXT NOT NULL,
			steps INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_runs_desc_id ON runs(desc_id)
	`)
	return err
}

// AddDescription stores a description record (idempotent by ID).
func (s *PostgresStore) AddDescription(d *types.DescriptionRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO descriptions (id, source, size, states, rules)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, d.ID.Hex(), d.Source, d.Size, d.States, d.Rules)
	if err != nil {
		return fmt.Errorf("inserting description: %w", err)
	}
	return nil
}

// AddRun stores a run record (deduplicated by structural ID).
func (s *PostgresStore) AddRun(r *types.RunRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (structural_id, desc_id, source, input, accepted, output, steps)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (structural_id) DO NOTHING
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
func (s *PostgresStore) RunExists(structuralID string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE structural_id = $1", structuralID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking run existence: %w", err)
	}
	return count > 0, nil
}

// DescriptionExists checks if a description has already been recorded.
func (s *PostgresStore) DescriptionExists(id types.DescID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM descriptions WHERE id = $1", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking description existence: %w", err)
	}
	return count > 0, nil
}

// GetRuns retrieves all runs ordered by source then input.
func (s *PostgresStore) GetRuns() ([]*types.RunRecord, error) {
	return s.queryRuns(`
		SELECT structural_id, desc_id, source, input, accepted, output, steps
		FROM runs
		ORDER BY source, input
	`)
}

// GetRunsByDescription retrieves the runs of one description.
func (s *PostgresStore) GetRunsByDescription(id types.DescID) ([]*types.RunRecord, error) {
	return s.queryRuns(`
		SELECT structural_id, desc_id, source, input, accepted, output, steps
		FROM runs
		WHERE desc_id = $1
		ORDER BY source, input
	`, id.Hex())
}

func (s *PostgresStore) queryRuns(query string, args ...any) ([]*types.RunRecord, error) {
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
func (s *PostgresStore) GetDescriptions() ([]*types.DescriptionRecord, error) {
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

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

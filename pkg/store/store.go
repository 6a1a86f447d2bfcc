// Package store persists simulation outcomes for batch workflows.
package store

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Store provides persistence for simulation results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, PostgreSQL, in-memory).
type Store interface {
	// AddDescription stores a description record (idempotent by ID).
	AddDescription(d *types.DescriptionRecord) error

	// AddRun stores a run record (deduplicated by structural ID).
	AddRun(r *types.RunRecord) error

	// RunExists checks if a run with this structural ID exists.
	RunExists(structuralID string) (bool, error)

	// DescriptionExists checks if a description has already been recorded.
	DescriptionExists(id types.DescID) (bool, error)

	// GetRuns retrieves all runs ordered by source then input.
	GetRuns() ([]*types.RunRecord, error)

	// GetRunsByDescription retrieves the runs of one description.
	GetRunsByDescription(id types.DescID) ([]*types.RunRecord, error)

	// GetDescriptions retrieves all description records ordered by source.
	GetDescriptions() ([]*types.DescriptionRecord, error)

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. Use ":memory:" for an ephemeral
	// in-memory store, or a postgres:// DSN for PostgreSQL.
	Path string
}

// New creates a new Store, choosing the backend from the path.
func New(cfg Config) (Store, error) {
	switch {
	case cfg.Path == "":
		return nil, fmt.Errorf("path is required")
	case cfg.Path == ":memory:":
		return NewMemory(), nil
	case strings.HasPrefix(cfg.Path, "postgres://") || strings.HasPrefix(cfg.Path, "postgresql://"):
		return NewPostgres(cfg.Path)
	default:
		return NewSQLite(cfg.Path)
	}
}

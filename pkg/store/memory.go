package store

import (
	"sort"
	"sync"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// MemoryStore implements Store using in-memory data structures. Useful for
// tests and ephemeral batch runs where nothing should touch disk.
type MemoryStore struct {
	mu           sync.RWMutex
	descriptions map[string]*types.DescriptionRecord // keyed by DescID.Hex()
	runs         map[string]*types.RunRecord         // keyed by structural_id
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		descriptions: make(map[string]*types.DescriptionRecord),
		runs:         make(map[string]*types.RunRecord),
	}
}

// AddDescription stores a description record (idempotent by ID).
func (m *MemoryStore) AddDescription(d *types.DescriptionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := d.ID.Hex()
	if _, exists := m.descriptions[key]; !exists {
		m.descriptions[key] = d
	}
	return nil
}

// AddRun stores a run record (deduplicated by structural ID).
func (m *MemoryStore) AddRun(r *types.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[r.StructuralID]; !exists {
		m.runs[r.StructuralID] = r
	}
	return nil
}

// RunExists checks if a run with this structural ID exists.
func (m *MemoryStore) RunExists(structuralID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.runs[structuralID]
	return exists, nil
}

// DescriptionExists checks if a description has already been recorded.
func (m *MemoryStore) DescriptionExists(id types.DescID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.descriptions[id.Hex()]
	return exists, nil
}

// GetRuns retrieves all runs ordered by source then input.
func (m *MemoryStore) GetRuns() ([]*types.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.RunRecord, 0, len(m.runs))
	for _, r := range m.runs {
		result = append(result, r)
	}
	sortRuns(result)
	return result, nil
}

// GetRunsByDescription retrieves the runs of one description.
func (m *MemoryStore) GetRunsByDescription(id types.DescID) ([]*types.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*types.RunRecord
	for _, r := range m.runs {
		if r.DescID == id {
			result = append(result, r)
		}
	}
	if result == nil {
		return []*types.RunRecord{}, nil
	}

	sortRuns(result)
	return result, nil
}

// GetDescriptions retrieves all description records ordered by source.
func (m *MemoryStore) GetDescriptions() ([]*types.DescriptionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.DescriptionRecord, 0, len(m.descriptions))
	for _, d := range m.descriptions {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Source < result[j].Source
	})
	return result, nil
}

// sortRuns orders runs by source then input, matching the SQL backends.
func sortRuns(runs []*types.RunRecord) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Source != runs[j].Source {
			return runs[i].Source < runs[j].Source
		}
		return runs[i].Input < runs[j].Input
	})
}

// Close closes the store. For the in-memory store, this is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

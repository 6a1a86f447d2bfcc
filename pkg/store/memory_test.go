package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

func testDescRecord(content string) *types.DescriptionRecord {
	return &types.DescriptionRecord{
		ID:     types.ComputeDescID([]byte(content)),
		Source: "test.txt",
		Size:   int64(len(content)),
		States: 2,
		Rules:  1,
	}
}

func testRunRecord(descID types.DescID, source, input string, accepted bool) *types.RunRecord {
	output := "Reject"
	steps := 0
	if accepted {
		output = "0 a 1"
		steps = 1
	}
	return &types.RunRecord{
		StructuralID: types.ComputeRunStructuralID(descID, input),
		DescID:       descID,
		Source:       source,
		Input:        input,
		Accepted:     accepted,
		Output:       output,
		Steps:        steps,
	}
}

func TestMemoryStore_AddDescription_Idempotent(t *testing.T) {
	// Arrange
	s := NewMemory()
	defer s.Close()
	d := testDescRecord("desc one")

	// Act
	require.NoError(t, s.AddDescription(d))
	require.NoError(t, s.AddDescription(d))

	// Assert
	descs, err := s.GetDescriptions()
	require.NoError(t, err)
	assert.Len(t, descs, 1)
}

func TestMemoryStore_AddRun_Deduplicates(t *testing.T) {
	// Arrange
	s := NewMemory()
	defer s.Close()
	d := testDescRecord("desc one")
	require.NoError(t, s.AddDescription(d))

	run := testRunRecord(d.ID, "a.txt", "a", true)

	// Act - same structural ID twice
	require.NoError(t, s.AddRun(run))
	require.NoError(t, s.AddRun(run))

	// Assert
	runs, err := s.GetRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestMemoryStore_RunExists(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	d := testDescRecord("desc one")
	run := testRunRecord(d.ID, "a.txt", "a", true)
	require.NoError(t, s.AddRun(run))

	exists, err := s.RunExists(run.StructuralID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.RunExists("nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_DescriptionExists(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	d := testDescRecord("desc one")
	require.NoError(t, s.AddDescription(d))

	exists, err := s.DescriptionExists(d.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	other := types.ComputeDescID([]byte("something else"))
	exists, err = s.DescriptionExists(other)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_GetRuns_Ordered(t *testing.T) {
	// Arrange - insert out of order
	s := NewMemory()
	defer s.Close()
	d := testDescRecord("desc one")

	require.NoError(t, s.AddRun(testRunRecord(d.ID, "b.txt", "x", false)))
	require.NoError(t, s.AddRun(testRunRecord(d.ID, "a.txt", "z", true)))
	require.NoError(t, s.AddRun(testRunRecord(d.ID, "a.txt", "a", true)))

	// Act
	runs, err := s.GetRuns()
	require.NoError(t, err)

	// Assert - ordered by source then input
	require.Len(t, runs, 3)
	assert.Equal(t, "a.txt", runs[0].Source)
	assert.Equal(t, "a", runs[0].Input)
	assert.Equal(t, "a.txt", runs[1].Source)
	assert.Equal(t, "z", runs[1].Input)
	assert.Equal(t, "b.txt", runs[2].Source)
}

func TestMemoryStore_GetRunsByDescription(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	one := testDescRecord("desc one")
	two := testDescRecord("desc two")

	require.NoError(t, s.AddRun(testRunRecord(one.ID, "one.txt", "a", true)))
	require.NoError(t, s.AddRun(testRunRecord(two.ID, "two.txt", "b", false)))

	runs, err := s.GetRunsByDescription(one.ID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "one.txt", runs[0].Source)

	// Unknown description yields an empty, non-nil slice
	unknown := types.ComputeDescID([]byte("unknown"))
	runs, err = s.GetRunsByDescription(unknown)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	// The store must be safe for the batch worker pool.
	s := NewMemory()
	defer s.Close()
	d := testDescRecord("desc one")
	require.NoError(t, s.AddDescription(d))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				input := fmt.Sprintf("in-%d-%d", n, j)
				_ = s.AddRun(testRunRecord(d.ID, "conc.txt", input, j%2 == 0))
				_, _ = s.RunExists(types.ComputeRunStructuralID(d.ID, input))
				_, _ = s.GetRuns()
			}
		}(i)
	}
	wg.Wait()

	runs, err := s.GetRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 8*50)
}

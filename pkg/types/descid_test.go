package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDescID(t *testing.T) {
	content := []byte("type: nfa\nstates: 2\nfinal: 1\nrules:\n0->1 a\ninput: a")

	id := ComputeDescID(content)

	// SHA-1 hex is 40 chars
	assert.Len(t, id.Hex(), 40)

	// Same content should produce same ID
	id2 := ComputeDescID(content)
	assert.Equal(t, id, id2)

	// Different content should produce different IDs
	id3 := ComputeDescID([]byte("type: nfa\nstates: 2\nfinal: 1\nrules:\n0->1 b\ninput: b"))
	assert.NotEqual(t, id, id3)
}

func TestParseDescID(t *testing.T) {
	id := ComputeDescID([]byte("some description"))

	parsed, err := ParseDescID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseDescID_Invalid(t *testing.T) {
	_, err := ParseDescID("abc")
	assert.Error(t, err)

	_, err = ParseDescID("zz" + ComputeDescID(nil).Hex()[2:])
	assert.Error(t, err)
}

func TestDescID_JSON(t *testing.T) {
	id := ComputeDescID([]byte("roundtrip"))

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded DescID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestDescID_SQLRoundtrip(t *testing.T) {
	id := ComputeDescID([]byte("sql roundtrip"))

	value, err := id.Value()
	require.NoError(t, err)

	var scanned DescID
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, id, scanned)

	// Drivers may hand back []byte instead of string.
	var fromBytes DescID
	require.NoError(t, fromBytes.Scan([]byte(id.Hex())))
	assert.Equal(t, id, fromBytes)

	assert.Error(t, scanned.Scan(nil))
	assert.Error(t, scanned.Scan(42))
}

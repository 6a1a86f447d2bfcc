package serve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_SimulateUnmarshal(t *testing.T) {
	input := `{"type":"simulate","payload":{"description":"type: nfa\nstates: 1\nfinal: 0\nrules:\n","input":"ab","name":"job-1"}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	assert.Equal(t, "simulate", req.Type)

	var payload SimulatePayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Equal(t, "type: nfa\nstates: 1\nfinal: 0\nrules:\n", payload.Description)
	require.NotNil(t, payload.Input)
	assert.Equal(t, "ab", *payload.Input)
	assert.Equal(t, "job-1", payload.Name)
}

func TestRequest_SimulateUnmarshal_AbsentInput(t *testing.T) {
	// An absent input field must stay distinguishable from an empty string:
	// "" is a legal input to simulate, nil means use the description's own.
	input := `{"type":"simulate","payload":{"description":"type: nfa\nstates: 1\nfinal: 0\nrules:\n"}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	var payload SimulatePayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Nil(t, payload.Input)
}

func TestResponse_Marshal(t *testing.T) {
	resp := Response{
		Success: true,
		Type:    "ready",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
}

func TestSimulateResult_MarshalRejection(t *testing.T) {
	result := SimulateResult{
		Input:    "x",
		Accepted: false,
		Output:   "Reject",
		Path:     nil,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	// Rejections carry an explicit null path, not an omitted field
	assert.Contains(t, string(data), `"path":null`)
	assert.Contains(t, string(data), `"output":"Reject"`)
}

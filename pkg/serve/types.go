package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "simulate" | "simulate_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// SimulatePayload is the payload for "simulate" requests and the item type
// for "simulate_batch". Input, when present, overrides the description's own
// input: line; Name labels the result and is echoed back untouched.
type SimulatePayload struct {
	Description string  `json:"description"`
	Input       *string `json:"input,omitempty"`
	Name        string  `json:"name,omitempty"`
}

// SimulateBatchPayload is the payload for "simulate_batch" requests
type SimulateBatchPayload struct {
	Items []SimulatePayload `json:"items"`
}

// SimulateResult is the data field for "simulate" responses and the element
// type for "simulate_batch" responses. Output is the wire text: the witness
// path or "Reject". Path is null on rejection.
type SimulateResult struct {
	Name     string      `json:"name,omitempty"`
	Input    string      `json:"input"`
	Accepted bool        `json:"accepted"`
	Output   string      `json:"output"`
	Path     *types.Path `json:"path"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "simulate" | "simulate_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}

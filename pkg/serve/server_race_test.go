package serve

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServer_SimulateBatch_RaceCondition tests that simulate_batch responses
// are sent even when EOF arrives before the main loop processes the pending
// request. This test fails with the old implementation due to the race
// condition.
func TestServer_SimulateBatch_RaceCondition(t *testing.T) {
	// Run the test multiple times to trigger the race condition
	for i := range 10 {
		request := `{"type":"simulate_batch","payload":{"items":[` +
			`{"name":"s1","description":"type: nfa\nstates: 2\nfinal: 1\nrules:\n0->1 a\ninput: a\n"},` +
			`{"name":"s2","description":"type: nfa\nstates: 1\nfinal: 0\nrules:\ninput:\n"}]}}` + "\n"
		in := strings.NewReader(request)
		out := &strings.Builder{}

		srv := NewServer(in, out)
		err := srv.Run(context.Background())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2, "iteration %d: expected 2 lines (ready + simulate_batch response), got %d", i, len(lines))

		var resp Response
		err = json.Unmarshal([]byte(lines[1]), &resp)
		require.NoError(t, err, "iteration %d: failed to unmarshal response", i)

		assert.True(t, resp.Success, "iteration %d: expected success", i)
		assert.Equal(t, "simulate_batch", resp.Type, "iteration %d: expected simulate_batch type", i)
	}
}

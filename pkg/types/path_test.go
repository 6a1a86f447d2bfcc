package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{
			name: "single consuming step",
			path: Path{States: []int{0, 1}, Consumed: []string{"a"}},
			want: "0 a 1",
		},
		{
			name: "epsilon step keeps its token position",
			path: Path{States: []int{0, 1, 2}, Consumed: []string{"a", ""}},
			want: "0 a 1  2",
		},
		{
			name: "leading epsilon",
			path: Path{States: []int{0, 1, 2}, Consumed: []string{"", "a"}},
			want: "0  1 a 2",
		},
		{
			name: "zero steps",
			path: Path{States: []int{0}, Consumed: []string{}},
			want: "0",
		},
		{
			name: "space symbol",
			path: Path{States: []int{0, 1}, Consumed: []string{" "}},
			want: "0   1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_Input(t *testing.T) {
	path := Path{States: []int{0, 1, 2, 3}, Consumed: []string{"a", "", "b"}}

	// Epsilon steps contribute nothing to the reproduced input.
	assert.Equal(t, "ab", path.Input())
}

func TestPath_StepsAndFinal(t *testing.T) {
	path := Path{States: []int{0, 2, 1}, Consumed: []string{"x", "y"}}

	assert.Equal(t, 2, path.Steps())
	assert.Equal(t, 1, path.Final())
}

func TestPath_JSON(t *testing.T) {
	path := Path{States: []int{0, 1}, Consumed: []string{"a"}}

	data, err := json.Marshal(&path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"states":[0,1],"consumed":["a"]}`, string(data))
}

func TestRenderOutcome(t *testing.T) {
	assert.Equal(t, "Reject", RenderOutcome(nil))

	path := &Path{States: []int{0, 1}, Consumed: []string{"a"}}
	assert.Equal(t, "0 a 1", RenderOutcome(path))
}

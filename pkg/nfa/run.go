package nfa

import (
	"fmt"
	"unicode/utf8"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// configuration is one point of the search space: an automaton state paired
// with the byte offset of the unconsumed input suffix. Keying by offset
// avoids hashing suffix copies; two configurations are the same point iff
// both fields are equal.
type configuration struct {
	state  int
	offset int
}

// frame is a pending depth-first expansion.
type frame struct {
	configuration
	step int
}

// Run simulates the automaton against input. It returns the witness path on
// acceptance, (nil, nil) on rejection, and an error only when a malformed
// rule reaches the matcher mid-search. Accept and reject are ordinary
// outcomes, never errors.
//
// The search is an explicit-stack depth-first traversal starting from
// (state 0, whole input). Rules are pushed in reverse declaration order so
// the LIFO pop order restores forward declaration priority; the first
// accepting configuration found under that order determines the returned
// path, which makes the result deterministic and reproducible.
//
// Termination is guaranteed: consuming expansions strictly shrink the
// remaining input, and epsilon expansions enter each (state, offset)
// configuration at most once per run.
func (a *Automaton) Run(input string) (*types.Path, error) {
	stack := []frame{{configuration{state: 0, offset: 0}, 0}}

	// trace holds the configuration popped at each step index. Entries above
	// the accepting step are leftovers of exhausted branches; reconstruction
	// ignores them.
	trace := make([]configuration, 0, len(input)+1)

	// visited suppresses epsilon cycles.
	visited := make(map[configuration]struct{})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		trace = record(trace, f.step, f.configuration)

		if a.finals.Test(uint(f.state)) && f.offset == len(input) {
			return backtrace(input, trace[:f.step+1]), nil
		}

		rules := a.rules[f.state]
		for i := len(rules) - 1; i >= 0; i-- {
			r := rules[i]

			if r.Kind == types.KindEpsilon {
				next := configuration{state: r.Dest, offset: f.offset}
				if _, seen := visited[next]; seen {
					continue
				}
				visited[next] = struct{}{}
				stack = append(stack, frame{next, f.step + 1})
				continue
			}

			if f.offset >= len(input) {
				continue
			}
			c, size := utf8.DecodeRuneInString(input[f.offset:])
			ok, err := r.Matches(c)
			if err != nil {
				return nil, fmt.Errorf("state %d rule %d: %w", f.state, i, err)
			}
			if ok {
				next := configuration{state: r.Dest, offset: f.offset + size}
				stack = append(stack, frame{next, f.step + 1})
			}
		}
	}

	return nil, nil
}

// record writes cfg at index step, growing the trace when a branch goes one
// step deeper than any branch before it. A frame's step is its parent's plus
// one and the parent was recorded before the frame was pushed, so step never
// exceeds len(trace).
func record(trace []configuration, step int, cfg configuration) []configuration {
	if step < len(trace) {
		trace[step] = cfg
		return trace
	}
	return append(trace, cfg)
}

// backtrace converts the trace of an accepting run into a Path. The slice
// covers steps 0 through the accepting step only; within that span entry i
// was last written by the accepting configuration's true ancestor at step i,
// so walking it forward yields the witness. A step whose offset did not
// advance was an epsilon transition; otherwise the consumed symbol is the
// input between the two offsets.
func backtrace(input string, trace []configuration) *types.Path {
	states := make([]int, len(trace))
	consumed := make([]string, 0, len(trace)-1)

	for i, cfg := range trace {
		states[i] = cfg.state
		if i == 0 {
			continue
		}
		prev := trace[i-1]
		if cfg.offset == prev.offset {
			consumed = append(consumed, "")
		} else {
			consumed = append(consumed, input[prev.offset:cfg.offset])
		}
	}

	return &types.Path{States: states, Consumed: consumed}
}

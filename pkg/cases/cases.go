// Package cases defines verification suites: named automata paired with
// inputs and their expected simulation outcomes. Built-in suites are
// embedded; external suites load from YAML files.
package cases

// Suite is one automaton description with expected outcomes for a set of
// inputs.
type Suite struct {
	ID          string
	Name        string
	Description string
	Automaton   string // description text, compiled once per Verify
	Checks      []Check
}

// Check pairs a simulation input with the exact expected output text,
// either a witness path in wire form or "Reject".
type Check struct {
	Input string
	Want  string
}

// Package ariadne simulates nondeterministic finite automata and reports
// accepting runs as witness paths.
//
// An automaton is a plain-text description declaring a state count, final
// states, transition rules and optionally an input string. Simulating it
// yields either a rejection or a path: the exact sequence of states visited
// and the symbol consumed at each step.
//
// # Basic Usage
//
// Compile a description once and run it against its own input:
//
//	sim, err := ariadne.NewSimulator([]byte(description))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := sim.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(result.Output()) // "0 a 1 b 2" or "Reject"
//
// # Reusing an Automaton
//
// A compiled simulator is read-only and safe for concurrent use, so one
// description can be checked against many inputs:
//
//	sim, err := ariadne.NewSimulator([]byte(description))
//	for _, input := range inputs {
//	    result, err := sim.RunInput(input)
//	    ...
//	}
package ariadne

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/ariadne/pkg/desc"
	"github.com/praetorian-inc/ariadne/pkg/nfa"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/ariadne" without subpackages.
type (
	// Rule is a single transition of an automaton.
	Rule = types.Rule

	// Kind selects how a transition rule matches input.
	Kind = types.Kind

	// Path is the witness of an accepting run.
	Path = types.Path

	// Automaton is a compiled nondeterministic finite automaton.
	Automaton = nfa.Automaton

	// Description is a parsed automaton description.
	Description = desc.Description
)

// Re-export rule kind constants.
const (
	KindLiteral = types.KindLiteral
	KindRange   = types.KindRange
	KindClass   = types.KindClass
	KindEpsilon = types.KindEpsilon
)

// RejectOutput is the exact text emitted when an automaton rejects its input.
const RejectOutput = types.RejectOutput

// Result is the outcome of one simulation.
type Result struct {
	Accepted bool
	Path     *Path  // nil on rejection
	Input    string // the input that was simulated
}

// Output renders the result in the wire format: the witness path on
// acceptance, "Reject" otherwise.
func (r *Result) Output() string {
	return types.RenderOutcome(r.Path)
}

// Simulator wraps a compiled automaton together with the input it should
// run against.
type Simulator struct {
	desc  *desc.Description
	input string
	bound bool // an input is available, from the description or WithInput
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithInput binds an input string, overriding the description's own
// input: line. An empty string is a valid input.
func WithInput(input string) Option {
	return func(s *Simulator) {
		s.input = input
		s.bound = true
	}
}

// NewSimulator compiles an automaton description.
//
// The description's input: line, when present, becomes the bound input for
// Run; WithInput overrides it. A description without either can still be
// used through RunInput.
func NewSimulator(description []byte, opts ...Option) (*Simulator, error) {
	d, err := desc.Parse(description)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		desc:  d,
		input: d.Input,
		bound: d.HasInput,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run simulates the automaton against the bound input.
func (s *Simulator) Run() (*Result, error) {
	if !s.bound {
		return nil, fmt.Errorf("description has no input: line; bind one with WithInput or use RunInput")
	}
	return s.RunInput(s.input)
}

// RunInput simulates the automaton against input, ignoring the bound input.
func (s *Simulator) RunInput(input string) (*Result, error) {
	path, err := s.desc.Automaton.Run(input)
	if err != nil {
		return nil, err
	}
	return &Result{
		Accepted: path != nil,
		Path:     path,
		Input:    input,
	}, nil
}

// Automaton returns the compiled automaton for direct inspection.
func (s *Simulator) Automaton() *Automaton {
	return s.desc.Automaton
}

// Description returns the parsed description.
func (s *Simulator) Description() *Description {
	return s.desc
}

// Simulate compiles a description and runs it against its own input in one
// call.
//
// Example:
//
//	result, err := ariadne.Simulate([]byte("type: nfa\nstates: 2\nfinal: 1\nrules:\n0->1 a\ninput: a\n"))
//	fmt.Println(result.Output()) // "0 a 1"
func Simulate(description []byte) (*Result, error) {
	s, err := NewSimulator(description)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// SimulateFile reads a description file and runs it against its own input.
func SimulateFile(path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Simulate(content)
}

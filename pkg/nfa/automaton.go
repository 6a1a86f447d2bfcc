// Package nfa implements simulation of nondeterministic finite automata
// with witness-path reconstruction.
package nfa

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Automaton is a nondeterministic finite automaton over states 0..n-1.
// State 0 is always the start state. Per-state rule order is declaration
// order and drives exploration priority, so it is part of the automaton's
// observable behavior, not an implementation detail.
//
// An Automaton is built once and read-only afterward; concurrent Run calls
// against the same value are safe.
type Automaton struct {
	numStates int
	numRules  int
	finals    *bitset.BitSet
	rules     [][]types.Rule
}

// New creates an automaton with numStates states, no final states and no
// rules.
func New(numStates int) (*Automaton, error) {
	if numStates <= 0 {
		return nil, fmt.Errorf("state count must be positive, got %d", numStates)
	}
	return &Automaton{
		numStates: numStates,
		finals:    bitset.New(uint(numStates)),
		rules:     make([][]types.Rule, numStates),
	}, nil
}

// MarkFinal marks state as accepting.
func (a *Automaton) MarkFinal(state int) error {
	if state < 0 || state >= a.numStates {
		return fmt.Errorf("final state %d out of range [0, %d)", state, a.numStates)
	}
	a.finals.Set(uint(state))
	return nil
}

// AddRule appends an outgoing rule to src, after every rule already added
// for src. Both endpoints are bounds-checked and class rules must carry a
// known tag. Range bounds are not validated: an inverted range never
// matches anything.
func (a *Automaton) AddRule(src int, r types.Rule) error {
	if src < 0 || src >= a.numStates {
		return fmt.Errorf("source state %d out of range [0, %d)", src, a.numStates)
	}
	if r.Dest < 0 || r.Dest >= a.numStates {
		return fmt.Errorf("destination state %d out of range [0, %d)", r.Dest, a.numStates)
	}
	if r.Kind == types.KindClass && !types.ValidClassTag(r.Ch) {
		return fmt.Errorf("unknown character class %q", string(r.Ch))
	}
	a.rules[src] = append(a.rules[src], r)
	a.numRules++
	return nil
}

// NumStates returns the number of states.
func (a *Automaton) NumStates() int {
	return a.numStates
}

// NumRules returns the total number of rules across all states.
func (a *Automaton) NumRules() int {
	return a.numRules
}

// IsFinal reports whether state is accepting. Out-of-range states are not
// final.
func (a *Automaton) IsFinal(state int) bool {
	return state >= 0 && state < a.numStates && a.finals.Test(uint(state))
}

// Rules returns the outgoing rules of state in declaration order. The
// returned slice is the automaton's own; callers must not modify it.
// Out-of-range states have no rules.
func (a *Automaton) Rules(state int) []types.Rule {
	if state < 0 || state >= a.numStates {
		return nil
	}
	return a.rules[state]
}

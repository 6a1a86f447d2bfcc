package types

import (
	"strconv"
	"strings"
)

// RejectOutput is the exact text emitted when an automaton rejects its input.
const RejectOutput = "Reject"

// Path is the witness of an accepting run: the states visited in order and
// the symbol consumed at each step. An empty symbol at position i means step
// i was an epsilon transition. A well-formed path always starts at state 0
// and satisfies len(Consumed) == len(States)-1.
// Constructed exactly once when an accepting configuration is found;
// immutable afterward.
type Path struct {
	States   []int    `json:"states"`
	Consumed []string `json:"consumed"`
}

// Steps returns the number of transitions taken.
func (p *Path) Steps() int {
	return len(p.Consumed)
}

// Final returns the state the run ended in.
func (p *Path) Final() int {
	return p.States[len(p.States)-1]
}

// Input returns the string the path consumed, epsilon steps contributing
// nothing.
func (p *Path) Input() string {
	return strings.Join(p.Consumed, "")
}

// String renders the path in its wire form: alternating state and symbol
// tokens separated by single spaces, ending with the final state. An epsilon
// symbol keeps its token position, so an epsilon step yields two spaces in a
// row. No trailing newline or space.
func (p *Path) String() string {
	var b strings.Builder
	for i, sym := range p.Consumed {
		b.WriteString(strconv.Itoa(p.States[i]))
		b.WriteByte(' ')
		b.WriteString(sym)
		b.WriteByte(' ')
	}
	b.WriteString(strconv.Itoa(p.States[len(p.States)-1]))
	return b.String()
}

// RenderOutcome returns the canonical output text for a simulation outcome:
// the path's wire form on acceptance, RejectOutput when p is nil.
func RenderOutcome(p *Path) string {
	if p == nil {
		return RejectOutput
	}
	return p.String()
}

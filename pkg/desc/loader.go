// Package desc loads automaton descriptions from their textual form and
// enumerates description files on disk.
package desc

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/praetorian-inc/ariadne/pkg/nfa"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Description is a parsed automaton description.
type Description struct {
	Automaton *nfa.Automaton
	Input     string // simulation input from the description's input: line
	HasInput  bool   // false when the description carries no input: line
}

// Parse reads the line-oriented description format:
//
//	type: nfa
//	states: 3
//	final: 2
//	rules:
//	0->1 a b-z \d \e
//	1->2 x
//	input: abc
//
// Rule tokens are one character (literal; a space stands for itself), x-y
// (inclusive range), \c with c in d w s D W S . (class), or \e (epsilon).
// The input value is everything after "input: ", verbatim; when several
// input lines appear the last one wins, and a bare "input:" only ends the
// rules block. Empty lines are skipped and unknown lines outside the rules
// block are ignored.
func Parse(data []byte) (*Description, error) {
	desc := &Description{}
	var (
		a            *nfa.Automaton
		typ          string
		readingRules bool
	)

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		lineNo := i + 1

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "type:") {
			typ = strings.TrimSpace(line[len("type:"):])
			if typ != "nfa" {
				return nil, fmt.Errorf("line %d: unsupported automaton type %q", lineNo, typ)
			}
			continue
		}
		if typ != "nfa" {
			return nil, fmt.Errorf("line %d: description must declare type: nfa first", lineNo)
		}

		switch {
		case strings.HasPrefix(line, "states:"):
			if a != nil {
				return nil, fmt.Errorf("line %d: duplicate states declaration", lineNo)
			}
			n, err := strconv.Atoi(strings.TrimSpace(line[len("states:"):]))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid state count: %w", lineNo, err)
			}
			if a, err = nfa.New(n); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case strings.HasPrefix(line, "final:"):
			if a == nil {
				return nil, fmt.Errorf("line %d: states must be declared before final", lineNo)
			}
			readingRules = false
			content := strings.TrimSpace(line[len("final:"):])
			for _, tok := range strings.Split(content, " ") {
				if tok == "" {
					continue
				}
				s, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid final state %q", lineNo, tok)
				}
				if err := a.MarkFinal(s); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}

		case strings.HasPrefix(line, "rules:"):
			if a == nil {
				return nil, fmt.Errorf("line %d: states must be declared before rules", lineNo)
			}
			readingRules = true

		case strings.HasPrefix(line, "input:"):
			readingRules = false
			if strings.HasPrefix(line, "input: ") {
				desc.Input = line[len("input: "):]
				desc.HasInput = true
			}

		case readingRules:
			if err := parseRuleLine(a, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}

	if a == nil {
		return nil, fmt.Errorf("description has no states declaration")
	}
	desc.Automaton = a
	return desc, nil
}

// ParseFile loads a description from path.
func ParseFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading description: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// parseRuleLine parses "src->dst tok tok..." and adds one rule per token.
func parseRuleLine(a *nfa.Automaton, line string) error {
	arrow := strings.Index(line, "->")
	space := strings.IndexByte(line, ' ')
	if arrow == -1 || space == -1 || arrow >= space {
		return fmt.Errorf("malformed rule line %q", line)
	}

	src, err := strconv.Atoi(strings.TrimSpace(line[:arrow]))
	if err != nil {
		return fmt.Errorf("invalid source state in rule line %q", line)
	}
	dst, err := strconv.Atoi(strings.TrimSpace(line[arrow+2 : space]))
	if err != nil {
		return fmt.Errorf("invalid destination state in rule line %q", line)
	}

	content := line[space+1:]
	for content != "" {
		p := strings.IndexByte(content, ' ')
		if p == -1 {
			p = len(content)
		} else if p == 0 {
			// A token starting with a space is the space character itself.
			p = 1
		}

		rule, err := parseToken(content[:p], dst)
		if err != nil {
			return err
		}
		// A single-character token must be followed by a separator space or
		// the end of the line.
		if p == 1 && p < len(content) && content[p] != ' ' {
			return fmt.Errorf("malformed rule token at %q", content)
		}
		if err := a.AddRule(src, rule); err != nil {
			return err
		}

		if p+1 >= len(content) {
			content = ""
		} else {
			content = content[p+1:]
		}
	}
	return nil
}

// parseToken converts one rule token into a transition rule.
func parseToken(tok string, dst int) (types.Rule, error) {
	runes := []rune(tok)
	switch {
	case len(runes) == 3 && runes[1] == '-':
		return types.Rule{Dest: dst, Kind: types.KindRange, Ch: runes[0], To: runes[2]}, nil
	case len(runes) == 2 && runes[0] == '\\':
		if runes[1] == 'e' {
			return types.Rule{Dest: dst, Kind: types.KindEpsilon}, nil
		}
		return types.Rule{Dest: dst, Kind: types.KindClass, Ch: runes[1]}, nil
	case len(runes) == 1:
		return types.Rule{Dest: dst, Kind: types.KindLiteral, Ch: runes[0]}, nil
	default:
		return types.Rule{}, fmt.Errorf("malformed rule token %q", tok)
	}
}

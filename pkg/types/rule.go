package types

import (
	"fmt"
	"unicode"
)

// Kind selects how a transition rule matches input.
type Kind int

const (
	// KindLiteral matches exactly one character.
	KindLiteral Kind = iota
	// KindRange matches any character in an inclusive code-point range.
	KindRange
	// KindClass matches a predefined character class.
	KindClass
	// KindEpsilon changes state without consuming input.
	KindEpsilon
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindRange:
		return "range"
	case KindClass:
		return "class"
	case KindEpsilon:
		return "epsilon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Rule is a single outgoing transition of an automaton state.
// Rules are built once by the loader and immutable afterward.
type Rule struct {
	Dest int  // target state index
	Kind Kind // how the rule matches
	Ch   rune // literal character, range lower bound, or class tag (d w s D W S .)
	To   rune // range upper bound (KindRange only)
}

// Matches reports whether the rule consumes the character c.
// Epsilon rules never consume input; calling Matches on one is a contract
// violation and returns an error, as does an unknown class tag. Range
// bounds are not validated here; a rule with Ch > To simply never matches.
func (r Rule) Matches(c rune) (bool, error) {
	switch r.Kind {
	case KindLiteral:
		return c == r.Ch, nil
	case KindRange:
		return r.Ch <= c && c <= r.To, nil
	case KindClass:
		return matchClass(r.Ch, c)
	case KindEpsilon:
		return false, fmt.Errorf("epsilon rule to state %d cannot match a character", r.Dest)
	default:
		return false, fmt.Errorf("unknown rule kind %d", int(r.Kind))
	}
}

// ValidClassTag reports whether tag names a supported character class.
func ValidClassTag(tag rune) bool {
	switch tag {
	case 'd', 'w', 's', 'D', 'W', 'S', '.':
		return true
	}
	return false
}

// matchClass evaluates a class tag against c. The uppercase tags are the
// exact complements of their lowercase counterparts.
func matchClass(tag, c rune) (bool, error) {
	switch tag {
	case 'd':
		return isDigit(c), nil
	case 'w':
		return isWord(c), nil
	case 's':
		return isSpace(c), nil
	case 'D':
		return !isDigit(c), nil
	case 'W':
		return !isWord(c), nil
	case 'S':
		return !isSpace(c), nil
	case '.':
		return c != '\r' && c != '\n', nil
	default:
		return false, fmt.Errorf("unknown character class %q", string(tag))
	}
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isWord reports whether c is alphanumeric or underscore.
func isWord(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// isSpace reports whether c is whitespace.
func isSpace(c rune) bool {
	return unicode.IsSpace(c)
}

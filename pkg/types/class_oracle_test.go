package types

import (
	"fmt"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/require"
)

// TestClassTags_RegexOracle cross-checks every class tag against the
// equivalent regex predicate over the full ASCII range. The class semantics
// (\d \w \s and complements) are meant to behave like their regex
// counterparts for ASCII input; this pins that down against an independent
// implementation.
func TestClassTags_RegexOracle(t *testing.T) {
	oracles := map[rune]*regexp2.Regexp{
		'd': regexp2.MustCompile(`^\d$`, 0),
		'w': regexp2.MustCompile(`^\w$`, 0),
		's': regexp2.MustCompile(`^\s$`, 0),
		'D': regexp2.MustCompile(`^\D$`, 0),
		'W': regexp2.MustCompile(`^\W$`, 0),
		'S': regexp2.MustCompile(`^\S$`, 0),
		// The dot tag excludes both CR and LF, unlike a default regex dot
		// which only excludes LF.
		'.': regexp2.MustCompile(`^[^\r\n]$`, 0),
	}

	for tag, oracle := range oracles {
		t.Run(fmt.Sprintf("class_%c", tag), func(t *testing.T) {
			rule := Rule{Dest: 1, Kind: KindClass, Ch: tag}

			for c := rune(0); c < 128; c++ {
				got, err := rule.Matches(c)
				require.NoError(t, err)

				want, err := oracle.MatchString(string(c))
				require.NoError(t, err)

				require.Equal(t, want, got,
					"class %c disagrees with oracle on %U (%q)", tag, c, string(c))
			}
		})
	}
}

package nfa

import (
	"strings"
	"testing"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// BenchmarkRun_ConsumingLoop measures the linear case: one looping state
// consuming a long input, then a single accepting hop.
func BenchmarkRun_ConsumingLoop(b *testing.B) {
	a, err := New(2)
	if err != nil {
		b.Fatal(err)
	}
	if err := a.MarkFinal(1); err != nil {
		b.Fatal(err)
	}
	if err := a.AddRule(0, types.Rule{Dest: 0, Kind: types.KindClass, Ch: 'w'}); err != nil {
		b.Fatal(err)
	}
	if err := a.AddRule(0, types.Rule{Dest: 1, Kind: types.KindClass, Ch: 'd'}); err != nil {
		b.Fatal(err)
	}

	input := strings.Repeat("x", 1023) + "7"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		path, err := a.Run(input)
		if err != nil {
			b.Fatal(err)
		}
		if path == nil {
			b.Fatal("expected acceptance")
		}
	}
}

// BenchmarkRun_Backtracking measures the worst case: duplicate ambiguous
// rules force the search to enumerate every branch before rejecting.
func BenchmarkRun_Backtracking(b *testing.B) {
	a, err := New(2)
	if err != nil {
		b.Fatal(err)
	}
	if err := a.MarkFinal(1); err != nil {
		b.Fatal(err)
	}
	if err := a.AddRule(0, types.Rule{Dest: 0, Kind: types.KindLiteral, Ch: 'a'}); err != nil {
		b.Fatal(err)
	}
	if err := a.AddRule(0, types.Rule{Dest: 0, Kind: types.KindLiteral, Ch: 'a'}); err != nil {
		b.Fatal(err)
	}

	input := strings.Repeat("a", 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		path, err := a.Run(input)
		if err != nil {
			b.Fatal(err)
		}
		if path != nil {
			b.Fatal("expected rejection")
		}
	}
}

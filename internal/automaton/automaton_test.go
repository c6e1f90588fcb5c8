package automaton_test

import (
	"testing"

	"github.com/datalang/dlc/internal/automaton"
	"github.com/datalang/dlc/internal/token"
)

func TestBuildRecognizesIdentifier(t *testing.T) {
	dfa := automaton.Build()
	n, kind, ok := dfa.Run("foo_bar baz")
	if !ok {
		t.Fatalf("expected a match")
	}
	if n != len("foo_bar") || kind != token.IDENT {
		t.Fatalf("got n=%d kind=%v", n, kind)
	}
}

func TestBuildMaximalMunchOnNumbers(t *testing.T) {
	dfa := automaton.Build()

	cases := []struct {
		input string
		n     int
		kind  token.Kind
	}{
		{"3;", 1, token.INT},
		{"3.;", 1, token.INT}, // the trailing '.' is not consumed: "3." alone is not a valid float
		{"3.14;", 4, token.FLOAT},
		{"1e10;", 4, token.FLOAT},
		{"1.5e-3;", 6, token.FLOAT},
	}
	for _, c := range cases {
		n, kind, ok := dfa.Run(c.input)
		if !ok {
			t.Fatalf("%q: expected a match", c.input)
		}
		if n != c.n || kind != c.kind {
			t.Errorf("%q: got n=%d kind=%v, want n=%d kind=%v", c.input, n, kind, c.n, c.kind)
		}
	}
}

func TestBuildDisambiguatesOperators(t *testing.T) {
	dfa := automaton.Build()

	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"->", token.ARROW},
		{"-", token.MINUS},
		{"==", token.EQ},
		{"=", token.ASSIGN},
		{"=>", token.FAT_ARROW},
		{"|>", token.PIPE},
		{"||", token.OR},
		{"|", token.PIPE_CHAR},
		{"..", token.DOT_DOT},
		{".", token.DOT},
	}
	for _, c := range cases {
		_, kind, ok := dfa.Run(c.input)
		if !ok || kind != c.kind {
			t.Errorf("%q: got kind=%v ok=%v, want %v", c.input, kind, ok, c.kind)
		}
	}
}

func TestBuildPrefersSlashOverUnterminatedComment(t *testing.T) {
	dfa := automaton.Build()
	n, kind, ok := dfa.Run("/ x")
	if !ok || n != 1 || kind != token.SLASH {
		t.Fatalf("got n=%d kind=%v ok=%v", n, kind, ok)
	}
}

func TestBuildRecognizesLineAndBlockComments(t *testing.T) {
	dfa := automaton.Build()

	n, kind, ok := dfa.Run("// trailing comment\nlet")
	if !ok || kind != token.COMMENT || n != len("// trailing comment") {
		t.Fatalf("got n=%d kind=%v ok=%v", n, kind, ok)
	}

	n, kind, ok = dfa.Run("/* block */x")
	if !ok || kind != token.COMMENT || n != len("/* block */") {
		t.Fatalf("got n=%d kind=%v ok=%v", n, kind, ok)
	}
}

func TestBuildStringLiteralStopsAtUnescapedQuote(t *testing.T) {
	dfa := automaton.Build()
	n, kind, ok := dfa.Run(`"hello\"world" rest`)
	if !ok || kind != token.STRING || n != len(`"hello\"world"`) {
		t.Fatalf("got n=%d kind=%v ok=%v", n, kind, ok)
	}
}

func TestBuildRejectsUnmatchedInput(t *testing.T) {
	dfa := automaton.Build()
	_, _, ok := dfa.Run("$")
	if ok {
		t.Fatalf("expected no match for an unrecognized byte")
	}
}

func TestSubsetConstructMergesEquivalentNFAStates(t *testing.T) {
	n := automaton.NewNFA(2)
	n.Start = 0
	n.AddRangeTransition(0, 'a', 'a', 1)
	n.MarkFinal(1, token.IDENT)

	dfa := automaton.SubsetConstruct(n)
	consumed, kind, ok := dfa.Run("a")
	if !ok || consumed != 1 || kind != token.IDENT {
		t.Fatalf("got consumed=%d kind=%v ok=%v", consumed, kind, ok)
	}
}

func TestNFAEpsilonClosureIncludesSeeds(t *testing.T) {
	n := automaton.NewNFA(3)
	n.AddTransition(0, automaton.Epsilon, 1)
	n.AddTransition(1, automaton.Epsilon, 2)

	closure := n.EpsilonClosure([]int{0})
	seen := map[int]bool{}
	for _, s := range closure {
		seen[s] = true
	}
	for _, want := range []int{0, 1, 2} {
		if !seen[want] {
			t.Errorf("expected epsilon closure to include state %d, got %v", want, closure)
		}
	}
}

package lexer_test

import (
	"testing"

	"github.com/datalang/dlc/internal/lexer"
	"github.com/datalang/dlc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks, diags := lexer.New("let x = foo;").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []token.Kind{token.LET, token.IDENT, token.ASSIGN, token.IDENT, token.SEMICOLON, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeDropsWhitespaceAndComments(t *testing.T) {
	src := "let x = 1; // a comment\n/* block */ let y = 2;"
	toks, diags := lexer.New(src).Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	for _, tok := range toks {
		if tok.Kind == token.WHITESPACE || tok.Kind == token.COMMENT {
			t.Fatalf("expected whitespace/comments to be filtered, found %v", tok)
		}
	}
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	toks, _ := lexer.New("let x\n= 1;").Tokenize()
	// "let" line1 col1, "x" line1 col5, "=" line2 col1
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Line != 1 || toks[1].Column != 5 {
		t.Errorf("got %+v", toks[1])
	}
	if toks[2].Line != 2 || toks[2].Column != 1 {
		t.Errorf("got %+v", toks[2])
	}
}

func TestTokenizeUnterminatedStringReportsDiagnostic(t *testing.T) {
	_, diags := lexer.New(`let x = "oops` + "\n").Tokenize()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if diags[0].Message != "unterminated string literal" {
		t.Errorf("got %q", diags[0].Message)
	}
	if diags[0].Suggestion == "" {
		t.Errorf("expected a suggestion")
	}
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, diags := lexer.New("/* never closed").Tokenize()
	if len(diags) != 1 || diags[0].Message != "unterminated block comment" {
		t.Fatalf("got %v", diags)
	}
}

func TestTokenizeUnrecognizedCharacterSuggestsFix(t *testing.T) {
	_, diags := lexer.New("let x = 1; # oops").Tokenize()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if diags[0].Lexeme != "#" {
		t.Errorf("got lexeme %q", diags[0].Lexeme)
	}
	if diags[0].Suggestion == "" {
		t.Errorf("expected a wrong-ecosystem suggestion for '#'")
	}
}

func TestTokenizeNumberLiterals(t *testing.T) {
	toks, diags := lexer.New("3 3.14 1e10 1.5e-3").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.INT, "3"},
		{token.FLOAT, "3.14"},
		{token.FLOAT, "1e10"},
		{token.FLOAT, "1.5e-3"},
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Lexeme != w.lexeme {
			t.Errorf("token %d: got kind=%v lexeme=%q, want kind=%v lexeme=%q", i, toks[i].Kind, toks[i].Lexeme, w.kind, w.lexeme)
		}
	}
}

func TestTokenizeDotNotFollowedByDigitIsIntThenDot(t *testing.T) {
	toks, _ := lexer.New("3.foo").Tokenize()
	if toks[0].Kind != token.INT || toks[0].Lexeme != "3" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Kind != token.DOT {
		t.Fatalf("got %+v", toks[1])
	}
}

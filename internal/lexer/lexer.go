// Package lexer drives the automaton-compiled DFA over source text with
// maximal-munch tokenization, classifies identifier-shaped lexemes as
// keywords, and surfaces lexical errors with source-line context.
//
// The outer shape (Lexer struct, New, line/column bookkeeping) is grounded
// on the teacher's internal/lexer/lexer.go; the actual token recognition is
// delegated to internal/automaton instead of the teacher's hand-written
// switch, per spec §4.B.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/datalang/dlc/internal/automaton"
	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/token"
)

// dfa is built once per process: the automaton core has no per-compilation
// state, so every Lexer shares the same compiled table.
var dfa = automaton.Build()

type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	lines  []string // source split by '\n', for diagnostic context
	Diags  diagnostics.Bag
}

func New(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
		lines:  strings.Split(input, "\n"),
	}
}

func (l *Lexer) contextLine() string {
	if l.line-1 < len(l.lines) {
		return l.lines[l.line-1]
	}
	return ""
}

// advance moves pos forward by n bytes, updating line/column: line advances
// on every '\n' consumed, column resets to 1 on a newline and otherwise
// increases by one per byte (spec §4.B "position tracking").
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.pos+i] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

// wrongEcosystemSuggestion returns a suggestion string for a handful of
// glyphs that commonly appear when porting code from a different language
// ecosystem into DataLang, per spec §4.B's diagnostic envelope.
func wrongEcosystemSuggestion(r rune) string {
	switch r {
	case '@':
		return "DataLang has no '@' sigil; aggregate calls are plain identifiers like sum(...)"
	case '#':
		return "DataLang comments use // and /* */, not '#'"
	case '\'':
		return "DataLang string literals use double quotes, not single quotes"
	default:
		if r > unicode.MaxASCII {
			return "DataLang source tokens are ASCII-only; non-ASCII bytes are not permitted here"
		}
		return ""
	}
}

// NextToken returns the next token in the stream, or an EOF token once the
// input is exhausted. Whitespace and comment tokens are returned to the
// caller; Tokenize filters them before the parser sees the stream.
func (l *Lexer) NextToken() token.Token {
	if l.pos >= len(l.input) {
		return token.Token{Kind: token.EOF, Line: l.line, Column: l.column}
	}

	startLine, startCol := l.line, l.column
	remaining := l.input[l.pos:]

	consumed, kind, ok := dfa.Run(remaining)
	// An unclosed "/*" still matches its leading '/' as SLASH, so it is
	// routed to lexError explicitly.
	if !ok || (kind == token.SLASH && strings.HasPrefix(remaining, "/*")) {
		return l.lexError(startLine, startCol)
	}

	lexeme := remaining[:consumed]

	switch kind {
	case token.COMMENT:
		if strings.HasPrefix(lexeme, "/*") && !strings.HasSuffix(lexeme, "*/") {
			l.advance(consumed)
			l.Diags.Errorf(startLine, startCol, lexeme, "unterminated block comment")
			return token.Token{Kind: token.ILLEGAL, Lexeme: lexeme, Line: startLine, Column: startCol}
		}
	case token.IDENT:
		kind = token.LookupIdent(lexeme)
	}

	l.advance(consumed)
	return token.Token{Kind: kind, Lexeme: lexeme, Line: startLine, Column: startCol}
}

// lexError handles input the DFA cannot turn into a token: an unterminated
// string (newline hit before the closing quote, so no accepting state is
// reached), an unterminated block comment (EOF hit before "*/"; NextToken
// routes it here although its leading '/' alone matches SLASH), or a single
// unrecognized byte. It consumes exactly one byte/rune (or, for unterminated strings and
// comments, the rest of the offending line/input) and reports a lexical
// error with source-line context and, for known-wrong glyphs, a suggestion.
func (l *Lexer) lexError(startLine, startCol int) token.Token {
	remaining := l.input[l.pos:]

	if strings.HasPrefix(remaining, "\"") {
		end := strings.IndexByte(remaining, '\n')
		if end == -1 {
			end = len(remaining)
		}
		l.Diags.Add(diagnostics.Diagnostic{
			Severity:   diagnostics.Error,
			Line:       startLine,
			Column:     startCol,
			Message:    "unterminated string literal",
			Context:    l.contextLine(),
			Suggestion: "close the string with a matching '\"' before the end of the line",
		})
		l.advance(end)
		return token.Token{Kind: token.ILLEGAL, Lexeme: remaining[:end], Line: startLine, Column: startCol}
	}

	if strings.HasPrefix(remaining, "/*") {
		l.Diags.Add(diagnostics.Diagnostic{
			Severity:   diagnostics.Error,
			Line:       startLine,
			Column:     startCol,
			Message:    "unterminated block comment",
			Context:    l.contextLine(),
			Suggestion: "close the comment with '*/'",
		})
		consumed := len(remaining)
		l.advance(consumed)
		return token.Token{Kind: token.ILLEGAL, Lexeme: remaining, Line: startLine, Column: startCol}
	}

	r, w := utf8.DecodeRuneInString(remaining)
	lexeme := remaining[:w]
	d := diagnostics.Diagnostic{
		Severity: diagnostics.Error,
		Line:     startLine,
		Column:   startCol,
		Message:  "unrecognized character",
		Lexeme:   lexeme,
		Context:  l.contextLine(),
	}
	if s := wrongEcosystemSuggestion(r); s != "" {
		d.Suggestion = s
	}
	l.Diags.Add(d)
	l.advance(w)
	return token.Token{Kind: token.ILLEGAL, Lexeme: lexeme, Line: startLine, Column: startCol}
}

// Tokenize runs NextToken to exhaustion, dropping whitespace and comments
// (spec §4.B), and appends a trailing EOF sentinel.
func (l *Lexer) Tokenize() ([]token.Token, []diagnostics.Diagnostic) {
	var out []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			out = append(out, tok)
			break
		}
		if tok.Kind == token.WHITESPACE || tok.Kind == token.COMMENT {
			continue
		}
		out = append(out, tok)
	}
	return out, l.Diags.Items()
}

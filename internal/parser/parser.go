// Package parser implements the recursive-descent LL(1) parser with
// Pratt-style precedence climbing for expressions described in spec §4.C.
// It is organized the way the teacher splits parsing across small
// single-concern files (internal/parser/expressions_*.go,
// internal/parser/statements_*.go), each a method on a shared *Parser.
package parser

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/token"
)

// syncKeywords are the top-level keywords panic-mode recovery resynchronizes
// on, per spec §4.C "Error recovery (panic mode)".
var syncKeywords = map[token.Kind]bool{
	token.LET: true, token.FN: true, token.DATA: true, token.IF: true,
	token.FOR: true, token.RETURN: true, token.IMPORT: true, token.EXPORT: true,
}

type Parser struct {
	tokens []token.Token
	pos    int
	diags  diagnostics.Bag
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns a well-formed Program node (with ast.BadStmt marking
// recovered spans) and the accumulated parse diagnostics, per spec §4.C's
// "public guarantee".
func Parse(tokens []token.Token) (*ast.Program, []diagnostics.Diagnostic) {
	p := New(tokens)
	prog := p.parseProgram()
	return prog, p.diags.Items()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of kind k or records a parse error and returns the
// zero Token, leaving the cursor in place for recovery.
func (p *Parser) expect(k token.Kind, context string) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	p.errorf("expected %s %s, found '%s'", token.KindName(k), context, p.cur().Lexeme)
	return token.Token{}, false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	t := p.cur()
	p.diags.Errorf(t.Line, t.Column, t.Lexeme, format, args...)
}

// synchronize implements panic-mode recovery: skip tokens until the next
// ';' is consumed or the next token starts a new top-level construct (spec
// §4.C). It is always called at most once per reported error, so no
// recovery episode produces more than one diagnostic.
func (p *Parser) synchronize() {
	for !p.atEOF() {
		if p.cur().Kind == token.SEMICOLON {
			p.advance()
			return
		}
		if syncKeywords[p.cur().Kind] {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEOF() {
		item := p.parseTopItem()
		if item != nil {
			prog.Items = append(prog.Items, item)
		}
	}
	return prog
}

func (p *Parser) parseTopItem() ast.Statement {
	switch p.cur().Kind {
	case token.LET:
		return p.parseLetDecl()
	case token.FN:
		return p.parseFnDecl()
	case token.DATA:
		return p.parseDataDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.EXPORT:
		return p.parseExportDecl()
	default:
		return p.parseStmt()
	}
}

package parser

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/token"
)

func (p *Parser) parseStmt() ast.Statement {
	switch p.cur().Kind {
	case token.LET:
		return p.parseLetDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.LBRACE:
		block, ok := p.parseBlockBody()
		if !ok {
			return &ast.BadStmt{Tok: p.cur()}
		}
		return block
	default:
		return p.parseExprStmt()
	}
}

// parseBlockBody parses "{" { Stmt } "}", used both by Block-as-Stmt and by
// function/if/for bodies.
func (p *Parser) parseBlockBody() (*ast.Block, bool) {
	tok, ok := p.expect(token.LBRACE, "to open block")
	if !ok {
		p.synchronize()
		return nil, false
	}
	block := &ast.Block{Tok: tok}
	for !p.check(token.RBRACE) && !p.atEOF() {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	if _, ok := p.expect(token.RBRACE, "to close block"); !ok {
		p.synchronize()
		return block, false
	}
	return block, true
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.advance() // 'if'
	cond := p.parseExpr()
	then, ok := p.parseBlockBody()
	if !ok {
		return &ast.BadStmt{Tok: tok}
	}
	stmt := &ast.IfStmt{Tok: tok, Cond: cond, Then: then}
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			elseIf := p.parseIfStmt().(*ast.IfStmt)
			stmt.ElseIf = elseIf
		} else {
			elseBlock, ok := p.parseBlockBody()
			if !ok {
				return stmt
			}
			stmt.ElseBlock = elseBlock
		}
	}
	return stmt
}

func (p *Parser) parseForStmt() ast.Statement {
	tok := p.advance() // 'for'
	iterTok, ok := p.expect(token.IDENT, "as loop variable")
	if !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	if _, ok := p.expect(token.IN, "after loop variable"); !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	iterable := p.parseExpr()
	body, ok := p.parseBlockBody()
	if !ok {
		return &ast.BadStmt{Tok: tok}
	}
	return &ast.ForStmt{Tok: tok, Iterator: iterTok.Lexeme, Iterable: iterable, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.advance() // 'return'
	stmt := &ast.ReturnStmt{Tok: tok}
	if !p.check(token.SEMICOLON) {
		stmt.Value = p.parseExpr()
	}
	if _, ok := p.expect(token.SEMICOLON, "after return statement"); !ok {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.cur()
	expr := p.parseExpr()
	stmt := &ast.ExprStmt{Tok: tok, Value: expr}
	if _, ok := p.expect(token.SEMICOLON, "after expression statement"); !ok {
		p.synchronize()
	}
	return stmt
}

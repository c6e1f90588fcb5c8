package parser

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/token"
)

func (p *Parser) parseLetDecl() ast.Statement {
	tok := p.advance() // 'let'
	nameTok, ok := p.expect(token.IDENT, "after 'let'")
	if !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	decl := &ast.LetDecl{Tok: tok, Name: nameTok.Lexeme}
	if p.match(token.COLON) {
		ty, ok := p.parseType()
		if !ok {
			p.synchronize()
			return &ast.BadStmt{Tok: tok}
		}
		decl.Type = ty
	}
	if _, ok := p.expect(token.ASSIGN, "in let declaration"); !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	decl.Value = p.parseExpr()
	if _, ok := p.expect(token.SEMICOLON, "after let declaration"); !ok {
		p.synchronize()
		return decl
	}
	return decl
}

func (p *Parser) parseFnDecl() ast.Statement {
	tok := p.advance() // 'fn'
	nameTok, ok := p.expect(token.IDENT, "after 'fn'")
	if !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	decl := &ast.FnDecl{Tok: tok, Name: nameTok.Lexeme}
	if _, ok := p.expect(token.LPAREN, "in function parameter list"); !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	for !p.check(token.RPAREN) && !p.atEOF() {
		param, ok := p.parseParam()
		if !ok {
			p.synchronize()
			return decl
		}
		decl.Params = append(decl.Params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, ok := p.expect(token.RPAREN, "to close function parameter list"); !ok {
		p.synchronize()
		return decl
	}
	if p.match(token.ARROW) {
		ty, ok := p.parseType()
		if !ok {
			p.synchronize()
			return decl
		}
		decl.ReturnType = ty
	}
	body, ok := p.parseBlockBody()
	if !ok {
		return decl
	}
	decl.Body = body
	return decl
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	nameTok, ok := p.expect(token.IDENT, "in parameter")
	if !ok {
		return nil, false
	}
	param := &ast.Param{Tok: nameTok, Name: nameTok.Lexeme}
	if _, ok := p.expect(token.COLON, "after parameter name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	param.Type = ty
	return param, true
}

func (p *Parser) parseDataDecl() ast.Statement {
	tok := p.advance() // 'data'
	nameTok, ok := p.expect(token.IDENT, "after 'data'")
	if !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	decl := &ast.DataDecl{Tok: tok, Name: nameTok.Lexeme}
	if _, ok := p.expect(token.LBRACE, "to open data body"); !ok {
		p.synchronize()
		return decl
	}
	for !p.check(token.RBRACE) && !p.atEOF() {
		fieldTok, ok := p.expect(token.IDENT, "as field name")
		if !ok {
			p.synchronize()
			return decl
		}
		if _, ok := p.expect(token.COLON, "after field name"); !ok {
			p.synchronize()
			return decl
		}
		ty, ok := p.parseType()
		if !ok {
			p.synchronize()
			return decl
		}
		if _, ok := p.expect(token.SEMICOLON, "after field declaration"); !ok {
			p.synchronize()
			return decl
		}
		decl.Fields = append(decl.Fields, &ast.Field{Tok: fieldTok, Name: fieldTok.Lexeme, Type: ty})
	}
	p.expect(token.RBRACE, "to close data body")
	return decl
}

func (p *Parser) parseImportDecl() ast.Statement {
	tok := p.advance() // 'import'
	pathTok, ok := p.expect(token.STRING, "as import path")
	if !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	decl := &ast.ImportDecl{Tok: tok, Path: unquoteLiteral(pathTok.Lexeme)}
	if p.match(token.AS) {
		aliasTok, ok := p.expect(token.IDENT, "after 'as'")
		if !ok {
			p.synchronize()
			return decl
		}
		decl.Alias = aliasTok.Lexeme
	}
	p.expect(token.SEMICOLON, "after import declaration")
	return decl
}

func (p *Parser) parseExportDecl() ast.Statement {
	tok := p.advance() // 'export'
	nameTok, ok := p.expect(token.IDENT, "after 'export'")
	if !ok {
		p.synchronize()
		return &ast.BadStmt{Tok: tok}
	}
	decl := &ast.ExportDecl{Tok: tok, Name: nameTok.Lexeme}
	p.expect(token.SEMICOLON, "after export declaration")
	return decl
}

// parseType parses the Type production.
func (p *Parser) parseType() (*ast.TypeNode, bool) {
	t := p.cur()
	switch t.Kind {
	case token.TYPE_INT, token.TYPE_FLOAT, token.TYPE_STRING, token.TYPE_BOOL,
		token.TYPE_DATAFRAME, token.TYPE_VECTOR, token.TYPE_SERIES:
		p.advance()
		return &ast.TypeNode{Tok: t, Kind: ast.TypeNamePrimitive, Name: t.Lexeme}, true
	case token.IDENT:
		p.advance()
		return &ast.TypeNode{Tok: t, Kind: ast.TypeNameCustom, Name: t.Lexeme}, true
	case token.LBRACKET:
		p.advance()
		inner, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RBRACKET, "to close array type"); !ok {
			return nil, false
		}
		return &ast.TypeNode{Tok: t, Kind: ast.TypeArray, Inner: inner}, true
	case token.LPAREN:
		p.advance()
		var tuple []*ast.TypeNode
		for !p.check(token.RPAREN) && !p.atEOF() {
			inner, ok := p.parseType()
			if !ok {
				return nil, false
			}
			tuple = append(tuple, inner)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, ok := p.expect(token.RPAREN, "to close tuple type"); !ok {
			return nil, false
		}
		return &ast.TypeNode{Tok: t, Kind: ast.TypeTuple, TupleTypes: tuple}, true
	default:
		p.errorf("expected a type, found '%s'", t.Lexeme)
		return nil, false
	}
}

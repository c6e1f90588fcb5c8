package parser

import (
	"strconv"
	"strings"

	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/token"
)

func (p *Parser) parseExpr() ast.Expression {
	return p.parsePipeline()
}

func (p *Parser) parsePipeline() ast.Expression {
	first := p.parseTransform()
	if !p.check(token.PIPE) {
		return first
	}
	pipe := &ast.Pipeline{Tok: p.cur(), Stages: []ast.Expression{first}}
	for p.match(token.PIPE) {
		pipe.Stages = append(pipe.Stages, p.parseTransform())
	}
	return pipe
}

func (p *Parser) parseTransform() ast.Expression {
	switch p.cur().Kind {
	case token.FILTER:
		tok := p.advance()
		if _, ok := p.expect(token.LPAREN, "after 'filter'"); !ok {
			return &ast.Filter{Tok: tok}
		}
		lambda := p.parseLambda()
		p.expect(token.RPAREN, "to close 'filter'")
		return &ast.Filter{Tok: tok, Predicate: lambda}

	case token.MAP:
		tok := p.advance()
		if _, ok := p.expect(token.LPAREN, "after 'map'"); !ok {
			return &ast.MapTransform{Tok: tok}
		}
		lambda := p.parseLambda()
		p.expect(token.RPAREN, "to close 'map'")
		return &ast.MapTransform{Tok: tok, Fn: lambda}

	case token.REDUCE:
		tok := p.advance()
		if _, ok := p.expect(token.LPAREN, "after 'reduce'"); !ok {
			return &ast.Reduce{Tok: tok}
		}
		init := p.parseExpr()
		p.expect(token.COMMA, "between reduce's init and reducer")
		lambda := p.parseLambda()
		p.expect(token.RPAREN, "to close 'reduce'")
		return &ast.Reduce{Tok: tok, Init: init, Reducer: lambda}

	case token.SELECT:
		tok := p.advance()
		cols := p.parseIdentList("select")
		return &ast.Select{Tok: tok, Columns: cols}

	case token.GROUPBY:
		tok := p.advance()
		cols := p.parseIdentList("groupby")
		return &ast.GroupBy{Tok: tok, Columns: cols}

	case token.SUM, token.MEAN, token.COUNT, token.MIN, token.MAX:
		return p.parseAggregate()

	default:
		return p.parseAssign()
	}
}

func (p *Parser) parseIdentList(context string) []string {
	var names []string
	if _, ok := p.expect(token.LPAREN, "after '"+context+"'"); !ok {
		return names
	}
	for !p.check(token.RPAREN) && !p.atEOF() {
		nameTok, ok := p.expect(token.IDENT, "in "+context+" column list")
		if !ok {
			break
		}
		names = append(names, nameTok.Lexeme)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "to close "+context)
	return names
}

var aggKindByToken = map[token.Kind]ast.AggregateKind{
	token.SUM: ast.AggSum, token.MEAN: ast.AggMean, token.COUNT: ast.AggCount,
	token.MIN: ast.AggMin, token.MAX: ast.AggMax,
}

func (p *Parser) parseAggregate() ast.Expression {
	tok := p.advance()
	agg := &ast.Aggregate{Tok: tok, Kind: aggKindByToken[tok.Kind]}
	if _, ok := p.expect(token.LPAREN, "after aggregate name"); !ok {
		return agg
	}
	for !p.check(token.RPAREN) && !p.atEOF() {
		agg.Args = append(agg.Args, p.parseExpr())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "to close aggregate call")
	return agg
}

func (p *Parser) parseAssign() ast.Expression {
	left := p.parseLogicOr()
	if p.match(token.ASSIGN) {
		tok := p.peekAt(-1)
		value := p.parseAssign() // right-associative
		return &ast.Assign{Tok: tok, Target: left, Value: value}
	}
	return left
}

func (p *Parser) parseLogicOr() ast.Expression {
	left := p.parseLogicAnd()
	for p.check(token.OR) {
		tok := p.advance()
		right := p.parseLogicAnd()
		left = &ast.Binary{Tok: tok, Op: tok.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(token.AND) {
		tok := p.advance()
		right := p.parseEquality()
		left = &ast.Binary{Tok: tok, Op: tok.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.check(token.EQ) || p.check(token.NOT_EQ) {
		tok := p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Tok: tok, Op: tok.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseRange()
	for p.check(token.LT) || p.check(token.LTE) || p.check(token.GT) || p.check(token.GTE) {
		tok := p.advance()
		right := p.parseRange()
		left = &ast.Binary{Tok: tok, Op: tok.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRange() ast.Expression {
	left := p.parseAdd()
	if p.check(token.DOT_DOT) {
		tok := p.advance()
		right := p.parseAdd()
		return &ast.Range{Tok: tok, Lo: left, Hi: right}
	}
	return left
}

func (p *Parser) parseAdd() ast.Expression {
	left := p.parseMult()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		tok := p.advance()
		right := p.parseMult()
		left = &ast.Binary{Tok: tok, Op: tok.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMult() ast.Expression {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		tok := p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Tok: tok, Op: tok.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.MINUS) || p.check(token.BANG) {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Tok: tok, Op: tok.Kind, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(token.LPAREN):
			tok := p.advance()
			var args []ast.Expression
			for !p.check(token.RPAREN) && !p.atEOF() {
				args = append(args, p.parseExpr())
				if !p.match(token.COMMA) {
					break
				}
			}
			p.expect(token.RPAREN, "to close call arguments")
			expr = &ast.Call{Tok: tok, Callee: expr, Args: args}

		case p.check(token.LBRACKET):
			tok := p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACKET, "to close index expression")
			expr = &ast.Index{Tok: tok, Obj: expr, Idx: idx}

		case p.check(token.DOT):
			tok := p.advance()
			fieldTok, ok := p.expect(token.IDENT, "after '.'")
			if !ok {
				return expr
			}
			expr = &ast.Member{Tok: tok, Obj: expr, Field: fieldTok.Lexeme}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	t := p.cur()
	switch t.Kind {
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(t.Lexeme, 10, 64)
		return &ast.Literal{Tok: t, Kind: ast.LitInt, Int: v}

	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(t.Lexeme, 64)
		return &ast.Literal{Tok: t, Kind: ast.LitFloat, Float: v}

	case token.STRING:
		p.advance()
		return &ast.Literal{Tok: t, Kind: ast.LitString, Str: unquoteLiteral(t.Lexeme)}

	case token.BOOLEAN:
		p.advance()
		return &ast.Literal{Tok: t, Kind: ast.LitBool, Bool: t.Lexeme == "true"}

	case token.IDENT:
		p.advance()
		return &ast.Identifier{Tok: t, Name: t.Lexeme}

	case token.PIPE_CHAR:
		return p.parseLambda()

	case token.LOAD:
		p.advance()
		if _, ok := p.expect(token.LPAREN, "after 'load'"); !ok {
			return &ast.Load{Tok: t}
		}
		pathTok, ok := p.expect(token.STRING, "as load path")
		if !ok {
			return &ast.Load{Tok: t}
		}
		p.expect(token.RPAREN, "to close 'load'")
		return &ast.Load{Tok: t, Path: unquoteLiteral(pathTok.Lexeme)}

	case token.SAVE:
		p.advance()
		if _, ok := p.expect(token.LPAREN, "after 'save'"); !ok {
			return &ast.Save{Tok: t}
		}
		data := p.parseExpr()
		p.expect(token.COMMA, "between save's data and path")
		pathTok, ok := p.expect(token.STRING, "as save path")
		if !ok {
			return &ast.Save{Tok: t, Data: data}
		}
		p.expect(token.RPAREN, "to close 'save'")
		return &ast.Save{Tok: t, Data: data, Path: unquoteLiteral(pathTok.Lexeme)}

	case token.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(token.RPAREN, "to close parenthesized expression")
		return expr

	case token.LBRACKET:
		p.advance()
		arr := &ast.ArrayLiteral{Tok: t}
		for !p.check(token.RBRACKET) && !p.atEOF() {
			arr.Elems = append(arr.Elems, p.parseExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RBRACKET, "to close array literal")
		return arr

	default:
		p.errorf("expected an expression, found '%s'", t.Lexeme)
		p.advance()
		return &ast.Literal{Tok: t, Kind: ast.LitInt}
	}
}

// parseLambda parses "|" [ LambdaParam { "," LambdaParam } ] "|" Expr.
func (p *Parser) parseLambda() *ast.Lambda {
	tok, ok := p.expect(token.PIPE_CHAR, "to open lambda parameter list")
	if !ok {
		return &ast.Lambda{Tok: tok}
	}
	lambda := &ast.Lambda{Tok: tok}
	for !p.check(token.PIPE_CHAR) && !p.atEOF() {
		nameTok, ok := p.expect(token.IDENT, "as lambda parameter")
		if !ok {
			break
		}
		param := &ast.Param{Tok: nameTok, Name: nameTok.Lexeme}
		if p.match(token.COLON) {
			ty, ok := p.parseType()
			if ok {
				param.Type = ty
			}
		}
		lambda.Params = append(lambda.Params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.PIPE_CHAR, "to close lambda parameter list")
	lambda.Body = p.parseExpr()
	return lambda
}

// unquoteLiteral strips the surrounding quotes from a STRING token's lexeme
// and rewrites escape sequences to their runtime bytes; unknown escapes
// preserve the backslash (spec §4.C "String-literal content processing").
func unquoteLiteral(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	inner := lexeme[1 : len(lexeme)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i == len(inner)-1 {
			b.WriteByte(c)
			continue
		}
		next := inner[i+1]
		switch next {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
		}
		i++
	}
	return b.String()
}

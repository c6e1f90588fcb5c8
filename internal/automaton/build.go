package automaton

import "github.com/datalang/dlc/internal/token"

// Build assembles the per-token-family NFAs the lexer needs, unifies them
// under a single start state, and subset-constructs the resulting DFA. This
// is the one-time setup cost paid by lexer.New; the returned DFA then runs
// in O(input length).
func Build() *DFA {
	families := []*NFA{
		identifierFamily(),
		numberFamily(),
		stringFamily(),
		whitespaceFamily(),
		commentFamily(),
		operatorFamily(),
	}
	nfa := Union(families...)
	return SubsetConstruct(nfa)
}

func identifierFamily() *NFA {
	n := NewNFA(1)
	n.Start = 0
	id := n.AddState()
	isAlpha := func(id int) {
		n.AddRangeTransition(0, 'a', 'z', id)
		n.AddRangeTransition(0, 'A', 'Z', id)
		n.AddTransition(0, '_', id)
	}
	isAlpha(id)
	n.AddRangeTransition(id, 'a', 'z', id)
	n.AddRangeTransition(id, 'A', 'Z', id)
	n.AddRangeTransition(id, '0', '9', id)
	n.AddTransition(id, '_', id)
	n.MarkFinal(id, token.IDENT)
	return n
}

// numberFamily distinguishes "3." (INT then '.') from "3.14" (one FLOAT) by
// routing a following '.' through a non-accepting intermediate state that
// only reaches an accepting float state once at least one more digit
// follows, and accepts scientific notation only after a digit stream, per
// spec §4.A.
func numberFamily() *NFA {
	n := NewNFA(1)
	n.Start = 0
	intState := n.AddState()
	dotMaybe := n.AddState()
	floatState := n.AddState()
	expSign := n.AddState()
	expDigits := n.AddState()

	n.AddRangeTransition(0, '0', '9', intState)
	n.AddRangeTransition(intState, '0', '9', intState)
	n.MarkFinal(intState, token.INT)

	n.AddTransition(intState, '.', dotMaybe)
	n.AddRangeTransition(dotMaybe, '0', '9', floatState)
	n.AddRangeTransition(floatState, '0', '9', floatState)
	n.MarkFinal(floatState, token.FLOAT)

	// scientific notation, reachable after an integer or float digit stream
	for _, from := range []int{intState, floatState} {
		n.AddTransition(from, 'e', expSign)
		n.AddTransition(from, 'E', expSign)
	}
	n.AddTransition(expSign, '+', expSign)
	n.AddTransition(expSign, '-', expSign)
	n.AddRangeTransition(expSign, '0', '9', expDigits)
	n.AddRangeTransition(expDigits, '0', '9', expDigits)
	n.MarkFinal(expDigits, token.FLOAT)

	return n
}

// stringFamily recognizes a double-quoted string on a single line. Escapes
// are swallowed generically here (one arbitrary byte consumed after a
// backslash); validating known escapes and rewriting them happens in the
// parser per spec §4.C. Because the NFA defines no transition on '\n' while
// inside an unterminated string, maximal munch simply fails to reach an
// accepting state, which the lexer reports as an unterminated-string error.
func stringFamily() *NFA {
	n := NewNFA(1)
	n.Start = 0
	inside := n.AddState()
	escape := n.AddState()
	closed := n.AddState()

	n.AddTransition(0, '"', inside)
	for b := 0; b < AlphabetSize; b++ {
		if b == '"' || b == '\\' || b == '\n' {
			continue
		}
		n.AddTransition(inside, b, inside)
	}
	n.AddTransition(inside, '\\', escape)
	for b := 0; b < AlphabetSize; b++ {
		if b == '\n' {
			continue
		}
		n.AddTransition(escape, b, inside)
	}
	n.AddTransition(inside, '"', closed)
	n.MarkFinal(closed, token.STRING)
	return n
}

func whitespaceFamily() *NFA {
	n := NewNFA(1)
	n.Start = 0
	ws := n.AddState()
	for _, b := range []byte{' ', '\t', '\r', '\n'} {
		n.AddTransition(0, int(b), ws)
		n.AddTransition(ws, int(b), ws)
	}
	n.MarkFinal(ws, token.WHITESPACE)
	return n
}

// commentFamily recognizes "// ... \n" (exclusive of the newline) and
// "/* ... */" with no nesting. An unterminated block comment never reaches
// the accepting state, surfaced by the lexer as a fatal lexical error.
func commentFamily() *NFA {
	n := NewNFA(1)
	n.Start = 0
	afterSlash := n.AddState()
	lineBody := n.AddState()
	blockBody := n.AddState()
	blockStar := n.AddState()
	blockEnd := n.AddState()

	n.AddTransition(0, '/', afterSlash)

	n.AddTransition(afterSlash, '/', lineBody)
	n.MarkFinal(lineBody, token.COMMENT)
	for b := 0; b < AlphabetSize; b++ {
		if b == '\n' {
			continue
		}
		n.AddTransition(lineBody, b, lineBody)
	}

	n.AddTransition(afterSlash, '*', blockBody)
	for b := 0; b < AlphabetSize; b++ {
		if b == '*' {
			continue
		}
		n.AddTransition(blockBody, b, blockBody)
	}
	n.AddTransition(blockBody, '*', blockStar)
	n.AddTransition(blockStar, '*', blockStar)
	for b := 0; b < AlphabetSize; b++ {
		if b == '*' || b == '/' {
			continue
		}
		n.AddTransition(blockStar, b, blockBody)
	}
	n.AddTransition(blockStar, '/', blockEnd)
	n.MarkFinal(blockEnd, token.COMMENT)

	return n
}

// operatorFamily recognizes every punctuation/operator token, with
// two-character operators reached only by first consuming their
// single-character prefix, so maximal munch in DFA.Run naturally prefers
// the longer match (spec §4.B "operator disambiguation").
func operatorFamily() *NFA {
	n := NewNFA(1)
	n.Start = 0

	simple := func(ch byte, kind token.Kind) {
		s := n.AddState()
		n.AddTransition(0, int(ch), s)
		n.MarkFinal(s, kind)
	}
	simple('+', token.PLUS)
	simple('*', token.STAR)
	simple('%', token.PERCENT)
	simple(';', token.SEMICOLON)
	simple(',', token.COMMA)
	simple(':', token.COLON)
	simple('(', token.LPAREN)
	simple(')', token.RPAREN)
	simple('{', token.LBRACE)
	simple('}', token.RBRACE)
	simple('[', token.LBRACKET)
	simple(']', token.RBRACKET)

	// '/' as plain division (the comment family independently claims the
	// two-char prefixes "//" and "/*"; maximal munch prefers whichever
	// reaches a *longer* accepting state, so a lone '/' still yields SLASH).
	slash := n.AddState()
	n.AddTransition(0, '/', slash)
	n.MarkFinal(slash, token.SLASH)

	minus := n.AddState()
	n.AddTransition(0, '-', minus)
	n.MarkFinal(minus, token.MINUS)
	arrow := n.AddState()
	n.AddTransition(minus, '>', arrow)
	n.MarkFinal(arrow, token.ARROW)

	eq := n.AddState()
	n.AddTransition(0, '=', eq)
	n.MarkFinal(eq, token.ASSIGN)
	eqeq := n.AddState()
	n.AddTransition(eq, '=', eqeq)
	n.MarkFinal(eqeq, token.EQ)
	fatArrow := n.AddState()
	n.AddTransition(eq, '>', fatArrow)
	n.MarkFinal(fatArrow, token.FAT_ARROW)

	bang := n.AddState()
	n.AddTransition(0, '!', bang)
	n.MarkFinal(bang, token.BANG)
	notEq := n.AddState()
	n.AddTransition(bang, '=', notEq)
	n.MarkFinal(notEq, token.NOT_EQ)

	lt := n.AddState()
	n.AddTransition(0, '<', lt)
	n.MarkFinal(lt, token.LT)
	lte := n.AddState()
	n.AddTransition(lt, '=', lte)
	n.MarkFinal(lte, token.LTE)

	gt := n.AddState()
	n.AddTransition(0, '>', gt)
	n.MarkFinal(gt, token.GT)
	gte := n.AddState()
	n.AddTransition(gt, '=', gte)
	n.MarkFinal(gte, token.GTE)

	and1 := n.AddState()
	n.AddTransition(0, '&', and1)
	andand := n.AddState()
	n.AddTransition(and1, '&', andand)
	n.MarkFinal(andand, token.AND)

	pipe := n.AddState()
	n.AddTransition(0, '|', pipe)
	n.MarkFinal(pipe, token.PIPE_CHAR)
	orOr := n.AddState()
	n.AddTransition(pipe, '|', orOr)
	n.MarkFinal(orOr, token.OR)
	pipeOp := n.AddState()
	n.AddTransition(pipe, '>', pipeOp)
	n.MarkFinal(pipeOp, token.PIPE)

	dot := n.AddState()
	n.AddTransition(0, '.', dot)
	n.MarkFinal(dot, token.DOT)
	dotdot := n.AddState()
	n.AddTransition(dot, '.', dotdot)
	n.MarkFinal(dotdot, token.DOT_DOT)

	return n
}

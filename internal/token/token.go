// Package token defines the lexical token kinds and the Token value itself.
package token

// Kind identifies the lexical category of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	COMMENT
	WHITESPACE

	IDENT
	INT
	FLOAT
	STRING
	BOOLEAN

	// keywords
	LET
	FN
	DATA
	FILTER
	MAP
	REDUCE
	IMPORT
	EXPORT
	IF
	ELSE
	FOR
	IN
	RETURN
	LOAD
	SAVE
	SELECT
	GROUPBY
	SUM
	MEAN
	COUNT
	MIN
	MAX
	AS

	// type keywords
	TYPE_INT
	TYPE_FLOAT
	TYPE_STRING
	TYPE_BOOL
	TYPE_DATAFRAME
	TYPE_VECTOR
	TYPE_SERIES

	// punctuation / operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	ASSIGN
	EQ
	NOT_EQ
	LT
	LTE
	GT
	GTE
	AND
	OR
	BANG
	PIPE
	ARROW     // ->
	FAT_ARROW // =>
	DOT_DOT   // ..
	DOT
	COMMA
	SEMICOLON
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	PIPE_CHAR // single '|' used in lambda bars
)

var keywords = map[string]Kind{
	"let": LET, "fn": FN, "data": DATA, "filter": FILTER, "map": MAP,
	"reduce": REDUCE, "import": IMPORT, "export": EXPORT, "if": IF,
	"else": ELSE, "for": FOR, "in": IN, "return": RETURN, "load": LOAD,
	"save": SAVE, "select": SELECT, "groupby": GROUPBY, "sum": SUM,
	"mean": MEAN, "count": COUNT, "min": MIN, "max": MAX, "as": AS,
}

var typeKeywords = map[string]Kind{
	"Int": TYPE_INT, "Float": TYPE_FLOAT, "String": TYPE_STRING,
	"Bool": TYPE_BOOL, "DataFrame": TYPE_DATAFRAME, "Vector": TYPE_VECTOR,
	"Series": TYPE_SERIES,
}

var booleans = map[string]bool{"true": true, "false": false}

// LookupIdent reclassifies an identifier-shaped lexeme as a keyword, a
// type keyword, a boolean literal, or leaves it as IDENT.
func LookupIdent(lexeme string) Kind {
	if kind, ok := keywords[lexeme]; ok {
		return kind
	}
	if kind, ok := typeKeywords[lexeme]; ok {
		return kind
	}
	if _, ok := booleans[lexeme]; ok {
		return BOOLEAN
	}
	return IDENT
}

// AggregateNames lists the identifiers recognized as AggName in the grammar.
var AggregateNames = map[string]Kind{
	"sum": SUM, "mean": MEAN, "count": COUNT, "min": MIN, "max": MAX,
}

// Token is a single lexical unit: its kind, the exact source slice, and its
// source position. Tokens own their lexeme slice.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return t.Lexeme
}

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT", WHITESPACE: "WHITESPACE",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", BOOLEAN: "BOOLEAN",
	LET: "let", FN: "fn", DATA: "data", FILTER: "filter", MAP: "map", REDUCE: "reduce",
	IMPORT: "import", EXPORT: "export", IF: "if", ELSE: "else", FOR: "for", IN: "in",
	RETURN: "return", LOAD: "load", SAVE: "save", SELECT: "select", GROUPBY: "groupby",
	SUM: "sum", MEAN: "mean", COUNT: "count", MIN: "min", MAX: "max", AS: "as",
	TYPE_INT: "Int", TYPE_FLOAT: "Float", TYPE_STRING: "String", TYPE_BOOL: "Bool",
	TYPE_DATAFRAME: "DataFrame", TYPE_VECTOR: "Vector", TYPE_SERIES: "Series",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", ASSIGN: "=",
	EQ: "==", NOT_EQ: "!=", LT: "<", LTE: "<=", GT: ">", GTE: ">=",
	AND: "&&", OR: "||", BANG: "!", PIPE: "|>", ARROW: "->", FAT_ARROW: "=>",
	DOT_DOT: "..", DOT: ".", COMMA: ",", SEMICOLON: ";", COLON: ":",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	PIPE_CHAR: "|",
}

// KindName returns a human-readable name for a Kind, used in diagnostics.
func KindName(k Kind) string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}

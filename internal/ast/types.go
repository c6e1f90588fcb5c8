package ast

import "github.com/datalang/dlc/internal/token"

// TypeNodeKind discriminates the shapes a Type production in the grammar
// can take (spec §4.C Type rule).
type TypeNodeKind int

const (
	TypeNamePrimitive TypeNodeKind = iota // Int, Float, String, Bool, DataFrame, Vector, Series
	TypeNameCustom                        // an Ident naming a `data` record type
	TypeArray                             // "[" Type "]"
	TypeTuple                             // "(" Type {"," Type} ")"
)

// TypeNode is the Type-as-AST production: parsed syntax for a type
// annotation, later resolved to a types.Type by the analyzer.
type TypeNode struct {
	Tok        token.Token
	Kind       TypeNodeKind
	Name       string // set for TypeNamePrimitive/TypeNameCustom
	Inner      *TypeNode // set for TypeArray
	TupleTypes []*TypeNode // set for TypeTuple
}

func (t *TypeNode) GetToken() token.Token { return t.Tok }

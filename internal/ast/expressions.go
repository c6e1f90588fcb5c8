package ast

import "github.com/datalang/dlc/internal/token"

type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
)

type Literal struct {
	Tok   token.Token
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func (e *Literal) GetToken() token.Token { return e.Tok }
func (e *Literal) expressionNode()       {}

type Identifier struct {
	Tok   token.Token
	Name  string
}

func (e *Identifier) GetToken() token.Token { return e.Tok }
func (e *Identifier) expressionNode()       {}

type Binary struct {
	Tok   token.Token // operator token
	Op    token.Kind
	Left  Expression
	Right Expression
}

func (e *Binary) GetToken() token.Token { return e.Tok }
func (e *Binary) expressionNode()       {}

type Unary struct {
	Tok     token.Token
	Op      token.Kind
	Operand Expression
}

func (e *Unary) GetToken() token.Token { return e.Tok }
func (e *Unary) expressionNode()       {}

type Call struct {
	Tok    token.Token // '('
	Callee Expression
	Args   []Expression
}

func (e *Call) GetToken() token.Token { return e.Tok }
func (e *Call) expressionNode()       {}

type Index struct {
	Tok   token.Token // '['
	Obj   Expression
	Idx   Expression
}

func (e *Index) GetToken() token.Token { return e.Tok }
func (e *Index) expressionNode()       {}

type Member struct {
	Tok   token.Token // '.'
	Obj   Expression
	Field string
}

func (e *Member) GetToken() token.Token { return e.Tok }
func (e *Member) expressionNode()       {}

type Assign struct {
	Tok    token.Token // '='
	Target Expression
	Value  Expression
}

func (e *Assign) GetToken() token.Token { return e.Tok }
func (e *Assign) expressionNode()       {}

type Lambda struct {
	Tok    token.Token // '|'
	Params []*Param
	Body   Expression
}

func (e *Lambda) GetToken() token.Token { return e.Tok }
func (e *Lambda) expressionNode()       {}

// Pipeline represents a `|>`-chained sequence. Every stage, the first
// included, is parsed as a Transform: one of the DataFrame transform nodes
// below, or an Assign per the grammar's Transform -> Assign fallback.
type Pipeline struct {
	Tok    token.Token
	Stages []Expression
}

func (e *Pipeline) GetToken() token.Token { return e.Tok }
func (e *Pipeline) expressionNode()       {}

type ArrayLiteral struct {
	Tok   token.Token // '['
	Elems []Expression
}

func (e *ArrayLiteral) GetToken() token.Token { return e.Tok }
func (e *ArrayLiteral) expressionNode()       {}

type Range struct {
	Tok token.Token // '..'
	Lo  Expression
	Hi  Expression
}

func (e *Range) GetToken() token.Token { return e.Tok }
func (e *Range) expressionNode()       {}

type Load struct {
	Tok  token.Token
	Path string
}

func (e *Load) GetToken() token.Token { return e.Tok }
func (e *Load) expressionNode()       {}

type Save struct {
	Tok  token.Token
	Data Expression
	Path string
}

func (e *Save) GetToken() token.Token { return e.Tok }
func (e *Save) expressionNode()       {}

// ---- DataFrame pipeline transform nodes ----

type Filter struct {
	Tok       token.Token
	Predicate *Lambda
}

func (e *Filter) GetToken() token.Token { return e.Tok }
func (e *Filter) expressionNode()       {}

type MapTransform struct {
	Tok token.Token
	Fn  *Lambda
}

func (e *MapTransform) GetToken() token.Token { return e.Tok }
func (e *MapTransform) expressionNode()       {}

type Reduce struct {
	Tok     token.Token
	Init    Expression
	Reducer *Lambda
}

func (e *Reduce) GetToken() token.Token { return e.Tok }
func (e *Reduce) expressionNode()       {}

type Select struct {
	Tok     token.Token
	Columns []string
}

func (e *Select) GetToken() token.Token { return e.Tok }
func (e *Select) expressionNode()       {}

type GroupBy struct {
	Tok     token.Token
	Columns []string
}

func (e *GroupBy) GetToken() token.Token { return e.Tok }
func (e *GroupBy) expressionNode()       {}

type AggregateKind int

const (
	AggSum AggregateKind = iota
	AggMin
	AggMax
	AggCount
	AggMean
)

type Aggregate struct {
	Tok  token.Token
	Kind AggregateKind
	Args []Expression
}

func (e *Aggregate) GetToken() token.Token { return e.Tok }
func (e *Aggregate) expressionNode()       {}

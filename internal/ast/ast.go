// Package ast defines the typed abstract syntax tree produced by the
// parser. Node, Statement, and Expression are canonical tagged unions,
// discriminated by Go type switches in the analyzer and emitter rather than
// by a visitor double-dispatch or a shared kind field, per spec §9's design
// note that unhandled variants should be a compile-time (or at least
// trivially greppable) error; the teacher's own Identifier/Literal field
// layout and GetToken()-for-diagnostics convention (internal/ast/ast_core.go)
// is kept.
package ast

import "github.com/datalang/dlc/internal/token"

// Node is the base interface for every AST node: it can report the token it
// originates from, for diagnostics.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node appearing in a Block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered list of top-level items. It owns
// every node beneath it transitively; there are no parent pointers, so the
// tree can never cycle (spec §9 "Ownership").
type Program struct {
	Items []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Items) == 0 {
		return token.Token{}
	}
	return p.Items[0].GetToken()
}

// ---- Declarations ----

type Param struct {
	Tok  token.Token
	Name string
	Type *TypeNode // nil if omitted (lambda params may omit it)
}

func (p *Param) GetToken() token.Token { return p.Tok }

type Field struct {
	Tok  token.Token
	Name string
	Type *TypeNode
}

func (f *Field) GetToken() token.Token { return f.Tok }

type LetDecl struct {
	Tok   token.Token // 'let'
	Name  string
	Type  *TypeNode // nil if omitted
	Value Expression
}

func (d *LetDecl) GetToken() token.Token { return d.Tok }
func (d *LetDecl) statementNode()        {}

type FnDecl struct {
	Tok        token.Token // 'fn'
	Name       string
	Params     []*Param
	ReturnType *TypeNode // nil -> Void
	Body       *Block
}

func (d *FnDecl) GetToken() token.Token { return d.Tok }
func (d *FnDecl) statementNode()        {}

type DataDecl struct {
	Tok    token.Token // 'data'
	Name   string
	Fields []*Field
}

func (d *DataDecl) GetToken() token.Token { return d.Tok }
func (d *DataDecl) statementNode()        {}

type ImportDecl struct {
	Tok   token.Token
	Path  string
	Alias string // "" if omitted
}

func (d *ImportDecl) GetToken() token.Token { return d.Tok }
func (d *ImportDecl) statementNode()        {}

type ExportDecl struct {
	Tok  token.Token
	Name string
}

func (d *ExportDecl) GetToken() token.Token { return d.Tok }
func (d *ExportDecl) statementNode()        {}

// ---- Statements ----

type Block struct {
	Tok   token.Token // '{'
	Stmts []Statement
}

func (b *Block) GetToken() token.Token { return b.Tok }
func (b *Block) statementNode()        {}

type IfStmt struct {
	Tok       token.Token // 'if'
	Cond      Expression
	Then      *Block
	ElseBlock *Block   // mutually exclusive with ElseIf
	ElseIf    *IfStmt
}

func (s *IfStmt) GetToken() token.Token { return s.Tok }
func (s *IfStmt) statementNode()        {}

type ForStmt struct {
	Tok      token.Token // 'for'
	Iterator string
	Iterable Expression
	Body     *Block
}

func (s *ForStmt) GetToken() token.Token { return s.Tok }
func (s *ForStmt) statementNode()        {}

type ReturnStmt struct {
	Tok   token.Token // 'return'
	Value Expression  // nil if bare `return;`
}

func (s *ReturnStmt) GetToken() token.Token { return s.Tok }
func (s *ReturnStmt) statementNode()        {}

type ExprStmt struct {
	Tok   token.Token
	Value Expression
}

func (s *ExprStmt) GetToken() token.Token { return s.Tok }
func (s *ExprStmt) statementNode()        {}

// BadStmt marks a span skipped by panic-mode recovery, so the Program tree
// stays well-formed even after a parse error (spec §4.C "public guarantee").
type BadStmt struct {
	Tok token.Token
}

func (s *BadStmt) GetToken() token.Token { return s.Tok }
func (s *BadStmt) statementNode()        {}

// Package analyzer implements the two-phase Hindley-Milner-style semantic
// analyzer described in spec §4.D: hoist function/data declarations, then
// check bodies, recording a types.Type for every ast.Node it touches.
//
// Grounded on the teacher's internal/analyzer/analyzer.go (the Analyzer
// struct holding a *symbols.SymbolTable and a TypeMap keyed by ast.Node) and
// its declarations.go/statements.go/expressions.go file split, trimmed to
// DataLang's two-phase contract — no traits, instances, or cross-module
// loader, since DataLang's import/export is a flat namespace (spec §9 open
// question 3).
package analyzer

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/symbols"
	"github.com/datalang/dlc/internal/types"
)

// Analyzer performs semantic analysis on a single Program.
type Analyzer struct {
	global  *symbols.Scope
	scope   *symbols.Scope
	diags   diagnostics.Bag
	Types   map[ast.Node]types.Type // inferred type of every analyzed node
	records map[string]*symbols.Symbol

	currentFnReturn types.Type
	inFunction      bool
}

// New creates an Analyzer with its own global scope and built-ins declared.
func New() *Analyzer {
	a := &Analyzer{
		global:  symbols.NewGlobalScope(),
		Types:   make(map[ast.Node]types.Type),
		records: make(map[string]*symbols.Symbol),
	}
	a.scope = a.global
	a.declareBuiltins()
	return a
}

// Analyze runs the full three-phase pipeline over prog and returns the
// accumulated diagnostics (spec §4.D "Two-phase program analysis").
func Analyze(prog *ast.Program) (*Analyzer, []diagnostics.Diagnostic) {
	types.ResetVarCounter()
	a := New()
	a.hoist(prog)
	a.checkBodies(prog)
	return a, a.diags.Items()
}

// Lookup finds a global-scope symbol by name, for callers (the emitter,
// tests) that need a declared function/variable/type's resolved Type.
func (a *Analyzer) Lookup(name string) (*symbols.Symbol, bool) {
	return a.global.Lookup(name)
}

func (a *Analyzer) record(n ast.Node, t types.Type) types.Type {
	a.Types[n] = t
	return t
}

func (a *Analyzer) errorf(n ast.Node, format string, args ...interface{}) types.Type {
	tok := n.GetToken()
	a.diags.Errorf(tok.Line, tok.Column, tok.Lexeme, format, args...)
	return a.record(n, types.TError)
}

func (a *Analyzer) warnf(n ast.Node, format string, args ...interface{}) {
	tok := n.GetToken()
	a.diags.Warnf(tok.Line, tok.Column, tok.Lexeme, format, args...)
}

// pushScope opens a child scope for the duration of fn, then closes it,
// scanning for unused locals at exit (spec §4.D "Diagnostic policy").
func (a *Analyzer) pushScope(fn func()) {
	parent := a.scope
	a.scope = parent.Push()
	fn()
	for _, sym := range a.scope.LocalVariables() {
		if !sym.Used {
			a.diags.Warnf(sym.DeclLine, sym.DeclColumn, sym.Name, "unused variable '%s'", sym.Name)
		}
	}
	a.scope = parent
}

package analyzer

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/symbols"
	"github.com/datalang/dlc/internal/types"
)

func (a *Analyzer) analyzeStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetDecl:
		a.analyzeLetDecl(s)
	case *ast.IfStmt:
		a.analyzeIfStmt(s)
	case *ast.ForStmt:
		a.analyzeForStmt(s)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(s)
	case *ast.ExprStmt:
		a.analyzeExpr(s.Value)
	case *ast.Block:
		a.pushScope(func() { a.analyzeBlock(s) })
	case *ast.BadStmt:
		// recovered parse error: nothing to analyze
	}
}

func (a *Analyzer) analyzeBlock(b *ast.Block) {
	for _, stmt := range b.Stmts {
		a.analyzeStmt(stmt)
	}
}

func (a *Analyzer) analyzeLetDecl(s *ast.LetDecl) {
	valueType := a.analyzeExpr(s.Value)
	declType := valueType
	if s.Type != nil {
		declType = a.resolveTypeNode(s.Type)
		if !types.Compatible(declType, valueType) {
			a.errorf(s, "cannot assign value of type %s to '%s' declared as %s",
				valueType.String(), s.Name, declType.String())
		}
	}
	sym := &symbols.Symbol{
		Name: s.Name, Kind: symbols.VariableSymbol, Type: declType,
		DeclLine: s.Tok.Line, DeclColumn: s.Tok.Column, Initialized: true,
	}
	if !a.scope.Declare(sym) {
		a.errorf(s, "'%s' already declared in this scope", s.Name)
	}
	a.record(s, declType)
}

func (a *Analyzer) analyzeIfStmt(s *ast.IfStmt) {
	condType := a.analyzeExpr(s.Cond)
	if !types.Equal(condType, types.TBool) && !types.IsError(condType) {
		a.errorf(s.Cond, "if condition must be Bool, found %s", condType.String())
	}
	a.pushScope(func() { a.analyzeBlock(s.Then) })
	switch {
	case s.ElseBlock != nil:
		a.pushScope(func() { a.analyzeBlock(s.ElseBlock) })
	case s.ElseIf != nil:
		a.analyzeIfStmt(s.ElseIf)
	}
}

func (a *Analyzer) analyzeForStmt(s *ast.ForStmt) {
	iterType := a.analyzeExpr(s.Iterable)
	elemType := types.Type(types.TError)
	if arr, ok := iterType.(types.Array); ok {
		elemType = arr.Elem
	} else if !types.IsError(iterType) {
		a.errorf(s.Iterable, "for-in iterable must be an array, found %s", iterType.String())
	}
	a.pushScope(func() {
		a.scope.Declare(&symbols.Symbol{
			Name: s.Iterator, Kind: symbols.VariableSymbol, Type: elemType,
			DeclLine: s.Tok.Line, DeclColumn: s.Tok.Column, Initialized: true,
		})
		a.analyzeBlock(s.Body)
	})
}

func (a *Analyzer) analyzeReturnStmt(s *ast.ReturnStmt) {
	if !a.inFunction {
		a.errorf(s, "return statement outside of a function")
		return
	}
	valueType := types.Type(types.TVoid)
	if s.Value != nil {
		valueType = a.analyzeExpr(s.Value)
	}
	if !types.Compatible(a.currentFnReturn, valueType) {
		a.errorf(s, "return type %s is not compatible with declared return type %s",
			valueType.String(), a.currentFnReturn.String())
	}
}

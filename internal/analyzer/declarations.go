package analyzer

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/symbols"
	"github.com/datalang/dlc/internal/types"
)

// hoist is Phase 1: declare every top-level Fn/Data so forward references
// resolve (spec §4.D "Phase 1 — hoisting").
func (a *Analyzer) hoist(prog *ast.Program) {
	for _, item := range prog.Items {
		switch d := item.(type) {
		case *ast.FnDecl:
			a.hoistFn(d)
		case *ast.DataDecl:
			a.hoistData(d)
		}
	}
}

func (a *Analyzer) hoistFn(d *ast.FnDecl) {
	params := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		params[i] = a.resolveTypeNode(p.Type)
	}
	ret := types.Type(types.TVoid)
	if d.ReturnType != nil {
		ret = a.resolveTypeNode(d.ReturnType)
	}
	sym := &symbols.Symbol{
		Name: d.Name, Kind: symbols.FunctionSymbol,
		Type:       types.Function{Params: params, Return: ret},
		ParamTypes: params,
		DeclLine:   d.Tok.Line, DeclColumn: d.Tok.Column,
		Initialized: true, Used: true,
	}
	if !a.global.Declare(sym) {
		a.diags.Errorf(d.Tok.Line, d.Tok.Column, d.Name, "function '%s' already declared", d.Name)
	}
}

func (a *Analyzer) hoistData(d *ast.DataDecl) {
	fields := make([]*symbols.Symbol, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = &symbols.Symbol{
			Name: f.Name, Kind: symbols.FieldSymbol, Type: a.resolveTypeNode(f.Type),
			DeclLine: f.Tok.Line, DeclColumn: f.Tok.Column, Initialized: true,
		}
	}
	sym := &symbols.Symbol{
		Name: d.Name, Kind: symbols.TypeSymbol, Type: types.Custom{Name: d.Name},
		Fields: fields, DeclLine: d.Tok.Line, DeclColumn: d.Tok.Column, Initialized: true, Used: true,
	}
	if !a.global.Declare(sym) {
		a.diags.Errorf(d.Tok.Line, d.Tok.Column, d.Name, "type '%s' already declared", d.Name)
		return
	}
	a.records[d.Name] = sym
}

// resolveTypeNode converts a parsed TypeNode to a types.Type, reporting an
// error for an unknown custom-type name.
func (a *Analyzer) resolveTypeNode(t *ast.TypeNode) types.Type {
	switch t.Kind {
	case ast.TypeNamePrimitive:
		switch t.Name {
		case "Int":
			return types.TInt
		case "Float":
			return types.TFloat
		case "String":
			return types.TString
		case "Bool":
			return types.TBool
		case "DataFrame":
			return types.TDataFrame
		case "Vector":
			return types.TVector
		case "Series":
			return types.TSeries
		}
		return types.TError
	case ast.TypeNameCustom:
		if _, ok := a.records[t.Name]; ok {
			return types.Custom{Name: t.Name}
		}
		a.diags.Errorf(t.Tok.Line, t.Tok.Column, t.Name, "unknown type '%s'", t.Name)
		return types.TError
	case ast.TypeArray:
		return types.Array{Elem: a.resolveTypeNode(t.Inner)}
	case ast.TypeTuple:
		elems := make([]types.Type, len(t.TupleTypes))
		for i, inner := range t.TupleTypes {
			elems[i] = a.resolveTypeNode(inner)
		}
		return types.Tuple{Elems: elems}
	default:
		return types.TVoid
	}
}

// checkBodies is Phase 2: walk every top-level item again, this time
// checking function bodies and ordinary statements (spec §4.D "Phase 2 —
// bodies").
func (a *Analyzer) checkBodies(prog *ast.Program) {
	for _, item := range prog.Items {
		switch d := item.(type) {
		case *ast.FnDecl:
			a.checkFnBody(d)
		case *ast.DataDecl:
			// Field types were already resolved during hoisting; nothing
			// further to verify for a record declaration.
		default:
			a.analyzeStmt(item)
		}
	}
}

func (a *Analyzer) checkFnBody(d *ast.FnDecl) {
	sym, _ := a.global.Lookup(d.Name)
	fnType := sym.Type.(types.Function)
	prevReturn, prevInFn := a.currentFnReturn, a.inFunction
	a.currentFnReturn, a.inFunction = fnType.Return, true
	a.pushScope(func() {
		for i, p := range d.Params {
			a.scope.Declare(&symbols.Symbol{
				Name: p.Name, Kind: symbols.ParameterSymbol, Type: fnType.Params[i],
				DeclLine: p.Tok.Line, DeclColumn: p.Tok.Column, Initialized: true,
			})
		}
		a.analyzeBlock(d.Body)
		if !types.Equal(fnType.Return, types.TVoid) && !blockReturnsOnAllPaths(d.Body) {
			a.diags.Errorf(d.Tok.Line, d.Tok.Column, d.Name,
				"function '%s' does not return a value on all paths", d.Name)
		}
	})
	a.currentFnReturn, a.inFunction = prevReturn, prevInFn
}

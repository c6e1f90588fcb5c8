package analyzer

import (
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/symbols"
	"github.com/datalang/dlc/internal/token"
	"github.com/datalang/dlc/internal/types"
)

func (a *Analyzer) analyzeExpr(e ast.Expression) types.Type {
	switch v := e.(type) {
	case *ast.Literal:
		return a.record(e, literalType(v))
	case *ast.Identifier:
		return a.analyzeIdentifier(v)
	case *ast.Binary:
		return a.analyzeBinary(v)
	case *ast.Unary:
		return a.analyzeUnary(v)
	case *ast.Call:
		return a.analyzeCall(v)
	case *ast.Index:
		return a.analyzeIndex(v)
	case *ast.Member:
		return a.analyzeMember(v)
	case *ast.Assign:
		return a.analyzeAssign(v)
	case *ast.Lambda:
		return a.analyzeLambda(v)
	case *ast.Pipeline:
		return a.analyzePipeline(v)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(v)
	case *ast.Range:
		return a.analyzeRange(v)
	case *ast.Load:
		return a.record(e, types.TDataFrame)
	case *ast.Save:
		a.analyzeExpr(v.Data)
		return a.record(e, types.TVoid)
	case *ast.Filter:
		if v.Predicate != nil {
			a.analyzeLambda(v.Predicate)
		}
		return a.record(e, types.TDataFrame)
	case *ast.MapTransform:
		if v.Fn != nil {
			a.analyzeLambda(v.Fn)
		}
		return a.record(e, types.TDataFrame)
	case *ast.Reduce:
		if v.Init != nil {
			a.analyzeExpr(v.Init)
		}
		if v.Reducer != nil {
			a.analyzeLambda(v.Reducer)
		}
		return a.record(e, types.Fresh())
	case *ast.Select:
		return a.record(e, types.TDataFrame)
	case *ast.GroupBy:
		return a.record(e, types.TDataFrame)
	case *ast.Aggregate:
		return a.analyzeAggregate(v)
	default:
		return a.errorf(e, "internal: unhandled expression node")
	}
}

func literalType(l *ast.Literal) types.Type {
	switch l.Kind {
	case ast.LitInt:
		return types.TInt
	case ast.LitFloat:
		return types.TFloat
	case ast.LitString:
		return types.TString
	case ast.LitBool:
		return types.TBool
	default:
		return types.TError
	}
}

func (a *Analyzer) analyzeIdentifier(v *ast.Identifier) types.Type {
	sym, ok := a.scope.Lookup(v.Name)
	if !ok {
		return a.errorf(v, "undefined name '%s'", v.Name)
	}
	if !sym.Initialized {
		a.warnf(v, "'%s' may be used before initialization", v.Name)
	}
	sym.Used = true
	return a.record(v, sym.Type)
}

var arithmeticOps = map[token.Kind]bool{token.PLUS: true, token.MINUS: true, token.STAR: true, token.SLASH: true, token.PERCENT: true}
var comparisonOps = map[token.Kind]bool{token.LT: true, token.LTE: true, token.GT: true, token.GTE: true}
var equalityOps = map[token.Kind]bool{token.EQ: true, token.NOT_EQ: true}
var logicalOps = map[token.Kind]bool{token.AND: true, token.OR: true}

func isNumeric(t types.Type) bool {
	p, ok := t.(types.Prim)
	return ok && (p.Kind == types.Int || p.Kind == types.Float)
}

func (a *Analyzer) analyzeBinary(v *ast.Binary) types.Type {
	left := a.analyzeExpr(v.Left)
	right := a.analyzeExpr(v.Right)

	switch {
	case arithmeticOps[v.Op]:
		if types.IsError(left) || types.IsError(right) {
			return a.record(v, types.TError)
		}
		if !isNumeric(left) || !isNumeric(right) || !types.Compatible(left, right) && !types.Compatible(right, left) {
			return a.errorf(v, "operator '%s' requires compatible numeric operands, found %s and %s",
				v.Tok.Lexeme, left.String(), right.String())
		}
		if v.Op == token.PERCENT && (!types.Equal(left, types.TInt) || !types.Equal(right, types.TInt)) {
			return a.errorf(v, "operator '%%' requires Int operands, found %s and %s", left.String(), right.String())
		}
		return a.record(v, types.Widen(left, right))

	case comparisonOps[v.Op]:
		if !types.IsError(left) && !types.IsError(right) && !types.Compatible(left, right) && !types.Compatible(right, left) {
			a.errorf(v, "cannot compare %s with %s", left.String(), right.String())
		}
		return a.record(v, types.TBool)

	case equalityOps[v.Op]:
		if !types.IsError(left) && !types.IsError(right) && !types.Compatible(left, right) && !types.Compatible(right, left) {
			a.errorf(v, "cannot compare %s with %s", left.String(), right.String())
		}
		return a.record(v, types.TBool)

	case logicalOps[v.Op]:
		if !types.Equal(left, types.TBool) && !types.IsError(left) {
			a.errorf(v.Left, "operator '%s' requires Bool operands, found %s", v.Tok.Lexeme, left.String())
		}
		if !types.Equal(right, types.TBool) && !types.IsError(right) {
			a.errorf(v.Right, "operator '%s' requires Bool operands, found %s", v.Tok.Lexeme, right.String())
		}
		return a.record(v, types.TBool)

	default:
		return a.errorf(v, "internal: unknown binary operator '%s'", v.Tok.Lexeme)
	}
}

func (a *Analyzer) analyzeUnary(v *ast.Unary) types.Type {
	operand := a.analyzeExpr(v.Operand)
	if v.Op == token.BANG {
		if !types.Equal(operand, types.TBool) && !types.IsError(operand) {
			a.errorf(v, "operator '!' requires a Bool operand, found %s", operand.String())
		}
		return a.record(v, types.TBool)
	}
	// MINUS
	if !isNumeric(operand) && !types.IsError(operand) {
		return a.errorf(v, "unary '-' requires a numeric operand, found %s", operand.String())
	}
	return a.record(v, operand)
}

func (a *Analyzer) analyzeCall(v *ast.Call) types.Type {
	ident, ok := v.Callee.(*ast.Identifier)
	if !ok {
		return a.errorf(v, "call target must be a declared function")
	}
	sym, ok := a.scope.Lookup(ident.Name)
	if !ok || sym.Kind != symbols.FunctionSymbol {
		return a.errorf(v, "'%s' is not a declared function", ident.Name)
	}
	sym.Used = true
	argTypes := make([]types.Type, len(v.Args))
	for i, arg := range v.Args {
		argTypes[i] = a.analyzeExpr(arg)
	}

	if ident.Name == PrintFuncName {
		return a.analyzePrintCall(v, argTypes)
	}

	fnType := sym.Type.(types.Function)
	if len(argTypes) != len(fnType.Params) {
		return a.errorf(v, "'%s' expects %d argument(s), got %d", ident.Name, len(fnType.Params), len(argTypes))
	}
	for i, argType := range argTypes {
		if !types.Compatible(fnType.Params[i], argType) {
			a.errorf(v.Args[i], "argument %d to '%s' expects %s, found %s",
				i+1, ident.Name, fnType.Params[i].String(), argType.String())
		}
	}
	return a.record(v, fnType.Return)
}

// analyzePrintCall implements the ad-hoc arity-1 polymorphic print rule
// (spec §4.D "Built-in functions" and "Print e").
func (a *Analyzer) analyzePrintCall(v *ast.Call, argTypes []types.Type) types.Type {
	if len(argTypes) != 1 {
		return a.errorf(v, "'print' expects 1 argument, got %d", len(argTypes))
	}
	arg := argTypes[0]
	switch t := arg.(type) {
	case types.Prim:
		// Int, Float, String, Bool (and the absorbing Error) are all fine.
	case types.Array:
		if _, ok := t.Elem.(types.Prim); ok {
			a.warnf(v, "print on an array formats each element with no separator hints")
		}
	}
	return a.record(v, types.TVoid)
}

func (a *Analyzer) analyzeIndex(v *ast.Index) types.Type {
	objType := a.analyzeExpr(v.Obj)
	idxType := a.analyzeExpr(v.Idx)
	if !types.Equal(idxType, types.TInt) && !types.IsError(idxType) {
		a.errorf(v.Idx, "index must be Int, found %s", idxType.String())
	}
	arr, ok := objType.(types.Array)
	if !ok {
		if !types.IsError(objType) {
			a.errorf(v.Obj, "cannot index into %s", objType.String())
		}
		return a.record(v, types.TError)
	}
	return a.record(v, arr.Elem)
}

func (a *Analyzer) analyzeMember(v *ast.Member) types.Type {
	objType := a.analyzeExpr(v.Obj)
	switch t := objType.(type) {
	case types.Custom:
		sym, ok := a.global.Lookup(t.Name)
		if !ok {
			return a.errorf(v, "internal: unknown record type '%s'", t.Name)
		}
		for _, field := range sym.Fields {
			if field.Name == v.Field {
				return a.record(v, field.Type)
			}
		}
		return a.errorf(v, "'%s' has no field '%s'", t.Name, v.Field)
	case types.Prim:
		if t.Kind == types.DataFrame {
			return a.record(v, types.Fresh())
		}
		return a.errorf(v, "cannot access field '%s' on %s", v.Field, objType.String())
	default:
		if types.IsError(objType) {
			return a.record(v, types.TError)
		}
		return a.errorf(v, "cannot access field '%s' on %s", v.Field, objType.String())
	}
}

func (a *Analyzer) analyzeAssign(v *ast.Assign) types.Type {
	if !isLvalue(v.Target) {
		a.errorf(v.Target, "assignment target must be an identifier, field, or index expression")
	}
	targetType := a.analyzeExpr(v.Target)
	valueType := a.analyzeExpr(v.Value)
	if !types.Compatible(targetType, valueType) {
		a.errorf(v, "cannot assign %s to target of type %s", valueType.String(), targetType.String())
	}
	if ident, ok := v.Target.(*ast.Identifier); ok {
		if sym, ok := a.scope.Lookup(ident.Name); ok {
			sym.Initialized = true
		}
	}
	return a.record(v, targetType)
}

func (a *Analyzer) analyzeLambda(v *ast.Lambda) types.Type {
	var paramTypes []types.Type
	var bodyType types.Type
	a.pushScope(func() {
		for _, p := range v.Params {
			var pt types.Type = types.Fresh()
			if p.Type != nil {
				pt = a.resolveTypeNode(p.Type)
			}
			paramTypes = append(paramTypes, pt)
			a.scope.Declare(&symbols.Symbol{
				Name: p.Name, Kind: symbols.ParameterSymbol, Type: pt,
				DeclLine: p.Tok.Line, DeclColumn: p.Tok.Column, Initialized: true, Used: true,
			})
		}
		bodyType = a.analyzeExpr(v.Body)
	})
	return a.record(v, types.Function{Params: paramTypes, Return: bodyType})
}

func (a *Analyzer) analyzePipeline(v *ast.Pipeline) types.Type {
	var last types.Type = types.TVoid
	for _, stage := range v.Stages {
		last = a.analyzeExpr(stage)
	}
	return a.record(v, last)
}

func (a *Analyzer) analyzeArrayLiteral(v *ast.ArrayLiteral) types.Type {
	if len(v.Elems) == 0 {
		return a.record(v, types.Array{Elem: types.Fresh()})
	}
	first := a.analyzeExpr(v.Elems[0])
	for _, elem := range v.Elems[1:] {
		t := a.analyzeExpr(elem)
		if !types.Compatible(first, t) {
			a.errorf(elem, "array elements must have a compatible type; expected %s, found %s", first.String(), t.String())
		}
	}
	return a.record(v, types.Array{Elem: first})
}

func (a *Analyzer) analyzeRange(v *ast.Range) types.Type {
	lo := a.analyzeExpr(v.Lo)
	hi := a.analyzeExpr(v.Hi)
	if !types.Equal(lo, types.TInt) && !types.IsError(lo) {
		a.errorf(v.Lo, "range bound must be Int, found %s", lo.String())
	}
	if !types.Equal(hi, types.TInt) && !types.IsError(hi) {
		a.errorf(v.Hi, "range bound must be Int, found %s", hi.String())
	}
	return a.record(v, types.Array{Elem: types.TInt})
}

var aggregateReturn = map[ast.AggregateKind]types.Type{
	ast.AggSum: types.TInt, ast.AggMin: types.TInt, ast.AggMax: types.TInt,
	ast.AggCount: types.TInt, ast.AggMean: types.TFloat,
}

func (a *Analyzer) analyzeAggregate(v *ast.Aggregate) types.Type {
	for _, arg := range v.Args {
		a.analyzeExpr(arg)
	}
	return a.record(v, aggregateReturn[v.Kind])
}

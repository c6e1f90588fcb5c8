package codegen

import (
	"fmt"

	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/config"
	"github.com/datalang/dlc/internal/token"
	"github.com/datalang/dlc/internal/types"
)

// emitExpr lowers e and returns the SSA value (or immediate) holding its
// result plus its static type, per spec §4.E "Expression lowering".
func (e *Emitter) emitExpr(expr ast.Expression) (string, types.Type) {
	switch v := expr.(type) {
	case *ast.Literal:
		return e.emitLiteral(v)
	case *ast.Identifier:
		return e.emitIdentifier(v)
	case *ast.Binary:
		return e.emitBinary(v)
	case *ast.Unary:
		return e.emitUnary(v)
	case *ast.Call:
		return e.emitCall(v)
	case *ast.Assign:
		return e.emitAssign(v)
	case *ast.ArrayLiteral:
		return e.emitArrayLiteral(v)
	case *ast.Range:
		return e.emitRange(v)
	case *ast.Load:
		return e.emitLoad(v)
	case *ast.Save:
		return e.emitSave(v)
	case *ast.Index:
		return e.emitIndex(v)
	case *ast.Pipeline:
		return e.emitPipeline(v)
	case *ast.Aggregate:
		// A standalone aggregate such as sum(xs) calls the same helper a
		// pipeline's aggregate stage does, on its single argument.
		if len(v.Args) == 1 {
			val, _ := e.emitExpr(v.Args[0])
			return e.emitAggregateOnValue(v, val)
		}
		return "0", types.TInt
	default:
		// Member access, lambdas-as-values, and the structural DataFrame
		// transform nodes (Filter/Map/Reduce/Select/GroupBy) outside a
		// pipeline are not lowered; the emitter substitutes a zero for them
		// (spec §4.E "Failure handling").
		return "0", types.TInt
	}
}

func (e *Emitter) emitLiteral(l *ast.Literal) (string, types.Type) {
	switch l.Kind {
	case ast.LitInt:
		return fmt.Sprintf("%d", l.Int), types.TInt
	case ast.LitFloat:
		return fmt.Sprintf("%g", l.Float), types.TFloat
	case ast.LitBool:
		if l.Bool {
			return "true", types.TBool
		}
		return "false", types.TBool
	case ast.LitString:
		name := e.internString(l.Str)
		length := len(l.Str) + 1
		ptr := e.newTemp()
		e.emitLine("  %s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0", ptr, length, length, name)
		return ptr, types.TString
	default:
		return "0", types.TError
	}
}

func (e *Emitter) emitIdentifier(v *ast.Identifier) (string, types.Type) {
	slot, ty, ok := e.scope.lookup(v.Name)
	if !ok {
		return "0", types.TInt // spec §4.E "Failure handling"
	}
	val := e.newTemp()
	e.emitLine("  %s = load %s, %s* %s", val, irType(ty), irType(ty), slot)
	return val, ty
}

func (e *Emitter) emitBinary(v *ast.Binary) (string, types.Type) {
	lval, lty := e.emitExpr(v.Left)
	rval, rty := e.emitExpr(v.Right)
	resultTy := types.Widen(lty, rty)
	useFloat := isFloatType(resultTy)

	res := e.newTemp()
	switch v.Op {
	case token.PLUS:
		e.emitLine("  %s = %s %s %s, %s", res, arithOp("add", "fadd", useFloat), irType(resultTy), lval, rval)
		return res, resultTy
	case token.MINUS:
		e.emitLine("  %s = %s %s %s, %s", res, arithOp("sub", "fsub", useFloat), irType(resultTy), lval, rval)
		return res, resultTy
	case token.STAR:
		e.emitLine("  %s = %s %s %s, %s", res, arithOp("mul", "fmul", useFloat), irType(resultTy), lval, rval)
		return res, resultTy
	case token.SLASH:
		e.emitLine("  %s = %s %s %s, %s", res, arithOp("sdiv", "fdiv", useFloat), irType(resultTy), lval, rval)
		return res, resultTy
	case token.PERCENT:
		e.emitLine("  %s = srem i64 %s, %s", res, lval, rval)
		return res, types.TInt
	case token.LT, token.LTE, token.GT, token.GTE, token.EQ, token.NOT_EQ:
		cmpTy := types.Widen(lty, rty)
		e.emitLine("  %s = %s %s %s %s, %s", res, cmpPrefix(isFloatType(cmpTy)), cmpCode(v.Op, isFloatType(cmpTy)), irType(cmpTy), lval, rval)
		return res, types.TBool
	case token.AND:
		e.emitLine("  %s = and i1 %s, %s", res, lval, rval)
		return res, types.TBool
	case token.OR:
		e.emitLine("  %s = or i1 %s, %s", res, lval, rval)
		return res, types.TBool
	default:
		return "0", types.TError
	}
}

func arithOp(intOp, floatOp string, useFloat bool) string {
	if useFloat {
		return floatOp
	}
	return intOp
}

func cmpPrefix(useFloat bool) string {
	if useFloat {
		return "fcmp"
	}
	return "icmp"
}

func cmpCode(op token.Kind, useFloat bool) string {
	if useFloat {
		switch op {
		case token.LT:
			return "olt"
		case token.LTE:
			return "ole"
		case token.GT:
			return "ogt"
		case token.GTE:
			return "oge"
		case token.EQ:
			return "oeq"
		case token.NOT_EQ:
			return "one"
		}
	}
	switch op {
	case token.LT:
		return "slt"
	case token.LTE:
		return "sle"
	case token.GT:
		return "sgt"
	case token.GTE:
		return "sge"
	case token.EQ:
		return "eq"
	case token.NOT_EQ:
		return "ne"
	}
	return "eq"
}

func (e *Emitter) emitUnary(v *ast.Unary) (string, types.Type) {
	val, ty := e.emitExpr(v.Operand)
	res := e.newTemp()
	if v.Op == token.BANG {
		e.emitLine("  %s = xor i1 %s, true", res, val)
		return res, types.TBool
	}
	if isFloatType(ty) {
		e.emitLine("  %s = fneg double %s", res, val)
	} else {
		e.emitLine("  %s = sub i64 0, %s", res, val)
	}
	return res, ty
}

func (e *Emitter) emitCall(v *ast.Call) (string, types.Type) {
	ident, ok := v.Callee.(*ast.Identifier)
	if !ok {
		return "0", types.TInt
	}
	if ident.Name == config.PrintFuncName {
		return e.emitPrintCall(v)
	}

	sym, ok := e.an.Lookup(ident.Name)
	if !ok {
		return "0", types.TInt // spec §4.E "Failure handling"
	}
	fnType := sym.Type.(types.Function)

	var argVals []string
	for i, arg := range v.Args {
		val, _ := e.emitExpr(arg)
		argVals = append(argVals, fmt.Sprintf("%s %s", irType(fnType.Params[i]), val))
	}
	args := joinParams(argVals)

	irName := ident.Name
	if irName == config.MainFuncName {
		irName = config.UserMainFuncName
	}
	if irType(fnType.Return) == "void" {
		e.emitLine("  call void @%s(%s)", irName, args)
		return "", types.TVoid
	}
	res := e.newTemp()
	e.emitLine("  %s = call %s @%s(%s)", res, irType(fnType.Return), irName, args)
	return res, fnType.Return
}

// emitPrintCall dispatches to the correct print_* helper based on the
// argument's static type (spec §4.E "Calls").
func (e *Emitter) emitPrintCall(v *ast.Call) (string, types.Type) {
	if len(v.Args) != 1 {
		return "", types.TVoid
	}
	val, ty := e.emitExpr(v.Args[0])
	helper := "print_int"
	irTy := "i64"
	switch {
	case isFloatType(ty):
		helper, irTy = "print_float", "double"
	case types.Equal(ty, types.TBool):
		helper, irTy = "print_bool", "i1"
	case types.Equal(ty, types.TString):
		helper, irTy = "print_string", "i8*"
	case types.Equal(ty, types.TDataFrame):
		e.emitLine("  call void @datalang_print_dataframe(i8* %s)", val)
		return "", types.TVoid
	}
	e.emitLine("  call void @%s(%s %s)", helper, irTy, val)
	return "", types.TVoid
}

func (e *Emitter) emitAssign(v *ast.Assign) (string, types.Type) {
	val, ty := e.emitExpr(v.Value)
	ident, ok := v.Target.(*ast.Identifier)
	if !ok {
		return val, ty // Member/Index lvalues: the value is computed, nothing is stored
	}
	slot, slotTy, ok := e.scope.lookup(ident.Name)
	if !ok {
		return val, ty
	}
	e.emitLine("  store %s %s, %s* %s", irType(slotTy), val, irType(slotTy), slot)
	return val, slotTy
}

// emitArrayLiteral allocates a flat buffer with @malloc, stores each element
// via GEP, then builds the {len, data*} aggregate (spec §4.E "Array
// literals").
func (e *Emitter) emitArrayLiteral(v *ast.ArrayLiteral) (string, types.Type) {
	elemTy := types.Type(types.TInt)
	var vals []string
	for _, elem := range v.Elems {
		val, ty := e.emitExpr(elem)
		elemTy = ty
		vals = append(vals, val)
	}
	elemIR := irType(elemTy)
	n := len(vals)

	raw := e.newTemp()
	e.emitLine("  %s = call i8* @malloc(i64 %d)", raw, n*elemSize(elemTy))
	data := e.newTemp()
	e.emitLine("  %s = bitcast i8* %s to %s*", data, raw, elemIR)
	for i, val := range vals {
		ptr := e.newTemp()
		e.emitLine("  %s = getelementptr %s, %s* %s, i64 %d", ptr, elemIR, elemIR, data, i)
		e.emitLine("  store %s %s, %s* %s", elemIR, val, elemIR, ptr)
	}

	aggTy := fmt.Sprintf("{i64, %s*}", elemIR)
	aggSlot := e.newTemp()
	e.emitLine("  %s = alloca %s", aggSlot, aggTy)
	lenPtr := e.newTemp()
	e.emitLine("  %s = getelementptr %s, %s* %s, i32 0, i32 0", lenPtr, aggTy, aggTy, aggSlot)
	e.emitLine("  store i64 %d, i64* %s", n, lenPtr)
	dataPtr := e.newTemp()
	e.emitLine("  %s = getelementptr %s, %s* %s, i32 0, i32 1", dataPtr, aggTy, aggTy, aggSlot)
	e.emitLine("  store %s* %s, %s** %s", elemIR, data, elemIR, dataPtr)
	agg := e.newTemp()
	e.emitLine("  %s = load %s, %s* %s", agg, aggTy, aggTy, aggSlot)
	return agg, types.Array{Elem: elemTy}
}

// elemSize returns the element stride in bytes; every scalar DataLang
// supports today (i64/double/i1-as-byte/i8*) fits an 8-byte word.
func elemSize(t types.Type) int {
	return 8
}

// emitRange materializes an Int range as an {len, data*} array: the buffer
// is sized by the (runtime) length `hi - lo` and filled by a small
// cond/body/end loop storing lo, lo+1, ..., hi-1, the same malloc+GEP-store
// shape as emitArrayLiteral but over a dynamic length instead of a static
// element list (spec §4.D "Range" / §4.E "Array literals").
func (e *Emitter) emitRange(v *ast.Range) (string, types.Type) {
	loVal, _ := e.emitExpr(v.Lo)
	hiVal, _ := e.emitExpr(v.Hi)
	lenVal := e.newTemp()
	e.emitLine("  %s = sub i64 %s, %s", lenVal, hiVal, loVal)

	byteLen := e.newTemp()
	e.emitLine("  %s = mul i64 %s, 8", byteLen, lenVal)
	raw := e.newTemp()
	e.emitLine("  %s = call i8* @malloc(i64 %s)", raw, byteLen)
	data := e.newTemp()
	e.emitLine("  %s = bitcast i8* %s to i64*", data, raw)

	idxSlot := e.newTemp()
	e.emitLine("  %s = alloca i64", idxSlot)
	e.emitLine("  store i64 0, i64* %s", idxSlot)

	condLabel, bodyLabel, endLabel := e.newLabel(), e.newLabel(), e.newLabel()
	e.emitLine("  br label %%%s", condLabel)
	e.emitLine("%s:", condLabel)
	idxVal := e.newTemp()
	e.emitLine("  %s = load i64, i64* %s", idxVal, idxSlot)
	cmpVal := e.newTemp()
	e.emitLine("  %s = icmp slt i64 %s, %s", cmpVal, idxVal, lenVal)
	e.emitLine("  br i1 %s, label %%%s, label %%%s", cmpVal, bodyLabel, endLabel)

	e.emitLine("%s:", bodyLabel)
	elemVal := e.newTemp()
	e.emitLine("  %s = add i64 %s, %s", elemVal, loVal, idxVal)
	elemPtr := e.newTemp()
	e.emitLine("  %s = getelementptr i64, i64* %s, i64 %s", elemPtr, data, idxVal)
	e.emitLine("  store i64 %s, i64* %s", elemVal, elemPtr)
	nextIdx := e.newTemp()
	e.emitLine("  %s = add i64 %s, 1", nextIdx, idxVal)
	e.emitLine("  store i64 %s, i64* %s", nextIdx, idxSlot)
	e.emitLine("  br label %%%s", condLabel)
	e.emitLine("%s:", endLabel)

	aggSlot := e.newTemp()
	e.emitLine("  %s = alloca {i64, i64*}", aggSlot)
	lenPtr := e.newTemp()
	e.emitLine("  %s = getelementptr {i64, i64*}, {i64, i64*}* %s, i32 0, i32 0", lenPtr, aggSlot)
	e.emitLine("  store i64 %s, i64* %s", lenVal, lenPtr)
	dataPtr := e.newTemp()
	e.emitLine("  %s = getelementptr {i64, i64*}, {i64, i64*}* %s, i32 0, i32 1", dataPtr, aggSlot)
	e.emitLine("  store i64* %s, i64** %s", data, dataPtr)
	agg := e.newTemp()
	e.emitLine("  %s = load {i64, i64*}, {i64, i64*}* %s", agg, aggSlot)
	return agg, types.Array{Elem: types.TInt}
}

func (e *Emitter) emitLoad(v *ast.Load) (string, types.Type) {
	name := e.internString(v.Path)
	length := len(v.Path) + 1
	pathPtr := e.newTemp()
	e.emitLine("  %s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0", pathPtr, length, length, name)
	res := e.newTemp()
	e.emitLine("  %s = call i8* @datalang_load(i8* %s)", res, pathPtr)
	return res, types.TDataFrame
}

func (e *Emitter) emitSave(v *ast.Save) (string, types.Type) {
	dataVal, _ := e.emitExpr(v.Data)
	name := e.internString(v.Path)
	length := len(v.Path) + 1
	pathPtr := e.newTemp()
	e.emitLine("  %s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0", pathPtr, length, length, name)
	e.emitLine("  call void @datalang_save(i8* %s, i8* %s)", dataVal, pathPtr)
	return "", types.TVoid
}

func (e *Emitter) emitIndex(v *ast.Index) (string, types.Type) {
	objVal, objTy := e.emitExpr(v.Obj)
	idxVal, _ := e.emitExpr(v.Idx)
	arr, ok := objTy.(types.Array)
	if !ok {
		return "0", types.TInt
	}
	elemIR := irType(arr.Elem)
	dataVal := e.newTemp()
	e.emitLine("  %s = extractvalue {i64, %s*} %s, 1", dataVal, elemIR, objVal)
	ptr := e.newTemp()
	e.emitLine("  %s = getelementptr %s, %s* %s, i64 %s", ptr, elemIR, elemIR, dataVal, idxVal)
	val := e.newTemp()
	e.emitLine("  %s = load %s, %s* %s", val, elemIR, elemIR, ptr)
	return val, arr.Elem
}

// emitPipeline lowers each stage in turn. Filter/Map/Select/GroupBy stages
// emit no IR: the prior stage's value passes through, typed DataFrame. An
// aggregate stage calls its helper (@sum etc.) on the prior value; any other
// stage is lowered as an ordinary expression.
func (e *Emitter) emitPipeline(v *ast.Pipeline) (string, types.Type) {
	var cur string
	var curTy types.Type = types.TVoid
	for _, stage := range v.Stages {
		switch s := stage.(type) {
		case *ast.Filter, *ast.MapTransform, *ast.Select, *ast.GroupBy:
			// Structural transform nodes describe a runtime DataFrame
			// operation; their concrete row/column payload is supplied by the
			// C runtime at the call site the driver script links against, not
			// by IR emitted per-query here.
			_ = s
			cur, curTy = cur, types.TDataFrame
		case *ast.Aggregate:
			cur, curTy = e.emitAggregateOnValue(s, cur)
		default:
			cur, curTy = e.emitExpr(stage)
		}
	}
	return cur, curTy
}

func (e *Emitter) emitAggregateOnValue(agg *ast.Aggregate, input string) (string, types.Type) {
	var helper string
	var ret types.Type
	switch agg.Kind {
	case ast.AggSum:
		helper, ret = "sum", types.TInt
	case ast.AggMin:
		helper, ret = "min", types.TInt
	case ast.AggMax:
		helper, ret = "max", types.TInt
	case ast.AggMean:
		helper, ret = "mean", types.TFloat
	case ast.AggCount:
		helper, ret = "count", types.TInt
	}
	res := e.newTemp()
	e.emitLine("  %s = call %s @%s({i64, i64*} %s)", res, irType(ret), helper, input)
	return res, ret
}

package codegen

import (
	"fmt"

	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/types"
)

func (e *Emitter) emitBlockStmts(stmts []ast.Statement) {
	for _, stmt := range stmts {
		e.emitStmt(stmt)
	}
}

func (e *Emitter) emitStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetDecl:
		e.emitLetDecl(s)
	case *ast.IfStmt:
		e.emitIfStmt(s)
	case *ast.ForStmt:
		e.emitForStmt(s)
	case *ast.ReturnStmt:
		e.emitReturnStmt(s)
	case *ast.ExprStmt:
		e.emitExpr(s.Value)
	case *ast.Block:
		parent := e.scope
		e.scope = newScope(parent)
		e.emitBlockStmts(s.Stmts)
		e.scope = parent
	case *ast.BadStmt:
		// nothing to lower for a recovered parse error
	}
}

func (e *Emitter) emitLetDecl(s *ast.LetDecl) {
	val, ty := e.emitExpr(s.Value)
	slot := fmt.Sprintf("%%local.%s.%d", s.Name, e.tempCounter)
	e.emitLine("  %s = alloca %s", slot, irType(ty))
	e.emitLine("  store %s %s, %s* %s", irType(ty), val, irType(ty), slot)
	e.scope.declare(s.Name, slot, ty)
}

func (e *Emitter) emitIfStmt(s *ast.IfStmt) {
	condVal, _ := e.emitExpr(s.Cond)
	thenLabel, elseLabel, mergeLabel := e.newLabel(), e.newLabel(), e.newLabel()
	if s.ElseBlock == nil && s.ElseIf == nil {
		elseLabel = mergeLabel
	}
	e.emitLine("  br i1 %s, label %%%s, label %%%s", condVal, thenLabel, elseLabel)
	e.emitLine("%s:", thenLabel)
	parent := e.scope
	e.scope = newScope(parent)
	e.emitBlockStmts(s.Then.Stmts)
	e.scope = parent
	e.emitLine("  br label %%%s", mergeLabel)

	if s.ElseBlock != nil {
		e.emitLine("%s:", elseLabel)
		e.scope = newScope(parent)
		e.emitBlockStmts(s.ElseBlock.Stmts)
		e.scope = parent
		e.emitLine("  br label %%%s", mergeLabel)
	} else if s.ElseIf != nil {
		e.emitLine("%s:", elseLabel)
		e.emitIfStmt(s.ElseIf)
		e.emitLine("  br label %%%s", mergeLabel)
	}
	e.emitLine("%s:", mergeLabel)
}

// emitForStmt emits the classic cond/body/end loop pattern over an Array
// value (spec §4.E "For-loops over Array τ").
func (e *Emitter) emitForStmt(s *ast.ForStmt) {
	arrVal, arrType := e.emitExpr(s.Iterable)
	arr, ok := arrType.(types.Array)
	if !ok {
		arr = types.Array{Elem: types.TInt}
	}
	elemIR := irType(arr.Elem)

	lenVal := e.newTemp()
	e.emitLine("  %s = extractvalue {i64, %s*} %s, 0", lenVal, elemIR, arrVal)
	dataVal := e.newTemp()
	e.emitLine("  %s = extractvalue {i64, %s*} %s, 1", dataVal, elemIR, arrVal)

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
	elemPtr := e.newTemp()
	e.emitLine("  %s = getelementptr %s, %s* %s, i64 %s", elemPtr, elemIR, elemIR, dataVal, idxVal)
	elemVal := e.newTemp()
	e.emitLine("  %s = load %s, %s* %s", elemVal, elemIR, elemIR, elemPtr)
	iterSlot := fmt.Sprintf("%%local.%s.%d", s.Iterator, e.tempCounter)
	e.emitLine("  %s = alloca %s", iterSlot, elemIR)
	e.emitLine("  store %s %s, %s* %s", elemIR, elemVal, elemIR, iterSlot)

	parent := e.scope
	e.scope = newScope(parent)
	e.scope.declare(s.Iterator, iterSlot, arr.Elem)
	e.emitBlockStmts(s.Body.Stmts)
	e.scope = parent

	nextIdx := e.newTemp()
	e.emitLine("  %s = add i64 %s, 1", nextIdx, idxVal)
	e.emitLine("  store i64 %s, i64* %s", nextIdx, idxSlot)
	e.emitLine("  br label %%%s", condLabel)
	e.emitLine("%s:", endLabel)
}

func (e *Emitter) emitReturnStmt(s *ast.ReturnStmt) {
	if s.Value == nil {
		e.emitLine("  ret void")
		return
	}
	val, ty := e.emitExpr(s.Value)
	e.emitLine("  ret %s %s", irType(ty), val)
}

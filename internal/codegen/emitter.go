// Package codegen lowers a type-checked AST to textual LLVM IR, per spec
// §4.E. It never runs the LLVM toolchain itself — it only produces the
// ".ll" text a downstream `llc`/`clang` invocation consumes.
//
// Grounded on the teacher's internal/vm/compiler.go Compiler struct (a
// single emission context threading counters, a scope-local variable map,
// and the analyzer's type map through a tree walk) and its
// compiler_scope.go/compiler_statements.go/compiler_expressions.go split —
// adapted from bytecode opcode emission to textual IR line emission via a
// strings.Builder, since DataLang targets an IR text format the teacher's
// own VM never produces; no ecosystem library specializes in hand-rolled
// LLVM textual IR generation, so this is one of the few parts of the repo
// built directly on the standard library (strings.Builder), justified in
// DESIGN.md.
package codegen

import (
	"fmt"
	"strings"

	"github.com/datalang/dlc/internal/analyzer"
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/types"
)

// scope is one level of the variable-name -> IR-slot map (spec §4.E
// "Variable storage").
type scope struct {
	slots  map[string]string // var name -> %slot
	types  map[string]types.Type
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{slots: make(map[string]string), types: make(map[string]types.Type), parent: parent}
}

func (s *scope) declare(name, slot string, t types.Type) {
	s.slots[name] = slot
	s.types[name] = t
}

func (s *scope) lookup(name string) (string, types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if slot, ok := cur.slots[name]; ok {
			return slot, cur.types[name], true
		}
	}
	return "", nil, false
}

// Emitter holds the whole-module emission state: SSA/label counters, the
// interned string table, and the current function's scope chain.
type Emitter struct {
	buf          strings.Builder
	body         strings.Builder // current function body, flushed into buf
	tempCounter  int
	labelCounter int

	strLiterals map[string]string // content -> @.str.N
	strOrder    []string

	an    *analyzer.Analyzer
	scope *scope

	topLevelStmts []ast.Statement // non-Fn/Data top-level items, for wrapper main
}

// Emit lowers prog to textual LLVM IR. an must be the Analyzer that
// type-checked prog (spec §4.E "Contract": input is a type-checked AST plus
// symbol table).
func Emit(prog *ast.Program, an *analyzer.Analyzer) string {
	e := &Emitter{
		an:          an,
		strLiterals: make(map[string]string),
	}
	e.writePreamble()

	for _, item := range prog.Items {
		switch d := item.(type) {
		case *ast.FnDecl:
			e.emitFnDecl(d)
		case *ast.DataDecl:
			// Record layout is carried structurally in types.Custom/Symbol.Fields;
			// no IR struct type is emitted: record values lower to opaque i8*
			// handles (irType) and emitExpr does not lower field access.
		default:
			e.topLevelStmts = append(e.topLevelStmts, item)
		}
	}
	e.emitWrapperMain()
	e.writeStringSection()
	return e.buf.String()
}

func (e *Emitter) newTemp() string {
	e.tempCounter++
	return fmt.Sprintf("%%t%d", e.tempCounter)
}

func (e *Emitter) newLabel() string {
	e.labelCounter++
	return fmt.Sprintf("L%d", e.labelCounter)
}

func (e *Emitter) emitLine(format string, args ...interface{}) {
	fmt.Fprintf(&e.body, format+"\n", args...)
}

func (e *Emitter) internString(s string) string {
	if name, ok := e.strLiterals[s]; ok {
		return name
	}
	name := fmt.Sprintf("@.str.%d", len(e.strOrder))
	e.strLiterals[s] = name
	e.strOrder = append(e.strOrder, s)
	return name
}

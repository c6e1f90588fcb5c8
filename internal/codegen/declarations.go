package codegen

import (
	"fmt"

	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/config"
	"github.com/datalang/dlc/internal/types"
)

// emitFnDecl lowers one source function to `define <ret> @name(...) { ... }`,
// renaming `main` to `user_main` (spec §4.E point 2).
func (e *Emitter) emitFnDecl(d *ast.FnDecl) {
	sym, _ := e.an.Lookup(d.Name)
	fnType := sym.Type.(types.Function)

	irName := d.Name
	if irName == config.MainFuncName {
		irName = config.UserMainFuncName
	}

	e.body.Reset()
	e.tempCounter = 0
	e.labelCounter = 0
	e.scope = newScope(nil)

	var paramList []string
	for i, p := range d.Params {
		slot := fmt.Sprintf("%%p.%s", p.Name)
		ty := fnType.Params[i]
		paramList = append(paramList, fmt.Sprintf("%s %s", irType(ty), slot))
	}

	e.emitLine("define %s @%s(%s) {", irType(fnType.Return), irName, joinParams(paramList))
	e.emitLine("entry:")
	for i, p := range d.Params {
		ty := fnType.Params[i]
		slotAlloc := fmt.Sprintf("%%local.%s", p.Name)
		e.emitLine("  %s = alloca %s", slotAlloc, irType(ty))
		e.emitLine("  store %s %%p.%s, %s* %s", irType(ty), p.Name, irType(ty), slotAlloc)
		e.scope.declare(p.Name, slotAlloc, ty)
	}

	e.emitBlockStmts(d.Body.Stmts)

	if irType(fnType.Return) == "void" {
		e.emitLine("  ret void")
	} else {
		e.emitLine("  ret %s %s", irType(fnType.Return), zeroValue(fnType.Return))
	}
	e.emitLine("}")
	e.emitLine("")
	e.buf.WriteString(e.body.String())
}

func joinParams(params []string) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func zeroValue(t types.Type) string {
	if isFloatType(t) {
		return "0.0"
	}
	if p, ok := t.(types.Prim); ok && p.Kind == types.Bool {
		return "false"
	}
	if p, ok := t.(types.Prim); ok && p.Kind == types.String {
		return "null"
	}
	return "0"
}

// emitWrapperMain lowers the non-function top-level statements into
// `i32 @main()`, per spec §4.E "Wrapper main".
func (e *Emitter) emitWrapperMain() {
	e.body.Reset()
	e.tempCounter = 0
	e.labelCounter = 0
	e.scope = newScope(nil)

	e.emitLine("define i32 @main() {")
	e.emitLine("entry:")
	e.emitBlockStmts(e.topLevelStmts)
	e.emitLine("  ret i32 0")
	e.emitLine("}")
	e.emitLine("")
	e.buf.WriteString(e.body.String())
}

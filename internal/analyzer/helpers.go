package analyzer

import "github.com/datalang/dlc/internal/ast"

// blockReturnsOnAllPaths implements spec §4.D's "Return-path analysis": a
// block returns on all paths iff some statement is a Return, or an If whose
// Then and else branch both return.
func blockReturnsOnAllPaths(b *ast.Block) bool {
	for _, stmt := range b.Stmts {
		if stmtReturnsOnAllPaths(stmt) {
			return true
		}
	}
	return false
}

func stmtReturnsOnAllPaths(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.Block:
		return blockReturnsOnAllPaths(s)
	case *ast.IfStmt:
		if !blockReturnsOnAllPaths(s.Then) {
			return false
		}
		switch {
		case s.ElseBlock != nil:
			return blockReturnsOnAllPaths(s.ElseBlock)
		case s.ElseIf != nil:
			return stmtReturnsOnAllPaths(s.ElseIf)
		default:
			return false // no else branch: falls through on the false path
		}
	default:
		return false
	}
}

// isLvalue reports whether e is an identifier, member, or index chain
// rooted in one, per spec §4.D "Assign(target, value)".
func isLvalue(e ast.Expression) bool {
	switch v := e.(type) {
	case *ast.Identifier:
		return true
	case *ast.Member:
		return isLvalue(v.Obj)
	case *ast.Index:
		return isLvalue(v.Obj)
	default:
		return false
	}
}

package symbols_test

import (
	"testing"

	"github.com/datalang/dlc/internal/symbols"
	"github.com/datalang/dlc/internal/types"
)

func TestDeclareRejectsDuplicateNameInSameScope(t *testing.T) {
	scope := symbols.NewGlobalScope()
	ok := scope.Declare(&symbols.Symbol{Name: "x", Kind: symbols.VariableSymbol, Type: types.TInt})
	if !ok {
		t.Fatalf("expected first declare to succeed")
	}
	ok = scope.Declare(&symbols.Symbol{Name: "x", Kind: symbols.VariableSymbol, Type: types.TInt})
	if ok {
		t.Fatalf("expected duplicate declare in same scope to fail")
	}
}

func TestLookupWalksOuterScopes(t *testing.T) {
	global := symbols.NewGlobalScope()
	global.Declare(&symbols.Symbol{Name: "outer", Kind: symbols.VariableSymbol, Type: types.TInt})

	inner := global.Push()
	inner.Declare(&symbols.Symbol{Name: "inner", Kind: symbols.VariableSymbol, Type: types.TBool})

	if _, ok := inner.Lookup("outer"); !ok {
		t.Errorf("expected inner scope to find outer's symbol")
	}
	if _, ok := global.Lookup("inner"); ok {
		t.Errorf("expected global scope not to see inner's symbol")
	}
}

func TestLookupLocalIgnoresParent(t *testing.T) {
	global := symbols.NewGlobalScope()
	global.Declare(&symbols.Symbol{Name: "x", Kind: symbols.VariableSymbol, Type: types.TInt})
	inner := global.Push()

	if _, ok := inner.LookupLocal("x"); ok {
		t.Errorf("expected LookupLocal not to see parent's symbol")
	}
}

func TestPushIncrementsDepth(t *testing.T) {
	global := symbols.NewGlobalScope()
	if global.Depth() != 0 {
		t.Fatalf("expected global scope depth 0, got %d", global.Depth())
	}
	inner := global.Push()
	if inner.Depth() != 1 {
		t.Fatalf("expected child scope depth 1, got %d", inner.Depth())
	}
	if inner.Parent() != global {
		t.Fatalf("expected child's parent to be the global scope")
	}
}

func TestLocalVariablesReturnsOnlyVariablesAndParametersInOrder(t *testing.T) {
	scope := symbols.NewGlobalScope()
	scope.Declare(&symbols.Symbol{Name: "fn", Kind: symbols.FunctionSymbol, Type: types.Function{Return: types.TVoid}})
	scope.Declare(&symbols.Symbol{Name: "a", Kind: symbols.VariableSymbol, Type: types.TInt})
	scope.Declare(&symbols.Symbol{Name: "p", Kind: symbols.ParameterSymbol, Type: types.TInt})
	scope.Declare(&symbols.Symbol{Name: "T", Kind: symbols.TypeSymbol, Type: types.Custom{Name: "T"}})

	vars := scope.LocalVariables()
	if len(vars) != 2 {
		t.Fatalf("expected 2 local variables, got %d", len(vars))
	}
	if vars[0].Name != "a" || vars[1].Name != "p" {
		t.Errorf("expected declaration order a, p; got %s, %s", vars[0].Name, vars[1].Name)
	}
}

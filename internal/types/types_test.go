package types_test

import (
	"testing"

	"github.com/datalang/dlc/internal/types"
)

func TestEqualPrimitives(t *testing.T) {
	if !types.Equal(types.TInt, types.TInt) {
		t.Errorf("expected TInt == TInt")
	}
	if types.Equal(types.TInt, types.TFloat) {
		t.Errorf("expected TInt != TFloat")
	}
}

func TestEqualArraysAndFunctions(t *testing.T) {
	a := types.Array{Elem: types.TInt}
	b := types.Array{Elem: types.TInt}
	if !types.Equal(a, b) {
		t.Errorf("expected equal arrays")
	}
	f1 := types.Function{Params: []types.Type{types.TInt, types.TFloat}, Return: types.TBool}
	f2 := types.Function{Params: []types.Type{types.TInt, types.TFloat}, Return: types.TBool}
	if !types.Equal(f1, f2) {
		t.Errorf("expected equal functions")
	}
}

func TestCompatibleWidensIntToFloat(t *testing.T) {
	if !types.Compatible(types.TFloat, types.TInt) {
		t.Errorf("expected Int compatible with declared Float")
	}
	if types.Compatible(types.TInt, types.TFloat) {
		t.Errorf("expected Float not compatible with declared Int")
	}
}

func TestCompatibleErrorIsAbsorbing(t *testing.T) {
	if !types.Compatible(types.TError, types.TBool) {
		t.Errorf("expected Error compatible with anything")
	}
	if !types.Compatible(types.TBool, types.TError) {
		t.Errorf("expected anything compatible with Error")
	}
}

func TestWidenPrefersFloat(t *testing.T) {
	if got := types.Widen(types.TInt, types.TFloat); !types.Equal(got, types.TFloat) {
		t.Errorf("got %v", got)
	}
	if got := types.Widen(types.TInt, types.TInt); !types.Equal(got, types.TInt) {
		t.Errorf("got %v", got)
	}
}

func TestFreshProducesDistinctVars(t *testing.T) {
	types.ResetVarCounter()
	a := types.Fresh()
	b := types.Fresh()
	if a.ID == b.ID {
		t.Errorf("expected distinct fresh var ids, got %d and %d", a.ID, b.ID)
	}
}

func TestUnifyBindsVarToConcreteType(t *testing.T) {
	types.ResetVarCounter()
	v := types.Fresh()
	s, err := types.Unify(v, types.TInt)
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if got := v.Apply(s); !types.Equal(got, types.TInt) {
		t.Errorf("got %v", got)
	}
}

func TestUnifyStructuralMismatchErrors(t *testing.T) {
	_, err := types.Unify(types.TInt, types.TBool)
	if err == nil {
		t.Fatalf("expected a unify error")
	}
}

func TestUnifyOccursCheckRejectsInfiniteType(t *testing.T) {
	types.ResetVarCounter()
	v := types.Fresh()
	_, err := types.Unify(v, types.Array{Elem: v})
	if err == nil {
		t.Fatalf("expected an occurs-check error")
	}
}

func TestUnifyFunctionsComposesParamAndReturnSubstitutions(t *testing.T) {
	types.ResetVarCounter()
	v1, v2 := types.Fresh(), types.Fresh()
	f1 := types.Function{Params: []types.Type{v1}, Return: v2}
	f2 := types.Function{Params: []types.Type{types.TInt}, Return: types.TBool}

	s, err := types.Unify(f1, f2)
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if got := v1.Apply(s); !types.Equal(got, types.TInt) {
		t.Errorf("got param %v", got)
	}
	if got := v2.Apply(s); !types.Equal(got, types.TBool) {
		t.Errorf("got return %v", got)
	}
}

func TestComposeAppliesLaterSubstitutionToEarlierTargets(t *testing.T) {
	types.ResetVarCounter()
	v1, v2 := types.Fresh(), types.Fresh()
	s1 := types.Subst{v1.ID: v2}
	s2 := types.Subst{v2.ID: types.TInt}

	composed := types.Compose(s1, s2)
	if got := v1.Apply(composed); !types.Equal(got, types.TInt) {
		t.Errorf("got %v", got)
	}
}

// Package types implements DataLang's structural type system: the tagged
// Type variant, a Hindley-Milner-style unifier over fresh type variables,
// and substitution composition.
//
// Grounded on the teacher's internal/typesystem/types.go (the Type
// interface shape: String/Apply/FreeTypeVariables) and
// internal/typesystem/unify.go (the unifier's case-by-case structural
// recursion, composed substitutions, occurs check), trimmed to the
// primitive set spec.md §3 names and stripped of the teacher's row-typed
// records/traits/kind system, which DataLang has no use for.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface every type variant implements.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []string
}

// Subst is a finite map from type-variable id to the type it is bound to.
// Substitutions are normal form: no variable in the domain appears free in
// any of the codomain types (spec §3 "Substitution" invariant), maintained
// by Compose applying the new mapping to all previously added ones before
// appending it.
type Subst map[int]Type

// ---- Primitive types ----
// Primitive constructors compare equal by kind; Prim is a plain value type
// so two Prims with the same Kind are == in Go already.

type PrimKind int

const (
	Int PrimKind = iota
	Float
	String
	Bool
	Void
	DataFrame
	Vector
	Series
	ErrorType
)

var primNames = map[PrimKind]string{
	Int: "Int", Float: "Float", String: "String", Bool: "Bool", Void: "Void",
	DataFrame: "DataFrame", Vector: "Vector", Series: "Series", ErrorType: "Error",
}

// Prim is a primitive type.
type Prim struct{ Kind PrimKind }

func (p Prim) String() string                    { return primNames[p.Kind] }
func (p Prim) Apply(Subst) Type                  { return p }
func (p Prim) FreeTypeVariables() []string        { return nil }

var (
	TInt       = Prim{Int}
	TFloat     = Prim{Float}
	TString    = Prim{String}
	TBool      = Prim{Bool}
	TVoid      = Prim{Void}
	TDataFrame = Prim{DataFrame}
	TVector    = Prim{Vector}
	TSeries    = Prim{Series}
	TError     = Prim{ErrorType}
)

// IsError reports whether t is the absorbing Error type (spec §3 invariant:
// "Error is absorbing").
func IsError(t Type) bool {
	p, ok := t.(Prim)
	return ok && p.Kind == ErrorType
}

// ---- Array ----

type Array struct{ Elem Type }

func (a Array) String() string             { return "[" + a.Elem.String() + "]" }
func (a Array) Apply(s Subst) Type         { return Array{Elem: a.Elem.Apply(s)} }
func (a Array) FreeTypeVariables() []string { return a.Elem.FreeTypeVariables() }

// ---- Tuple ----

type Tuple struct{ Elems []Type }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t Tuple) Apply(s Subst) Type {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Apply(s)
	}
	return Tuple{Elems: elems}
}
func (t Tuple) FreeTypeVariables() []string {
	var out []string
	for _, e := range t.Elems {
		out = append(out, e.FreeTypeVariables()...)
	}
	return out
}

// ---- Function ----

type Function struct {
	Params []Type
	Return Type
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + f.Return.String()
}
func (f Function) Apply(s Subst) Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Apply(s)
	}
	return Function{Params: params, Return: f.Return.Apply(s)}
}
func (f Function) FreeTypeVariables() []string {
	var out []string
	for _, p := range f.Params {
		out = append(out, p.FreeTypeVariables()...)
	}
	out = append(out, f.Return.FreeTypeVariables()...)
	return out
}

// ---- Custom (record) ----

type Custom struct{ Name string }

func (c Custom) String() string             { return c.Name }
func (c Custom) Apply(Subst) Type           { return c }
func (c Custom) FreeTypeVariables() []string { return nil }

// ---- Var ----

// nextVarID is the monotonic counter minting fresh unification variable ids
// within one compilation (spec §3 "Var ids are globally unique within a
// compilation").
var nextVarID int

// ResetVarCounter starts a fresh id sequence; called once per compilation by
// the analyzer so successive compilations (e.g. in the same test process)
// don't leak ever-growing ids into golden output.
func ResetVarCounter() {
	nextVarID = 0
}

// Var is a unification type variable.
type Var struct{ ID int }

// Fresh mints a new, previously unused type variable.
func Fresh() Var {
	v := Var{ID: nextVarID}
	nextVarID++
	return v
}

func (v Var) String() string               { return fmt.Sprintf("'T%d", v.ID) }
func (v Var) FreeTypeVariables() []string   { return []string{fmt.Sprintf("%d", v.ID)} }
func (v Var) Apply(s Subst) Type {
	if t, ok := s[v.ID]; ok {
		if tv, ok := t.(Var); ok && tv.ID == v.ID {
			return v
		}
		return t.Apply(s)
	}
	return v
}

// ---- Structural equality ----

// Equal reports structural equality: two Vars are equal iff their ids
// match; every other variant recurses over its fields (spec §3
// "Invariants").
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case Prim:
		bt, ok := b.(Prim)
		return ok && at.Kind == bt.Kind
	case Array:
		bt, ok := b.(Array)
		return ok && Equal(at.Elem, bt.Elem)
	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !Equal(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	case Function:
		bt, ok := b.(Function)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return Equal(at.Return, bt.Return)
	case Custom:
		bt, ok := b.(Custom)
		return ok && at.Name == bt.Name
	case Var:
		bt, ok := b.(Var)
		return ok && at.ID == bt.ID
	default:
		return false
	}
}

// Compatible implements spec §4.D's compatible(a,b): true if either side is
// Error, true on structural equality, and true for the (non-symmetric)
// implicit widening of Int where Float is expected.
func Compatible(declared, actual Type) bool {
	if IsError(declared) || IsError(actual) {
		return true
	}
	if Equal(declared, actual) {
		return true
	}
	if p, ok := declared.(Prim); ok && p.Kind == Float {
		if q, ok := actual.(Prim); ok && q.Kind == Int {
			return true
		}
	}
	return false
}

// Widen returns the result type of a binary arithmetic operator given two
// compatible numeric operand types: Float if either side is Float, else Int
// (spec §4.D "Arithmetic").
func Widen(a, b Type) Type {
	if p, ok := a.(Prim); ok && p.Kind == Float {
		return TFloat
	}
	if p, ok := b.(Prim); ok && p.Kind == Float {
		return TFloat
	}
	return TInt
}

// SortedVarIDs returns a sorted copy of a set of free type-variable ids, for
// deterministic output.
func SortedVarIDs(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

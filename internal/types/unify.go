package types

import "fmt"

// UnifyError is returned when two types cannot be unified.
type UnifyError struct {
	A, B Type
	Msg  string
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.A.String(), e.B.String(), e.Msg)
}

// Unify computes the most general substitution making a and b structurally
// equal, per spec §4.D's numbered unifier contract.
func Unify(a, b Type) (Subst, error) {
	if Equal(a, b) {
		return Subst{}, nil
	}

	if va, ok := a.(Var); ok {
		return bind(va, b)
	}
	if vb, ok := b.(Var); ok {
		return bind(vb, a)
	}

	switch at := a.(type) {
	case Array:
		bt, ok := b.(Array)
		if !ok {
			return nil, mismatch(a, b)
		}
		return Unify(at.Elem, bt.Elem)

	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return nil, mismatch(a, b)
		}
		return unifyList(at.Elems, bt.Elems)

	case Function:
		bt, ok := b.(Function)
		if !ok || len(at.Params) != len(bt.Params) {
			return nil, mismatch(a, b)
		}
		s, err := unifyList(at.Params, bt.Params)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(at.Return.Apply(s), bt.Return.Apply(s))
		if err != nil {
			return nil, err
		}
		return Compose(s, s2), nil

	default:
		return nil, mismatch(a, b)
	}
}

func unifyList(as, bs []Type) (Subst, error) {
	result := Subst{}
	for i := range as {
		s, err := Unify(as[i].Apply(result), bs[i].Apply(result))
		if err != nil {
			return nil, err
		}
		result = Compose(result, s)
	}
	return result, nil
}

func mismatch(a, b Type) error {
	return &UnifyError{A: a, B: b, Msg: "structural mismatch"}
}

// occurs reports whether v appears anywhere inside t (spec §4.D "occurs
// check").
func occurs(v Var, t Type) bool {
	for _, id := range t.FreeTypeVariables() {
		if id == fmt.Sprintf("%d", v.ID) {
			return true
		}
	}
	return false
}

func bind(v Var, t Type) (Subst, error) {
	if tv, ok := t.(Var); ok && tv.ID == v.ID {
		return Subst{}, nil
	}
	if occurs(v, t) {
		return nil, &UnifyError{A: v, B: t, Msg: "infinite type"}
	}
	return Subst{v.ID: t}, nil
}

// Compose produces the substitution equivalent to applying s1 then s2:
// every s1 target has s2 applied to it, and any s2 mapping whose domain is
// not already in s1 is appended (spec §3 "Substitution composition").
func Compose(s1, s2 Subst) Subst {
	result := make(Subst, len(s1)+len(s2))
	for id, t := range s1 {
		result[id] = t.Apply(s2)
	}
	for id, t := range s2 {
		if _, exists := result[id]; !exists {
			result[id] = t
		}
	}
	return result
}

// Package automaton builds a table-driven DFA from a set of per-token-family
// NFAs via subset construction, and runs it with maximal-munch semantics.
//
// This mirrors the teacher's own layered "union small automata, unify, run"
// shape (seen in internal/typesystem's trait dictionary dispatch), but the
// actual automaton algorithm is ported from original_source's
// src/lexer/datalang_afn.c and src/lexer/afn_to_afd.c: one NFA per token
// family, epsilon-joined under a fresh start state, then subset-constructed
// into a single DFA.
package automaton

import "github.com/datalang/dlc/internal/token"

// Epsilon is the distinguished epsilon-transition symbol. The input alphabet
// is the 256 byte values 0..255.
const Epsilon = -1

const AlphabetSize = 256

// NFA is a single nondeterministic automaton recognizing one token family.
// States are numbered 0..NumStates-1; state 0 is always the start state.
type NFA struct {
	NumStates int
	Start     int
	// Trans[state][symbol] is the set of destination states reachable on
	// symbol directly (symbol == Epsilon for epsilon-transitions).
	Trans      []map[int][]int
	Final      []bool
	TokenKind  []token.Kind // meaningful only where Final[state] is true
}

// NewNFA allocates an empty NFA with n states.
func NewNFA(n int) *NFA {
	trans := make([]map[int][]int, n)
	for i := range trans {
		trans[i] = make(map[int][]int)
	}
	return &NFA{
		NumStates: n,
		Trans:     trans,
		Final:     make([]bool, n),
		TokenKind: make([]token.Kind, n),
	}
}

// AddState grows the NFA by one state and returns its id.
func (n *NFA) AddState() int {
	id := n.NumStates
	n.NumStates++
	n.Trans = append(n.Trans, make(map[int][]int))
	n.Final = append(n.Final, false)
	n.TokenKind = append(n.TokenKind, token.ILLEGAL)
	return id
}

// AddTransition adds an edge from -> to on the given input symbol (or
// Epsilon).
func (n *NFA) AddTransition(from, symbol, to int) {
	n.Trans[from][symbol] = append(n.Trans[from][symbol], to)
}

// AddRangeTransition adds edges from -> to for every symbol in [lo, hi].
func (n *NFA) AddRangeTransition(from int, lo, hi byte, to int) {
	for s := int(lo); s <= int(hi); s++ {
		n.AddTransition(from, s, to)
	}
}

// MarkFinal marks state as accepting for the given token kind.
func (n *NFA) MarkFinal(state int, kind token.Kind) {
	n.Final[state] = true
	n.TokenKind[state] = kind
}

// Union builds a single combined NFA out of several per-family NFAs: a fresh
// state q0 is placed first, with an epsilon-transition from q0 to each
// family's (offset) start state. Final states retain their family's token
// kind. This is the "unification of token families" step from spec §4.A.
func Union(families ...*NFA) *NFA {
	combined := NewNFA(1) // state 0 is q0
	for _, fam := range families {
		offset := combined.NumStates
		for i := 0; i < fam.NumStates; i++ {
			combined.AddState()
		}
		for s := 0; s < fam.NumStates; s++ {
			for symbol, dests := range fam.Trans[s] {
				for _, d := range dests {
					combined.AddTransition(offset+s, symbol, offset+d)
				}
			}
			if fam.Final[s] {
				combined.MarkFinal(offset+s, fam.TokenKind[s])
			}
		}
		combined.AddTransition(0, Epsilon, offset+fam.Start)
	}
	combined.Start = 0
	return combined
}

// EpsilonClosure returns the set of states reachable from any state in the
// given set via zero or more epsilon-transitions, including the seeds
// themselves.
func (n *NFA) EpsilonClosure(states []int) []int {
	seen := make(map[int]bool, len(states))
	stack := make([]int, 0, len(states))
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range n.Trans[s][Epsilon] {
			if !seen[d] {
				seen[d] = true
				stack = append(stack, d)
			}
		}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	return out
}

// Move returns the set of states reachable from any state in the given set
// on the given input symbol (no epsilon-closure applied).
func (n *NFA) Move(states []int, symbol int) []int {
	var out []int
	for _, s := range states {
		out = append(out, n.Trans[s][symbol]...)
	}
	return out
}

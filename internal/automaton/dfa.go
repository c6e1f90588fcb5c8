package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/datalang/dlc/internal/token"
)

// DFA is a deterministic, table-driven automaton: one transition lookup per
// input byte, accepting states labeled with the token kind they recognize.
type DFA struct {
	NumStates int
	Start     int
	// Table[state][symbol] is the destination state, or -1 if no transition
	// is defined (the implicit error sink from spec §4.A).
	Table     [][]int
	Final     []bool
	TokenKind []token.Kind
}

// stateSetKey canonicalizes a set of NFA state ids into a stable map key so
// that equivalent DFA states (same underlying NFA-state-set) are detected
// and merged, per spec §4.A step 2.
func stateSetKey(states []int) string {
	sorted := append([]int(nil), states...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

// SubsetConstruct converts a unified NFA into an equivalent DFA via the
// classic worklist subset-construction algorithm (spec §4.A).
//
// A DFA state is accepting iff its underlying NFA state set contains any
// accepting NFA state; its token kind is taken from the first such NFA state
// encountered in ascending state-id order, matching the deterministic
// per-family tie-break the spec calls for (disambiguation across families is
// left to maximal-munch in the lexer, not to this step).
func SubsetConstruct(n *NFA) *DFA {
	dfa := &DFA{}
	stateOf := make(map[string]int)
	var nfaSets [][]int

	startSet := n.EpsilonClosure([]int{n.Start})
	startKey := stateSetKey(startSet)
	stateOf[startKey] = 0
	nfaSets = append(nfaSets, startSet)
	dfa.Start = 0

	worklist := []int{0}
	for len(worklist) > 0 {
		d := worklist[0]
		worklist = worklist[1:]
		set := nfaSets[d]

		for symbol := 0; symbol < AlphabetSize; symbol++ {
			moved := n.Move(set, symbol)
			if len(moved) == 0 {
				continue
			}
			closure := n.EpsilonClosure(moved)
			key := stateSetKey(closure)
			dst, seen := stateOf[key]
			if !seen {
				dst = len(nfaSets)
				stateOf[key] = dst
				nfaSets = append(nfaSets, closure)
				worklist = append(worklist, dst)
			}
			dfa.ensureState(dst)
			dfa.ensureState(d)
			dfa.Table[d][symbol] = dst
		}
	}

	dfa.NumStates = len(nfaSets)
	for d, set := range nfaSets {
		dfa.ensureState(d)
		sorted := append([]int(nil), set...)
		sort.Ints(sorted)
		for _, s := range sorted {
			if n.Final[s] {
				dfa.Final[d] = true
				dfa.TokenKind[d] = n.TokenKind[s]
				break
			}
		}
	}
	return dfa
}

func (d *DFA) ensureState(id int) {
	for len(d.Table) <= id {
		row := make([]int, AlphabetSize)
		for i := range row {
			row[i] = -1
		}
		d.Table = append(d.Table, row)
		d.Final = append(d.Final, false)
		d.TokenKind = append(d.TokenKind, token.ILLEGAL)
	}
	if id+1 > d.NumStates {
		d.NumStates = id + 1
	}
}

// Step returns the next state on symbol from state, or -1 if no transition
// is defined.
func (d *DFA) Step(state int, symbol byte) int {
	if state < 0 || state >= d.NumStates {
		return -1
	}
	return d.Table[state][int(symbol)]
}

// Run executes maximal-munch over input starting at offset 0: it walks the
// DFA until no transition is possible, remembering the last accepting
// state's consumed length. It returns the number of bytes consumed and the
// recognized kind, or ok=false if no accepting state was ever reached.
func (d *DFA) Run(input string) (consumed int, kind token.Kind, ok bool) {
	state := d.Start
	lastAcceptLen := 0
	var lastKind token.Kind

	for i := 0; i < len(input); i++ {
		next := d.Step(state, input[i])
		if next == -1 {
			break
		}
		state = next
		if d.Final[state] {
			lastAcceptLen = i + 1
			lastKind = d.TokenKind[state]
		}
	}
	if lastAcceptLen == 0 {
		return 0, token.ILLEGAL, false
	}
	return lastAcceptLen, lastKind, true
}

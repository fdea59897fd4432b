package equation

import (
	"testing"

	"noodlify/automaton"
)

func buildLeftRight() (left []*automaton.NFA, right *automaton.NFA) {
	// left[0]: {a}, left[1]: {b} -- concatenated and glued through an
	// intersection with right: {ab}
	l0 := automaton.New(2)
	l0.SetInitials([]automaton.State{0})
	l0.SetFinals([]automaton.State{1})
	l0.AddTransition(0, 1, 1)

	l1 := automaton.New(2)
	l1.SetInitials([]automaton.State{0})
	l1.SetFinals([]automaton.State{1})
	l1.AddTransition(0, 2, 1)

	r := automaton.New(3)
	r.SetInitials([]automaton.State{0})
	r.SetFinals([]automaton.State{2})
	r.AddTransition(0, 1, 1)
	r.AddTransition(1, 2, 2)

	return []*automaton.NFA{l0, l1}, r
}

// ------------------------------------------------------------------- scenario 5: empty right side

func TestNoodlifyForEquationEmptyRightIsEmpty(t *testing.T) {
	left, _ := buildLeftRight()

	right := automaton.New(2)
	right.SetInitials([]automaton.State{0})
	right.SetFinals([]automaton.State{1})
	// no path 0 -> 1: right's language is empty

	seq, err := NoodlifyForEquation(left, right, true, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != nil {
		t.Fatalf("want a nil sequence when right's language is empty, got %v", seq)
	}
}

func TestNoodlifyForEquationEmptyLeftIsEmpty(t *testing.T) {
	_, right := buildLeftRight()

	seq, err := NoodlifyForEquation(nil, right, true, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != nil {
		t.Fatalf("want a nil sequence when left is empty, got %v", seq)
	}
}

// ------------------------------------------------------------------- basic gluing

func TestNoodlifyForEquationGluesLeftThroughRight(t *testing.T) {
	left, right := buildLeftRight()

	seq, err := NoodlifyForEquation(left, right, false, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 1 {
		t.Fatalf("want 1 noodle, got %d", len(seq))
	}
	if len(seq[0]) != 2 {
		t.Fatalf("want 2 sub-automata (one per left segment), got %d", len(seq[0]))
	}
}

// ------------------------------------------------------------------- scenario 6: reduction equivalence

func TestNoodlifyForEquationReductionEquivalence(t *testing.T) {
	leftPlain, rightPlain := buildLeftRight()
	seqPlain, err := NoodlifyForEquation(leftPlain, rightPlain, false, Params{})
	if err != nil {
		t.Fatalf("unexpected error (no reduce): %v", err)
	}

	leftReduced, rightReduced := buildLeftRight()
	seqReduced, err := NoodlifyForEquation(leftReduced, rightReduced, false, Params{Reduce: ReduceBidirectional})
	if err != nil {
		t.Fatalf("unexpected error (bidirectional reduce): %v", err)
	}

	if len(seqPlain) != len(seqReduced) {
		t.Fatalf("want equal noodle counts with and without reduction, got %d vs %d", len(seqPlain), len(seqReduced))
	}
	for i := range seqPlain {
		if len(seqPlain[i]) != len(seqReduced[i]) {
			t.Fatalf("noodle %d: want matching segment counts, got %d vs %d", i, len(seqPlain[i]), len(seqReduced[i]))
		}
		for j := range seqPlain[i] {
			if !languageEquivalent(seqPlain[i][j], seqReduced[i][j]) {
				t.Fatalf("noodle %d segment %d: languages differ after reduction", i, j)
			}
		}
	}
}

// languageEquivalent checks language equivalence by simulating every word
// up to a small bound over the union alphabet; sufficient for the small
// fixtures these tests build.
func languageEquivalent(a, b *automaton.NFA) bool {
	alphabet := map[automaton.Symbol]struct{}{}
	for _, tr := range a.Transitions() {
		alphabet[tr.Symbol] = struct{}{}
	}
	for _, tr := range b.Transitions() {
		alphabet[tr.Symbol] = struct{}{}
	}
	var symbols []automaton.Symbol
	for s := range alphabet {
		symbols = append(symbols, s)
	}

	const maxLen = 4
	var words [][]automaton.Symbol
	cur := [][]automaton.Symbol{{}}
	for length := 0; length <= maxLen; length++ {
		words = append(words, cur...)
		var next [][]automaton.Symbol
		for _, w := range cur {
			for _, s := range symbols {
				next = append(next, append(append([]automaton.Symbol(nil), w...), s))
			}
		}
		cur = next
	}

	for _, w := range words {
		if accepts(a, w) != accepts(b, w) {
			return false
		}
	}
	return true
}

func accepts(a *automaton.NFA, word []automaton.Symbol) bool {
	cur := map[automaton.State]struct{}{}
	for _, s := range a.Initials() {
		cur[s] = struct{}{}
	}
	for _, sym := range word {
		next := map[automaton.State]struct{}{}
		for s := range cur {
			for _, t := range a.Trans(s, sym) {
				next[t] = struct{}{}
			}
		}
		cur = next
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// ------------------------------------------------------------------- handle-based entry point

func TestNoodlifyForEquationHandlesSkipsUnificationWithoutReduce(t *testing.T) {
	left, right := buildLeftRight()
	handles := make([]automaton.Handle, len(left))
	for i, a := range left {
		handles[i] = automaton.NewHandle(a)
	}

	_, err := NoodlifyForEquationHandles(handles, right, false, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// left must be untouched: NoodlifyForEquationHandles must not have
	// unified or mutated the caller's automata when reduce is absent.
	if left[0].NumStates() != 2 || left[1].NumStates() != 2 {
		t.Fatalf("want the caller's automata left with their original state counts, got %d and %d",
			left[0].NumStates(), left[1].NumStates())
	}
}

func TestNoodlifyForEquationHandlesReduceClonesBeforeUnifying(t *testing.T) {
	left, right := buildLeftRight()
	handles := make([]automaton.Handle, len(left))
	for i, a := range left {
		handles[i] = automaton.NewHandle(a)
	}

	originalStates := []automaton.State{left[0].NumStates(), left[1].NumStates()}

	_, err := NoodlifyForEquationHandles(handles, right, false, Params{Reduce: ReduceForward})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, a := range left {
		if a.NumStates() != originalStates[i] {
			t.Fatalf("caller's automaton %d was mutated in place: want %d states, got %d", i, originalStates[i], a.NumStates())
		}
	}
}

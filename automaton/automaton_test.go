package automaton

import "testing"

// ------------------------------------------------------------------- basics

func TestAddTransitionDedup(t *testing.T) {
	a := New(2)
	a.AddTransition(0, 5, 1)
	a.AddTransition(0, 5, 1)
	if got := a.Trans(0, 5); len(got) != 1 {
		t.Fatalf("want 1 target, got %v", got)
	}
}

func TestMaxSymbol(t *testing.T) {
	a := New(3)
	if _, ok := a.MaxSymbol(); ok {
		t.Fatalf("fresh automaton should report no alphabet")
	}
	a.AddTransition(0, 3, 1)
	a.AddTransition(1, 7, 2)
	a.AddTransition(1, 2, 2)
	max, ok := a.MaxSymbol()
	if !ok || max != 7 {
		t.Fatalf("want max symbol 7, got %d ok=%v", max, ok)
	}
}

func TestTransitionsOrder(t *testing.T) {
	a := New(3)
	a.AddTransition(1, 2, 0)
	a.AddTransition(0, 1, 2)
	a.AddTransition(0, 0, 1)
	trs := a.Transitions()
	want := []Transition{{0, 0, 1}, {0, 1, 2}, {1, 2, 0}}
	if len(trs) != len(want) {
		t.Fatalf("want %d transitions, got %d", len(want), len(trs))
	}
	for i := range want {
		if trs[i] != want[i] {
			t.Fatalf("transition %d: want %+v got %+v", i, want[i], trs[i])
		}
	}
}

// ------------------------------------------------------------------- unify

func TestUnifyInitial(t *testing.T) {
	a := New(3)
	a.SetInitials([]State{0, 1})
	a.SetFinals([]State{1})
	a.AddTransition(0, 9, 2)
	a.AddTransition(1, 9, 2)

	a.UnifyInitial()
	if len(a.Initials()) != 1 {
		t.Fatalf("want single initial, got %v", a.Initials())
	}
	ns := a.Initials()[0]
	if !a.IsFinal(ns) {
		t.Fatalf("unified initial should inherit finality from former initial 1")
	}
	if got := a.Trans(ns, 9); len(got) != 1 || got[0] != 2 {
		t.Fatalf("unified initial should inherit transitions, got %v", got)
	}
}

func TestUnifyFinal(t *testing.T) {
	a := New(3)
	a.SetInitials([]State{0})
	a.SetFinals([]State{1, 2})
	a.AddTransition(0, 9, 1)
	a.AddTransition(0, 9, 2)

	a.UnifyFinal()
	if len(a.Finals()) != 1 {
		t.Fatalf("want single final, got %v", a.Finals())
	}
	nf := a.Finals()[0]
	found := false
	for _, tgt := range a.Trans(0, 9) {
		if tgt == nf {
			found = true
		}
	}
	if !found {
		t.Fatalf("unified final should be reachable the same way the former finals were")
	}
}

// ------------------------------------------------------------------- handle

func TestHandleHasNoMutators(t *testing.T) {
	a := New(1)
	h := NewHandle(a)
	// Handle exposes only accessors; Clone() is the only way to obtain
	// something mutable, and mutating the clone must not affect a.
	c := h.Clone()
	c.AddTransition(0, 1, 0)
	if len(a.Transitions()) != 0 {
		t.Fatalf("mutating a clone must not mutate the handle's automaton")
	}
}

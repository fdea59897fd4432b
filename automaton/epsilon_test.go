package automaton

import "testing"

// ------------------------------------------------------------------- concat

func TestConcatEpsLanguage(t *testing.T) {
	const eps Symbol = 100

	a := New(2)
	a.SetInitials([]State{0})
	a.SetFinals([]State{1})
	a.AddTransition(0, 1, 1) // L(a) = {a}

	b := New(2)
	b.SetInitials([]State{0})
	b.SetFinals([]State{1})
	b.AddTransition(0, 2, 1) // L(b) = {b}

	c := ConcatEps(a, b, eps)
	if c.NumStates() != 4 {
		t.Fatalf("want 4 states, got %d", c.NumStates())
	}
	if !accepts(c, []Symbol{1, eps, 2}) {
		t.Fatalf("concatenation should accept a.eps.b")
	}
	if accepts(c, []Symbol{1, 2}) {
		t.Fatalf("concatenation should not accept a.b without the eps symbol")
	}
}

func TestConcatEpsMultipleFinalsAndInitials(t *testing.T) {
	const eps Symbol = 100

	a := New(2)
	a.SetInitials([]State{0})
	a.SetFinals([]State{0, 1})
	a.AddTransition(0, 1, 1)

	b := New(2)
	b.SetInitials([]State{0, 1})
	b.SetFinals([]State{1})
	b.AddTransition(0, 2, 1)

	c := ConcatEps(a, b, eps)
	// every final of a should reach every initial of b via eps
	finalsOfA := a.final
	for _, f := range finalsOfA {
		for _, i := range b.init {
			found := false
			for _, t := range c.Trans(f, eps) {
				if t == i+a.n {
					found = true
				}
			}
			if !found {
				t.Fatalf("missing eps edge from final %d to initial %d", f, i)
			}
		}
	}
}

// ------------------------------------------------------------------- intersect

func TestIntersectEpsNonEpsLanguage(t *testing.T) {
	const eps Symbol = 100

	p := New(2)
	p.SetInitials([]State{0})
	p.SetFinals([]State{1})
	p.AddTransition(0, 1, 1) // L(p) = {a}

	q := New(2)
	q.SetInitials([]State{0})
	q.SetFinals([]State{1})
	q.AddTransition(0, 1, 1) // L(q) = {a}

	prod := IntersectEps(p, q, eps)
	if !accepts(prod, []Symbol{1}) {
		t.Fatalf("intersection should accept a")
	}
	if accepts(prod, []Symbol{2}) {
		t.Fatalf("intersection should not accept b")
	}
}

func TestIntersectEpsLiftsEpsWithoutMovingQ(t *testing.T) {
	const eps Symbol = 100

	// p: 0 -eps-> 1 (final); q: 0 (initial, final)
	p := New(2)
	p.SetInitials([]State{0})
	p.SetFinals([]State{1})
	p.AddTransition(0, eps, 1)

	q := New(1)
	q.SetInitials([]State{0})
	q.SetFinals([]State{0})

	prod := IntersectEps(p, q, eps)
	if !accepts(prod, []Symbol{eps}) {
		t.Fatalf("an eps move in p must be liftable without a move in q")
	}
}

func TestIntersectEpsEmptyWhenDisjoint(t *testing.T) {
	const eps Symbol = 100

	p := New(2)
	p.SetInitials([]State{0})
	p.SetFinals([]State{1})
	p.AddTransition(0, 1, 1) // {a}

	q := New(2)
	q.SetInitials([]State{0})
	q.SetFinals([]State{1})
	q.AddTransition(0, 2, 1) // {b}

	prod := IntersectEps(p, q, eps)
	if !IsLangEmpty(prod) {
		t.Fatalf("disjoint languages should intersect to empty")
	}
}

// Package automaton implements the NFA primitives noodlification is built
// on: the automaton data type itself, structural transforms (trim,
// reverse, reduce), emptiness, and the two epsilon-aware constructions
// (concat_eps, intersect_eps) the higher layers compose.
package automaton

import "sort"

// State is an index into the dense state universe [0, N). A value equal to
// an automaton's NumStates is used by callers (see package noodle) as the
// sentinel "no predecessor/successor segment" marker; this package never
// produces or interprets that value itself.
type State uint32

// Symbol is drawn from a per-automaton alphabet. Noodlification reserves one
// value, strictly greater than every symbol appearing in its inputs, as the
// epsilon marker for the duration of a single call.
type Symbol uint32

// Transition is the value type of a single (src, symbol, tgt) edge.
type Transition struct {
	Src    State
	Symbol Symbol
	Tgt    State
}

type key struct {
	src State
	sym Symbol
}

// NFA is an unlabeled-alphabet nondeterministic finite automaton
// (N, I, F, delta). States are the dense prefix [0, N); delta maps
// (state, symbol) to a set of target states.
type NFA struct {
	n     State
	init  []State
	final []State
	trans map[key][]State

	hasAlpha bool
	alphaMax Symbol
}

// New returns an NFA with n states, no initials, no finals, and no
// transitions.
func New(n State) *NFA {
	return &NFA{n: n, trans: make(map[key][]State)}
}

// NumStates returns N, one past the last valid state.
func (a *NFA) NumStates() State { return a.n }

// Initials returns the sorted, deduplicated set of initial states.
func (a *NFA) Initials() []State { return a.init }

// Finals returns the sorted, deduplicated set of final states.
func (a *NFA) Finals() []State { return a.final }

// IsInitial reports whether s is an initial state.
func (a *NFA) IsInitial(s State) bool { return contains(a.init, s) }

// IsFinal reports whether s is a final state.
func (a *NFA) IsFinal(s State) bool { return contains(a.final, s) }

func contains(set []State, s State) bool {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= s })
	return i < len(set) && set[i] == s
}

func insertSorted(set []State, s State) []State {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= s })
	if i < len(set) && set[i] == s {
		return set
	}
	set = append(set, 0)
	copy(set[i+1:], set[i:])
	set[i] = s
	return set
}

// AddInitial marks s as an initial state.
func (a *NFA) AddInitial(s State) { a.init = insertSorted(a.init, s) }

// AddFinal marks s as a final state.
func (a *NFA) AddFinal(s State) { a.final = insertSorted(a.final, s) }

// SetInitials replaces the initial-state set wholesale with a sorted,
// deduplicated copy of states; the argument slice is not modified.
func (a *NFA) SetInitials(states []State) { a.init = sortedCopy(states) }

// SetFinals replaces the final-state set wholesale.
func (a *NFA) SetFinals(states []State) { a.final = sortedCopy(states) }

func sortedCopy(states []State) []State {
	out := append([]State(nil), states...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	dedup := out[:0]
	for i, s := range out {
		if i == 0 || s != dedup[len(dedup)-1] {
			dedup = append(dedup, s)
		}
	}
	return dedup
}

// AddTransition adds a (src, symbol, tgt) edge. It records symbol into the
// automaton's alphabet-max tracking used by MaxSymbol.
func (a *NFA) AddTransition(src State, sym Symbol, tgt State) {
	k := key{src, sym}
	targets := a.trans[k]
	if !contains(targets, tgt) {
		a.trans[k] = insertSorted(targets, tgt)
	}
	if !a.hasAlpha || sym > a.alphaMax {
		a.alphaMax = sym
		a.hasAlpha = true
	}
}

// Trans returns the (possibly empty) set of states reachable from src on
// sym, sorted.
func (a *NFA) Trans(src State, sym Symbol) []State { return a.trans[key{src, sym}] }

// Transitions returns every transition of a in stable (src, symbol, tgt)
// order. This order is the one segmentation and the fixture tooling build
// their own deterministic traversals on top of.
func (a *NFA) Transitions() []Transition {
	keys := make([]key, 0, len(a.trans))
	for k := range a.trans {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].src != keys[j].src {
			return keys[i].src < keys[j].src
		}
		return keys[i].sym < keys[j].sym
	})
	out := make([]Transition, 0, len(a.trans))
	for _, k := range keys {
		for _, tgt := range a.trans[k] {
			out = append(out, Transition{Src: k.src, Symbol: k.sym, Tgt: tgt})
		}
	}
	return out
}

// MaxSymbol returns the largest symbol used in any transition, and whether
// any transition exists at all.
func (a *NFA) MaxSymbol() (Symbol, bool) { return a.alphaMax, a.hasAlpha }

// Clone returns a deep, independent copy of a.
func (a *NFA) Clone() *NFA {
	c := &NFA{
		n:        a.n,
		init:     append([]State(nil), a.init...),
		final:    append([]State(nil), a.final...),
		trans:    make(map[key][]State, len(a.trans)),
		hasAlpha: a.hasAlpha,
		alphaMax: a.alphaMax,
	}
	for k, v := range a.trans {
		c.trans[k] = append([]State(nil), v...)
	}
	return c
}

// addState appends one fresh state and returns its index.
func (a *NFA) addState() State {
	s := a.n
	a.n++
	return s
}

// UnifyInitial collapses every initial state into a single fresh one: the
// new state inherits the union of the transitions leaving every former
// initial, and becomes final itself if any former initial was final. It is
// a no-op if a already has at most one initial state.
func (a *NFA) UnifyInitial() {
	if len(a.init) <= 1 {
		return
	}
	ns := a.addState()
	wasFinal := false
	for _, s := range a.init {
		if a.IsFinal(s) {
			wasFinal = true
		}
		for _, tr := range a.transitionsFrom(s) {
			a.AddTransition(ns, tr.Symbol, tr.Tgt)
		}
	}
	a.init = []State{ns}
	if wasFinal {
		a.AddFinal(ns)
	}
}

// UnifyFinal collapses every final state into a single fresh one. It is
// expressed as reverse . UnifyInitial . reverse, the dual construction: a
// fresh sole final in the forward automaton is a fresh sole initial once
// edges and initial/final roles are flipped.
func (a *NFA) UnifyFinal() {
	if len(a.final) <= 1 {
		return
	}
	r := Reverse(a)
	r.UnifyInitial()
	*a = *Reverse(r)
}

func (a *NFA) transitionsFrom(src State) []Transition {
	var out []Transition
	for k, targets := range a.trans {
		if k.src != src {
			continue
		}
		for _, tgt := range targets {
			out = append(out, Transition{Src: src, Symbol: k.sym, Tgt: tgt})
		}
	}
	return out
}

// Handle is a read-only reference to an NFA: it exposes every accessor but
// no mutator method, so code holding a Handle cannot change the underlying
// automaton through a method call. It shares that automaton rather than
// copying it: changes made through the owning *NFA are visible through the
// Handle, and the slices returned by Initials, Finals and Trans are the
// automaton's own storage. The equation package uses this to make the
// "must not mutate the caller's automaton" contract of its handle-based
// entry point checkable by the compiler rather than by convention.
type Handle struct{ nfa *NFA }

// NewHandle wraps nfa in a read-only Handle.
func NewHandle(nfa *NFA) Handle { return Handle{nfa: nfa} }

func (h Handle) NumStates() State          { return h.nfa.NumStates() }
func (h Handle) Initials() []State         { return h.nfa.Initials() }
func (h Handle) Finals() []State           { return h.nfa.Finals() }
func (h Handle) IsInitial(s State) bool    { return h.nfa.IsInitial(s) }
func (h Handle) IsFinal(s State) bool      { return h.nfa.IsFinal(s) }
func (h Handle) Trans(s State, y Symbol) []State {
	return h.nfa.Trans(s, y)
}
func (h Handle) Transitions() []Transition         { return h.nfa.Transitions() }
func (h Handle) MaxSymbol() (Symbol, bool)         { return h.nfa.MaxSymbol() }

// Clone returns an owning, mutable copy of the handle's underlying NFA.
func (h Handle) Clone() *NFA { return h.nfa.Clone() }

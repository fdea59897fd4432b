// Package equation implements the equation driver: gluing a sequence of
// left-hand-side automata to a right-hand-side automaton with concat_eps
// and intersect_eps, then handing the trimmed (and optionally reduced)
// product to package noodle.
package equation

import (
	"noodlify/automaton"
	"noodlify/internal/tracelog"
	"noodlify/noodle"
)

// ReduceMode selects which of reduce's three applications spec.md §4.E
// step 7 describes. The zero value skips reduction entirely, and skips
// pre-unification in the handle-based entry point.
type ReduceMode string

const (
	ReduceNone          ReduceMode = ""
	ReduceForward       ReduceMode = "forward"
	ReduceBackward      ReduceMode = "backward"
	ReduceBidirectional ReduceMode = "bidirectional"
)

// Params configures one noodlify_for_equation call. MaxProduct, if
// positive, bounds the mixed-radix enumeration the way noodle.Noodlify's
// own maxProduct argument does; zero means unbounded.
type Params struct {
	Reduce     ReduceMode
	MaxProduct int
}

// NoodlifyForEquation runs the pipeline of spec.md §4.E against owning
// copies of left: each element is mutated in place by unification when
// params.Reduce is set, since the caller has already transferred
// ownership by passing a []*automaton.NFA rather than a []Handle.
func NoodlifyForEquation(left []*automaton.NFA, right *automaton.NFA, includeEmpty bool, params Params) (noodle.NoodleSequence, error) {
	if len(left) == 0 || automaton.IsLangEmpty(right) {
		return nil, nil
	}

	if params.Reduce != ReduceNone {
		for _, a := range left {
			a.UnifyInitial()
			a.UnifyFinal()
		}
	}

	return noodlifyGlued(left, right, includeEmpty, params)
}

// NoodlifyForEquationHandles runs the same pipeline against read-only
// handles: every handle is cloned into an owned automaton, and, per
// spec.md §9, unification of those clones is skipped entirely when reduce
// is absent. When reduce is set, the clones are unified, since a Handle
// exposes no mutator to unify in place. The caller's automata are never
// mutated.
func NoodlifyForEquationHandles(left []automaton.Handle, right *automaton.NFA, includeEmpty bool, params Params) (noodle.NoodleSequence, error) {
	if len(left) == 0 || automaton.IsLangEmpty(right) {
		return nil, nil
	}

	owned := make([]*automaton.NFA, len(left))
	if params.Reduce != ReduceNone {
		for i, h := range left {
			a := h.Clone()
			a.UnifyInitial()
			a.UnifyFinal()
			owned[i] = a
		}
	} else {
		for i, h := range left {
			owned[i] = h.Clone()
		}
	}

	return noodlifyGlued(owned, right, includeEmpty, params)
}

// noodlifyGlued implements steps 3-8 of spec.md §4.E, shared by both entry
// points once left has been normalized.
func noodlifyGlued(left []*automaton.NFA, right *automaton.NFA, includeEmpty bool, params Params) (noodle.NoodleSequence, error) {
	eps := pickEpsilon(left, right)

	l := left[0]
	for _, next := range left[1:] {
		l = automaton.ConcatEps(l, next, eps)
	}

	p := automaton.IntersectEps(l, right, eps)
	p = automaton.Trim(p)

	if automaton.IsLangEmpty(p) {
		return nil, nil
	}

	switch params.Reduce {
	case ReduceForward:
		p = automaton.Reduce(p)
	case ReduceBackward:
		p = automaton.Reverse(automaton.Reduce(automaton.Reverse(p)))
	case ReduceBidirectional:
		p = automaton.Reduce(p)
		p = automaton.Reverse(automaton.Reduce(automaton.Reverse(p)))
	}

	tracelog.Default().Debugf("equation: product trimmed to %d states, reduce=%q", p.NumStates(), params.Reduce)

	return noodle.Noodlify(p, eps, includeEmpty, params.MaxProduct)
}

// pickEpsilon picks eps strictly greater than every symbol used by left or
// right, per spec.md §4.E step 3.
func pickEpsilon(left []*automaton.NFA, right *automaton.NFA) automaton.Symbol {
	var max automaton.Symbol
	var has bool
	consider := func(a *automaton.NFA) {
		if m, ok := a.MaxSymbol(); ok {
			if !has || m > max {
				max = m
				has = true
			}
		}
	}
	for _, a := range left {
		consider(a)
	}
	consider(right)
	if !has {
		return 0
	}
	return max + 1
}

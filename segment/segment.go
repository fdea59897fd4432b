// Package segment implements the segmentation pass: partitioning a trimmed
// automaton along a distinguished epsilon symbol into a linear chain of
// epsilon-free segments, and labelling every epsilon-transition with its
// depth in that chain.
package segment

import (
	"container/list"
	"fmt"
	"sort"

	"noodlify/automaton"
)

// Result is the output of Segmentize: the ordered chain of untrimmed
// segments S0..SD and the depth-indexed lists of epsilon-transitions that
// glue adjacent segments together.
type Result struct {
	Segments []*automaton.NFA
	Depths   EpsilonDepthTransitions
}

// EpsilonDepthTransitions maps depth d in {0,...,D-1} to the ordered list
// of epsilon-transitions whose src lies in segment d and whose tgt lies in
// segment d+1. Order within a depth is the stable (src, tgt) ascending
// tie-break spec.md §4.C requires, since it flows directly into noodle
// enumeration order.
type EpsilonDepthTransitions [][]automaton.Transition

// Segmentize partitions a trimmed automaton t along eps into segments and
// depth-labelled epsilon-transitions. It returns automaton.ErrMalformedAutomaton
// if the epsilon-transitions cannot be partitioned into disjoint depths —
// for instance because of an epsilon-cycle, or because a transition's
// source is reachable from more than one depth's frontier.
func Segmentize(t *automaton.NFA, eps automaton.Symbol) (*Result, error) {
	epsEdges := epsilonTransitions(t, eps)

	_, depths, err := computeDepths(t, eps, epsEdges)
	if err != nil {
		return nil, err
	}
	numDepths := len(depths)

	// Seeds for segments 0..D: S0 seeds on t's initials, Sk (k>0) seeds on
	// the tgt endpoints of depth k-1's transitions.
	seeds := make([][]automaton.State, numDepths+1)
	seeds[0] = t.Initials()
	for k := 1; k <= numDepths; k++ {
		var s []automaton.State
		for _, tr := range depths[k-1] {
			s = append(s, tr.Tgt)
		}
		seeds[k] = sortedStates(s)
	}

	spans := make([]map[automaton.State]struct{}, numDepths+1)
	for k, seed := range seeds {
		spans[k] = nonEpsReachable(t, eps, seed)
	}
	if err := checkSpansDisjoint(spans); err != nil {
		return nil, err
	}

	segments := make([]*automaton.NFA, numDepths+1)
	for k := 0; k <= numDepths; k++ {
		var finals []automaton.State
		switch {
		case k < numDepths:
			finals = finalsOfDepth(depths, k, t)
		default:
			finals = intersectStates(spans[k], t.Finals())
		}
		segments[k] = buildSegment(t, eps, spans[k], seeds[k], finals)
	}

	return &Result{Segments: segments, Depths: depths}, nil
}

// checkSpansDisjoint enforces that the non-eps-reachable span of every
// segment is disjoint from every other segment's span. A state shared by
// two spans means some eps-chain folds back on itself — an eps-cycle
// reachable through intermediate non-eps moves, or a transition whose src
// is attributable to more than one segment — which spec.md §9 resolves as
// ErrMalformedAutomaton rather than silently picking one segment over the
// other.
func checkSpansDisjoint(spans []map[automaton.State]struct{}) error {
	seen := make(map[automaton.State]int)
	for k, span := range spans {
		for s := range span {
			if owner, ok := seen[s]; ok {
				return fmt.Errorf("%w: state %d belongs to both segment %d and segment %d", automaton.ErrMalformedAutomaton, s, owner, k)
			}
			seen[s] = k
		}
	}
	return nil
}

// epsilonTransitions returns every (src, eps, tgt) transition of t, in the
// deterministic (src, tgt) order t.Transitions already guarantees.
func epsilonTransitions(t *automaton.NFA, eps automaton.Symbol) []automaton.Transition {
	var out []automaton.Transition
	for _, tr := range t.Transitions() {
		if tr.Symbol == eps {
			out = append(out, tr)
		}
	}
	return out
}

// computeDepths runs the BFS-over-eps layering of spec.md §4.C step 2: depth
// 0 is every eps-transition whose src is reachable from the initials using
// only non-eps edges; depth d+1 is every eps-transition whose src is
// reachable, via non-eps edges, from some depth-d transition's tgt.
func computeDepths(t *automaton.NFA, eps automaton.Symbol, epsEdges []automaton.Transition) (map[automaton.Transition]int, EpsilonDepthTransitions, error) {
	depthOf := make(map[automaton.Transition]int)
	var depths EpsilonDepthTransitions

	frontier := t.Initials()
	assigned := 0
	for depth := 0; assigned < len(epsEdges); depth++ {
		reach := nonEpsReachable(t, eps, frontier)
		var layer []automaton.Transition
		for _, tr := range epsEdges {
			if _, already := depthOf[tr]; already {
				continue
			}
			if _, ok := reach[tr.Src]; ok {
				layer = append(layer, tr)
			}
		}
		if len(layer) == 0 {
			// No eps-transition is attributable to this depth even though
			// some remain unassigned: their src is not reachable from the
			// initials through the chain of frontiers, which can only
			// happen when t is not trimmed.
			return nil, nil, fmt.Errorf("%w: could not assign depth %d, %d epsilon-transitions unreachable from the current frontier", automaton.ErrMalformedAutomaton, depth, len(epsEdges)-assigned)
		}
		sort.Slice(layer, func(i, j int) bool {
			if layer[i].Src != layer[j].Src {
				return layer[i].Src < layer[j].Src
			}
			return layer[i].Tgt < layer[j].Tgt
		})
		for _, tr := range layer {
			depthOf[tr] = depth
		}
		depths = append(depths, layer)
		assigned += len(layer)

		frontier = nil
		for _, tr := range layer {
			frontier = append(frontier, tr.Tgt)
		}
	}

	// Consistency check that every eps-transition received exactly one
	// depth. A transition is assigned only once, at the first depth whose
	// frontier reaches it, so a source reachable from two depths (a diamond
	// across the eps chain) is not caught here; Segmentize reports it
	// through checkSpansDisjoint.
	if len(depthOf) != len(epsEdges) {
		return nil, nil, fmt.Errorf("%w: %d epsilon-transitions, %d assigned a depth", automaton.ErrMalformedAutomaton, len(epsEdges), len(depthOf))
	}

	return depthOf, depths, nil
}

func finalsOfDepth(depths EpsilonDepthTransitions, depth int, t *automaton.NFA) []automaton.State {
	if depth >= len(depths) {
		return intersectStates(nil, t.Finals())
	}
	var out []automaton.State
	for _, tr := range depths[depth] {
		out = append(out, tr.Src)
	}
	return sortedStates(out)
}

// nonEpsReachable returns the set of states reachable from seeds following
// only non-eps transitions — the BFS-worklist idiom of
// regexlib/dfa.go's epsilonClosure, retargeted from eps-edges to every
// symbol except eps.
func nonEpsReachable(t *automaton.NFA, eps automaton.Symbol, seeds []automaton.State) map[automaton.State]struct{} {
	seen := make(map[automaton.State]struct{}, len(seeds))
	queue := list.New()
	for _, s := range seeds {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			queue.PushBack(s)
		}
	}
	for queue.Len() > 0 {
		s := queue.Remove(queue.Front()).(automaton.State)
		for _, tr := range t.Transitions() {
			if tr.Src != s || tr.Symbol == eps {
				continue
			}
			if _, ok := seen[tr.Tgt]; !ok {
				seen[tr.Tgt] = struct{}{}
				queue.PushBack(tr.Tgt)
			}
		}
	}
	return seen
}

// buildSegment extracts the sub-automaton of t induced by states, with the
// given initials/finals, keeping every non-eps transition among states.
// The segment keeps t's original state numbering (it is not trimmed or
// renumbered — that happens later, per sub-automaton, in package noodle).
func buildSegment(t *automaton.NFA, eps automaton.Symbol, states map[automaton.State]struct{}, initials, finals []automaton.State) *automaton.NFA {
	seg := automaton.New(t.NumStates())
	seg.SetInitials(initials)
	seg.SetFinals(finals)
	for _, tr := range t.Transitions() {
		if tr.Symbol == eps {
			continue
		}
		if _, ok := states[tr.Src]; !ok {
			continue
		}
		if _, ok := states[tr.Tgt]; !ok {
			continue
		}
		seg.AddTransition(tr.Src, tr.Symbol, tr.Tgt)
	}
	return seg
}

func intersectStates(a map[automaton.State]struct{}, b []automaton.State) []automaton.State {
	if a == nil {
		return append([]automaton.State(nil), b...)
	}
	var out []automaton.State
	for _, s := range b {
		if _, ok := a[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func sortedStates(states []automaton.State) []automaton.State {
	out := append([]automaton.State(nil), states...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	dedup := out[:0]
	for i, s := range out {
		if i == 0 || s != dedup[len(dedup)-1] {
			dedup = append(dedup, s)
		}
	}
	return dedup
}

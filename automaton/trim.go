package automaton

import "container/list"

// reachableFrom runs a BFS over forward transitions starting at seeds,
// using a container/list work queue the way regexlib's epsilonClosure
// drains a stack of discovered nfaStates; here every symbol is followed,
// not only epsilon.
func reachableFrom(a *NFA, seeds []State) map[State]struct{} {
	seen := make(map[State]struct{}, len(seeds))
	queue := list.New()
	for _, s := range seeds {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			queue.PushBack(s)
		}
	}
	for queue.Len() > 0 {
		s := queue.Remove(queue.Front()).(State)
		for k, targets := range a.trans {
			if k.src != s {
				continue
			}
			for _, t := range targets {
				if _, ok := seen[t]; !ok {
					seen[t] = struct{}{}
					queue.PushBack(t)
				}
			}
		}
	}
	return seen
}

// IsLangEmpty reports whether no final state is reachable from any initial
// state.
func IsLangEmpty(a *NFA) bool {
	reach := reachableFrom(a, a.init)
	for _, f := range a.final {
		if _, ok := reach[f]; ok {
			return false
		}
	}
	return true
}

// Trim restricts a to states both reachable from an initial state and
// co-reachable to a final state, renumbering survivors densely in their
// original relative order. The result has zero states iff a's language is
// empty.
func Trim(a *NFA) *NFA {
	fwd := reachableFrom(a, a.init)
	rev := Reverse(a)
	back := reachableFrom(rev, rev.init) // rev's initials are a's finals

	var keep []State
	for s := State(0); s < a.n; s++ {
		_, okFwd := fwd[s]
		_, okBack := back[s]
		if okFwd && okBack {
			keep = append(keep, s)
		}
	}

	renumber := make(map[State]State, len(keep))
	for i, s := range keep {
		renumber[s] = State(i)
	}

	out := New(State(len(keep)))
	for _, s := range a.init {
		if ns, ok := renumber[s]; ok {
			out.AddInitial(ns)
		}
	}
	for _, s := range a.final {
		if ns, ok := renumber[s]; ok {
			out.AddFinal(ns)
		}
	}
	for _, tr := range a.Transitions() {
		nsrc, okSrc := renumber[tr.Src]
		ntgt, okTgt := renumber[tr.Tgt]
		if okSrc && okTgt {
			out.AddTransition(nsrc, tr.Symbol, ntgt)
		}
	}
	return out
}

package automaton

import "container/list"

// ConcatEps builds C = A . {eps} . B: the disjoint union of A and B (B's
// states renumbered after A's), every transition of both preserved, and a
// fresh eps-transition from every final of A to every initial of B.
// Grounded on regexlib/nfa.go's buildNFA case nConcat (patchOuts(f1.outs,
// f2.start)), generalized from "patch to the single next state" to
// "eps-edge to every initial of B".
func ConcatEps(a, b *NFA, eps Symbol) *NFA {
	offset := a.n
	out := New(a.n + b.n)

	out.SetInitials(a.init)
	finals := make([]State, len(b.final))
	for i, s := range b.final {
		finals[i] = s + offset
	}
	out.SetFinals(finals)

	for _, tr := range a.Transitions() {
		out.AddTransition(tr.Src, tr.Symbol, tr.Tgt)
	}
	for _, tr := range b.Transitions() {
		out.AddTransition(tr.Src+offset, tr.Symbol, tr.Tgt+offset)
	}
	for _, f := range a.final {
		for _, i := range b.init {
			out.AddTransition(f, eps, i+offset)
		}
	}
	return out
}

// IntersectEps computes the product of P and Q over the alphabet extended
// with eps, treating eps asymmetrically: an eps-edge of P lifts into the
// product without requiring Q to move. States are discovered lazily by a
// BFS from the initial pairs, grounded on regexlib/setops.go's Product
// (worklist over state pairs) generalized from a DFA's single target per
// symbol to an NFA's target sets and from a fully symmetric alphabet to
// one asymmetric eps symbol.
func IntersectEps(p, q *NFA, eps Symbol) *NFA {
	type pair struct{ p, q State }

	id := map[pair]State{}
	var pairs []pair
	resolve := func(pr pair) (State, bool) {
		if existing, ok := id[pr]; ok {
			return existing, false
		}
		newID := State(len(pairs))
		id[pr] = newID
		pairs = append(pairs, pr)
		return newID, true
	}

	type productEdge struct {
		src State
		sym Symbol
		tgt State
	}
	var edges []productEdge

	symbols := unionAlphabet(p, q, eps)

	queue := list.New()
	var initPairs []pair
	for _, ip := range p.Initials() {
		for _, iq := range q.Initials() {
			pr := pair{ip, iq}
			if _, isNew := resolve(pr); isNew {
				queue.PushBack(pr)
			}
			initPairs = append(initPairs, pr)
		}
	}

	for queue.Len() > 0 {
		cur := queue.Remove(queue.Front()).(pair)
		srcID := id[cur]

		for _, pp := range p.Trans(cur.p, eps) {
			tgt := pair{pp, cur.q}
			tgtID, isNew := resolve(tgt)
			if isNew {
				queue.PushBack(tgt)
			}
			edges = append(edges, productEdge{srcID, eps, tgtID})
		}

		for _, sym := range symbols {
			if sym == eps {
				continue
			}
			pTargets := p.Trans(cur.p, sym)
			if len(pTargets) == 0 {
				continue
			}
			qTargets := q.Trans(cur.q, sym)
			if len(qTargets) == 0 {
				continue
			}
			for _, pp := range pTargets {
				for _, qq := range qTargets {
					tgt := pair{pp, qq}
					tgtID, isNew := resolve(tgt)
					if isNew {
						queue.PushBack(tgt)
					}
					edges = append(edges, productEdge{srcID, sym, tgtID})
				}
			}
		}
	}

	out := New(State(len(pairs)))
	for _, pr := range initPairs {
		out.AddInitial(id[pr])
	}
	for _, pr := range pairs {
		if p.IsFinal(pr.p) && q.IsFinal(pr.q) {
			out.AddFinal(id[pr])
		}
	}
	for _, e := range edges {
		out.AddTransition(e.src, e.sym, e.tgt)
	}
	return out
}

func unionAlphabet(p, q *NFA, eps Symbol) []Symbol {
	seen := map[Symbol]struct{}{eps: {}}
	for _, s := range alphabetOf(p) {
		seen[s] = struct{}{}
	}
	for _, s := range alphabetOf(q) {
		seen[s] = struct{}{}
	}
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

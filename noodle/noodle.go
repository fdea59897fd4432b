// Package noodle implements the noodlifier: enumerating every noodle of a
// segmented automaton by picking one epsilon-transition per depth and
// gluing the per-segment trimmed sub-automata that the chosen transitions
// bridge.
package noodle

import (
	"fmt"

	"noodlify/automaton"
	"noodlify/internal/tracelog"
	"noodlify/segment"
)

// Noodle is an ordered tuple of shared, trimmed sub-automata. Two noodles
// that reference the same (entry, exit) sub-automaton share the exact same
// *automaton.NFA value — Go's garbage collector, not a manual refcount,
// keeps it alive for as long as any noodle in the sequence points to it.
type Noodle []*automaton.NFA

// NoodleSequence is the ordered collection of every noodle emitted by one
// Noodlify call.
type NoodleSequence []Noodle

// SegmentKey identifies a trimmed sub-automaton by the (entry, exit) pair
// of states it was restricted to. Sentinel, returned by sentinelFor, marks
// "no predecessor/successor segment" at the two ends of a noodle.
type SegmentKey struct {
	Entry automaton.State
	Exit  automaton.State
}

func sentinelFor(t *automaton.NFA) automaton.State { return t.NumStates() }

// Noodlify enumerates every noodle of t, segmented along eps. An
// epsilon-free t takes the fast path and is trimmed here; a t with
// epsilon-transitions must already be trimmed, else ErrMalformedAutomaton
// is returned. includeEmpty controls whether a sub-automaton that trims to
// zero states is still recorded (and, on the fast path, whether a
// trimmed-empty single segment still produces one noodle).
func Noodlify(t *automaton.NFA, eps automaton.Symbol, includeEmpty bool, maxProduct int) (NoodleSequence, error) {
	res, err := segment.Segmentize(t, eps)
	if err != nil {
		return nil, err
	}

	if len(res.Depths) == 0 {
		trimmed := automaton.Trim(res.Segments[0])
		if trimmed.NumStates() == 0 && !includeEmpty {
			return nil, nil
		}
		return NoodleSequence{Noodle{trimmed}}, nil
	}

	if trimmed := automaton.Trim(t); trimmed.NumStates() != t.NumStates() {
		return nil, fmt.Errorf("%w: noodlify requires an already-trimmed automaton", automaton.ErrMalformedAutomaton)
	}

	numDepths := len(res.Depths)
	radixSize := make([]int, numDepths)
	m := 1
	for i, layer := range res.Depths {
		radixSize[i] = len(layer)
		m *= len(layer)
	}
	if maxProduct > 0 && m > maxProduct {
		return nil, fmt.Errorf("%w: mixed-radix product %d exceeds bound %d", automaton.ErrEnumerationTooLarge, m, maxProduct)
	}

	sentinel := sentinelFor(t)
	memo := buildMemo(res, sentinel, includeEmpty)

	tracelog.Default().Debugf("noodlify: %d segments, %d depths, product M=%d", len(res.Segments), numDepths, m)

	seq := make(NoodleSequence, 0, m)
	discarded := 0
	for idx := 0; idx < m; idx++ {
		choice := decodeMixedRadix(idx, radixSize)
		chosen := make([]automaton.Transition, numDepths)
		for k, c := range choice {
			chosen[k] = res.Depths[k][c]
		}

		n, ok := composeNoodle(memo, sentinel, chosen)
		if !ok {
			discarded++
			continue
		}
		seq = append(seq, n)
	}
	if discarded > 0 {
		tracelog.Default().Debugf("noodlify: discarded %d/%d candidate noodles (non-gluable)", discarded, m)
	}

	return seq, nil
}

// decodeMixedRadix decodes idx into the per-depth digit tuple described in
// spec.md §4.D step 4: c_k = (idx / prod_{j<k} radixSize[j]) mod radixSize[k].
func decodeMixedRadix(idx int, radixSize []int) []int {
	out := make([]int, len(radixSize))
	for k, size := range radixSize {
		out[k] = idx % size
		idx /= size
	}
	return out
}

// composeNoodle looks up the chain of sub-automata bridged by chosen, the
// one epsilon-transition picked at each depth. It reports ok=false the
// moment any lookup misses, per the non-gluable discard rule.
func composeNoodle(memo map[SegmentKey]*automaton.NFA, sentinel automaton.State, chosen []automaton.Transition) (Noodle, bool) {
	n := Noodle{}

	first, ok := memo[SegmentKey{sentinel, chosen[0].Src}]
	if !ok {
		return nil, false
	}
	n = append(n, first)

	for i := 0; i+1 < len(chosen); i++ {
		mid, ok := memo[SegmentKey{chosen[i].Tgt, chosen[i+1].Src}]
		if !ok {
			return nil, false
		}
		n = append(n, mid)
	}

	last, ok := memo[SegmentKey{chosen[len(chosen)-1].Tgt, sentinel}]
	if !ok {
		return nil, false
	}
	n = append(n, last)

	return n, true
}

// buildMemo constructs, for every (entry, exit) pair spec.md §4.D step 3
// names, the shared trimmed sub-automaton — each built and trimmed exactly
// once no matter how many noodles end up referencing it.
func buildMemo(res *segment.Result, sentinel automaton.State, includeEmpty bool) map[SegmentKey]*automaton.NFA {
	memo := make(map[SegmentKey]*automaton.NFA)
	last := len(res.Segments) - 1

	for k, seg := range res.Segments {
		switch {
		case k == 0:
			for _, f := range seg.Finals() {
				sub := restrictFinals(seg, f)
				trimmed := automaton.Trim(sub)
				if trimmed.NumStates() > 0 || includeEmpty {
					memo[SegmentKey{sentinel, f}] = trimmed
				}
			}
		case k == last:
			for _, i := range seg.Initials() {
				sub := restrictInitials(seg, i)
				trimmed := automaton.Trim(sub)
				if trimmed.NumStates() > 0 || includeEmpty {
					memo[SegmentKey{i, sentinel}] = trimmed
				}
			}
		default:
			for _, i := range seg.Initials() {
				for _, f := range seg.Finals() {
					sub := restrictInitials(restrictFinals(seg, f), i)
					trimmed := automaton.Trim(sub)
					if trimmed.NumStates() > 0 || includeEmpty {
						memo[SegmentKey{i, f}] = trimmed
					}
				}
			}
		}
	}
	return memo
}

func restrictFinals(seg *automaton.NFA, keep automaton.State) *automaton.NFA {
	c := seg.Clone()
	c.SetFinals([]automaton.State{keep})
	return c
}

func restrictInitials(seg *automaton.NFA, keep automaton.State) *automaton.NFA {
	c := seg.Clone()
	c.SetInitials([]automaton.State{keep})
	return c
}

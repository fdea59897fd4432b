// Package fixture is a test-only builder for small NFAs described in a
// minimal textual grammar, grounded on interpreter/parser.go's
// struct-tag participle grammar. It is deliberately not the ASCII
// automaton serialization format SPEC_FULL.md excludes as a production
// surface: the only consumer is _test.go files that want a readable
// fixture instead of a page of AddTransition calls.
package fixture

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"

	"noodlify/automaton"
)

// Spec is the top-level grammar production:
//
//	states 5
//	init 0
//	final 3 4
//	trans 0 1 1
//	trans 1 eps 2
type Spec struct {
	States int      `parser:"'states' @Int"`
	Init   []int    `parser:"'init' @Int+"`
	Final  []int    `parser:"'final' @Int+"`
	Trans  []*Trans `parser:"@@*"`
}

// Trans is one transition production; Symbol is either an integer symbol
// or the literal "eps", resolved against the caller's chosen epsilon
// value by Build.
type Trans struct {
	Src    int    `parser:"'trans' @Int"`
	Symbol string `parser:"@(Ident|Int)"`
	Tgt    int    `parser:"@Int"`
}

var parser = participle.MustBuild[Spec]()

// Build parses src and constructs the NFA it describes, resolving the
// "eps" symbol literal to eps.
func Build(src string, eps automaton.Symbol) (*automaton.NFA, error) {
	spec, err := parser.ParseString("fixture", src)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	a := automaton.New(automaton.State(spec.States))
	a.SetInitials(toStates(spec.Init))
	a.SetFinals(toStates(spec.Final))

	for _, tr := range spec.Trans {
		sym, err := resolveSymbol(tr.Symbol, eps)
		if err != nil {
			return nil, err
		}
		a.AddTransition(automaton.State(tr.Src), sym, automaton.State(tr.Tgt))
	}
	return a, nil
}

func resolveSymbol(s string, eps automaton.Symbol) (automaton.Symbol, error) {
	if s == "eps" {
		return eps, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("fixture: symbol %q is neither \"eps\" nor an integer", s)
	}
	return automaton.Symbol(n), nil
}

func toStates(ints []int) []automaton.State {
	out := make([]automaton.State, len(ints))
	for i, n := range ints {
		out[i] = automaton.State(n)
	}
	return out
}

package automaton

// Reverse returns an automaton with every edge reversed and initials/finals
// swapped. Grounded on regexlib/setops.go's ReverseDFA, generalized from a
// single accepting state to NFA-shaped initial/final sets.
func Reverse(a *NFA) *NFA {
	out := New(a.n)
	out.SetInitials(a.final)
	out.SetFinals(a.init)
	for _, tr := range a.Transitions() {
		out.AddTransition(tr.Tgt, tr.Symbol, tr.Src)
	}
	return out
}

package automaton

import "errors"

// ErrMalformedAutomaton is returned when a structural precondition the
// core requires to operate (disjoint epsilon-depths, a trimmed input where
// one is required) does not hold.
var ErrMalformedAutomaton = errors.New("automaton: malformed input")

// ErrEnumerationTooLarge is returned when a combinatorial enumeration
// exceeds a caller-supplied bound.
var ErrEnumerationTooLarge = errors.New("automaton: enumeration too large")

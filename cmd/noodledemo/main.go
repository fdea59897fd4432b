// Command noodledemo wires together package automaton and package
// equation to print the noodle sequence of a small, fixed word equation.
// It exists to exercise the library end to end; per spec.md §6 the core
// itself has no CLI surface, so this demonstrator builds its automata in
// code rather than reading any textual automaton format.
package main

import (
	"fmt"
	"log"

	"noodlify/automaton"
	"noodlify/equation"
)

func main() {
	// left: {a} . {b}, glued through a right side that accepts "ab".
	left0 := automaton.New(2)
	left0.SetInitials([]automaton.State{0})
	left0.SetFinals([]automaton.State{1})
	left0.AddTransition(0, 1, 1)

	left1 := automaton.New(2)
	left1.SetInitials([]automaton.State{0})
	left1.SetFinals([]automaton.State{1})
	left1.AddTransition(0, 2, 1)

	right := automaton.New(3)
	right.SetInitials([]automaton.State{0})
	right.SetFinals([]automaton.State{2})
	right.AddTransition(0, 1, 1)
	right.AddTransition(1, 2, 2)

	seq, err := equation.NoodlifyForEquation(
		[]*automaton.NFA{left0, left1},
		right,
		false,
		equation.Params{Reduce: equation.ReduceBidirectional},
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d noodles\n", len(seq))
	for i, n := range seq {
		fmt.Printf("noodle %d: %d segments, state counts", i, len(n))
		for _, sub := range n {
			fmt.Printf(" %d", sub.NumStates())
		}
		fmt.Println()
	}
}

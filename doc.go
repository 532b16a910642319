/*
Package automata simulates deterministic finite automata.

An automaton is loaded from a description, an input word is replayed against it one
symbol at a time, and once the replay stops (the word is exhausted or a symbol is
rejected) a breadth-first search reports the shortest path from the state reached to the
nearest final state.

# Concept

The automaton itself is immutable. Replay happens on a domain.Machine that owns the only
mutable piece, the current-state cursor, and the search never touches that cursor. This
keeps simulation reproducible and lets a single loaded automaton serve many concurrent
runs (CLI, HTTP API or MCP tools).

# Description format

The text format is line-oriented and keyed:

	InputSymbols= a, b
	StatesOfAutomata= 0, 1, 2
	InitialState= 0
	FinalStates= 2
	TransitionFunction=
	0 a 1
	1 b 2

YAML and JSON documents with the keys alphabet, states, initial, finals and transitions
are accepted as well.

# Usage

	eng, err := automata.New("./automata")
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Simulate(ctx, "ab", "abba")
	if err != nil {
		log.Fatal(err)
	}
	if report.Path != nil {
		fmt.Println("nearest final state:", report.Path.End())
	}
*/
package automata

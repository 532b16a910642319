/*
Package dsl provides a Go DSL for programmatically constructing automata.

It allows developers to define a DFA with a fluent builder instead of a text, YAML or
JSON description. This is particularly useful for generated automata, unit tests, and
IDE autocompletion/type-checking.

Example usage:

	b := dsl.New()

	b.State(0).Initial().
		On('a', 1).
		On('c', 3)

	b.State(1).On('b', 2)
	b.State(2).Final()

	// The alphabet and the state set are inferred from the calls above.
	a := b.Build()

	// Or register it under an ID for automata.New(..., automata.WithLoader(loader)).
	loader, err := b.Loader("ab")
*/
package dsl

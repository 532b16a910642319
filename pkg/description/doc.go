/*
Package description reads and writes automaton descriptions.

Two encodings are supported. The text format is line oriented:

	InputSymbols= a b
	StatesOfAutomata= 0 1 2
	InitialState= 0
	FinalStates= 2
	TransitionFunction=
	0 a 1
	1 b 2

Each key is followed, on the same or on following lines, by whitespace separated tokens.
TransitionFunction= introduces "from symbol to" triples. Lines starting with '#' are
comments. The input is first split into a table of sections (Lex) and only then turned
into an automaton (Decode).

The structured format is a YAML or JSON document with the keys alphabet, states,
initial, finals and transitions. See Document.
*/
package description

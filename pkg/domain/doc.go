/*
Package domain contains the core model of a deterministic finite automaton.

It defines the identifiers (State, Symbol), the immutable Automaton with its
deterministic step function, the Machine replay cursor, and the Path produced by a
search. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Automaton: alphabet, declared states, initial state, final states and the partial
    transition relation. Built once and never mutated.
  - Machine: an Automaton plus the current-state cursor advanced by accepted symbols.
  - Transition: the (from, symbol, to) triple emitted for every accepted step.
  - Path: the start state plus the (state, symbol) steps leading to a final state.
*/
package domain

/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the core logic from the places automaton descriptions come
from, allowing the engine to work with the filesystem, a Loam repository, Redis or an
in-memory table.

# Key Interfaces

  - AutomatonLoader: resolves an automaton by ID and lists the available IDs.
  - Publisher: stores descriptions in backends that accept writes.
*/
package ports

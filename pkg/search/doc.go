// Package search finds the nearest final state of an automaton with a breadth-first traversal.
package search

package domain

import (
	"fmt"
	"slices"
)

// Definition is the raw material an Automaton is built from.
// Loaders produce a Definition; NewAutomaton freezes it.
type Definition struct {
	Alphabet    []Symbol
	States      []State
	Initial     State
	Finals      []State
	Transitions []Transition
}

// Automaton is an immutable deterministic finite automaton.
// The transition relation is partial: a missing (state, symbol) entry means no move.
type Automaton struct {
	alphabet map[Symbol]struct{}
	symbols  []Symbol
	states   []State
	declared map[State]struct{}
	initial  State
	finals   map[State]struct{}
	delta    map[State]map[Symbol]State

	// redefinitions records transitions that overwrote an earlier entry for the same pair.
	redefinitions []string
}

// NewAutomaton builds an Automaton from a Definition.
// Later transitions for the same (state, symbol) pair replace earlier ones.
func NewAutomaton(def Definition) *Automaton {
	a := &Automaton{
		alphabet: make(map[Symbol]struct{}, len(def.Alphabet)),
		declared: make(map[State]struct{}, len(def.States)),
		initial:  def.Initial,
		finals:   make(map[State]struct{}, len(def.Finals)),
		delta:    make(map[State]map[Symbol]State),
	}

	for _, sym := range def.Alphabet {
		if _, ok := a.alphabet[sym]; ok {
			continue
		}
		a.alphabet[sym] = struct{}{}
		a.symbols = append(a.symbols, sym)
	}
	slices.Sort(a.symbols)

	for _, s := range def.States {
		if _, ok := a.declared[s]; ok {
			continue
		}
		a.declared[s] = struct{}{}
		a.states = append(a.states, s)
	}

	for _, s := range def.Finals {
		a.finals[s] = struct{}{}
	}

	for _, t := range def.Transitions {
		row, ok := a.delta[t.From]
		if !ok {
			row = make(map[Symbol]State)
			a.delta[t.From] = row
		}
		if prev, exists := row[t.Symbol]; exists && prev != t.To {
			a.redefinitions = append(a.redefinitions,
				fmt.Sprintf("transition (%d, %c) redefined from %d to %d", t.From, rune(t.Symbol), prev, t.To))
		}
		row[t.Symbol] = t.To
	}

	return a
}

// Initial returns the initial state.
func (a *Automaton) Initial() State {
	return a.initial
}

// States returns the declared states in declaration order.
func (a *Automaton) States() []State {
	return slices.Clone(a.states)
}

// Alphabet returns the declared symbols in ascending order.
func (a *Automaton) Alphabet() []Symbol {
	return slices.Clone(a.symbols)
}

// Finals returns the final states in ascending order.
func (a *Automaton) Finals() []State {
	out := make([]State, 0, len(a.finals))
	for s := range a.finals {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IsFinal reports whether s belongs to the final-state set.
func (a *Automaton) IsFinal(s State) bool {
	_, ok := a.finals[s]
	return ok
}

// Accepts reports whether word, read from the state from, is consumed without
// rejection and ends on a final state. It does not touch any Machine.
func (a *Automaton) Accepts(from State, word string) bool {
	cur := from
	for _, ch := range word {
		next, err := a.Step(cur, Symbol(ch))
		if err != nil {
			return false
		}
		cur = next
	}
	return a.IsFinal(cur)
}

// HasSymbol reports whether sym belongs to the alphabet.
func (a *Automaton) HasSymbol(sym Symbol) bool {
	_, ok := a.alphabet[sym]
	return ok
}

// HasState reports whether s is a declared state.
func (a *Automaton) HasState(s State) bool {
	_, ok := a.declared[s]
	return ok
}

// Step returns the destination of the (current, sym) transition.
// Alphabet membership is checked before the relation is consulted.
func (a *Automaton) Step(current State, sym Symbol) (State, error) {
	if !a.HasSymbol(sym) {
		return current, &StepError{Kind: UnknownSymbol, State: current, Symbol: sym}
	}
	next, ok := a.delta[current][sym]
	if !ok {
		return current, &StepError{Kind: UndefinedTransition, State: current, Symbol: sym}
	}
	return next, nil
}

// Edges returns the outgoing transitions of s ordered by ascending symbol.
// The order is the deterministic enumeration order used by path searches.
func (a *Automaton) Edges(s State) []Transition {
	row := a.delta[s]
	if len(row) == 0 {
		return nil
	}
	edges := make([]Transition, 0, len(row))
	for sym, to := range row {
		edges = append(edges, Transition{From: s, Symbol: sym, To: to})
	}
	slices.SortFunc(edges, func(x, y Transition) int {
		return int(x.Symbol) - int(y.Symbol)
	})
	return edges
}

// Transitions returns every transition ordered by source state, then symbol.
func (a *Automaton) Transitions() []Transition {
	sources := make([]State, 0, len(a.delta))
	for s := range a.delta {
		sources = append(sources, s)
	}
	slices.Sort(sources)

	var out []Transition
	for _, s := range sources {
		out = append(out, a.Edges(s)...)
	}
	return out
}

// Definition returns a copy of the automaton's contents.
func (a *Automaton) Definition() Definition {
	return Definition{
		Alphabet:    a.Alphabet(),
		States:      a.States(),
		Initial:     a.initial,
		Finals:      a.Finals(),
		Transitions: a.Transitions(),
	}
}

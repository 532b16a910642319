package domain

import "fmt"

// Validate checks that every identifier used by the automaton is declared.
// It does not check totality: a partial transition relation is valid.
func (a *Automaton) Validate() error {
	var problems []string

	if !a.HasState(a.initial) {
		problems = append(problems, fmt.Sprintf("initial state %d is not declared", a.initial))
	}
	for _, f := range a.Finals() {
		if !a.HasState(f) {
			problems = append(problems, fmt.Sprintf("final state %d is not declared", f))
		}
	}
	for _, t := range a.Transitions() {
		if !a.HasState(t.From) {
			problems = append(problems, fmt.Sprintf("transition %q: source state %d is not declared", t, t.From))
		}
		if !a.HasState(t.To) {
			problems = append(problems, fmt.Sprintf("transition %q: target state %d is not declared", t, t.To))
		}
		if !a.HasSymbol(t.Symbol) {
			problems = append(problems, fmt.Sprintf("transition %q: symbol '%c' is not in the alphabet", t, rune(t.Symbol)))
		}
	}
	problems = append(problems, a.redefinitions...)

	if len(problems) > 0 {
		return &ValidationErrors{Problems: problems}
	}
	return nil
}

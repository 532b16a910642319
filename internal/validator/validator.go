package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/search"
)

// Result lists what is wrong (Errors) and what is suspicious (Warnings) about an automaton.
// Missing transitions are never reported: the transition relation is allowed to be partial.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether no errors were found. Warnings do not count.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err folds the errors into one error wrapping domain.ErrInvalidAutomaton, or nil.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &domain.ValidationErrors{Problems: r.Errors}
}

// String renders the result for terminals.
func (r Result) String() string {
	var sb strings.Builder
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "error: %s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", w)
	}
	return sb.String()
}

// Inspect checks membership consistency and walks the graph from the initial state.
func Inspect(a *domain.Automaton) Result {
	var res Result

	if err := a.Validate(); err != nil {
		var verrs *domain.ValidationErrors
		if errors.As(err, &verrs) {
			res.Errors = append(res.Errors, verrs.Problems...)
		} else {
			res.Errors = append(res.Errors, err.Error())
		}
	}

	if len(a.Finals()) == 0 {
		res.Warnings = append(res.Warnings, "no final states declared")
	}

	reachable := make(map[domain.State]bool)
	for _, s := range search.Reachable(a, a.Initial()) {
		reachable[s] = true
	}
	for _, s := range a.States() {
		if !reachable[s] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("state %d is unreachable from the initial state %d", s, a.Initial()))
		}
	}

	if _, err := search.FindPathToAnyFinalState(a, a.Initial()); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no final state is reachable from the initial state %d", a.Initial()))
	}

	// Dead ends: reachable, non-final, no way out.
	for _, s := range a.States() {
		if reachable[s] && !a.IsFinal(s) && len(a.Edges(s)) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("state %d is a dead end", s))
		}
	}

	return res
}

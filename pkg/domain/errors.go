package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLoad is returned when an automaton description cannot be found or read.
var ErrLoad = errors.New("automaton load failed")

// ErrUnknownSymbol is returned when an input symbol is not part of the alphabet.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ErrUndefinedTransition is returned when no transition exists for the (state, symbol) pair.
var ErrUndefinedTransition = errors.New("undefined transition")

// ErrPathNotFound is returned when no final state is reachable from the start state.
var ErrPathNotFound = errors.New("path to final state not found")

// ErrInvalidAutomaton is returned by Validate when the description is inconsistent.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// RejectionKind classifies why a step was rejected.
type RejectionKind string

const (
	UnknownSymbol       RejectionKind = "unknown_symbol"
	UndefinedTransition RejectionKind = "undefined_transition"
)

// StepError describes a rejected step. The current state is never changed by a rejection.
type StepError struct {
	Kind   RejectionKind
	State  State
	Symbol Symbol
}

func (e *StepError) Error() string {
	switch e.Kind {
	case UnknownSymbol:
		return fmt.Sprintf("There are no '%c' symbols in the input symbol set.", rune(e.Symbol))
	default:
		return fmt.Sprintf("The transition for the current state '%d' with input symbol '%c' is not defined.", e.State, rune(e.Symbol))
	}
}

// Unwrap maps the kind to its sentinel so errors.Is works.
func (e *StepError) Unwrap() error {
	if e.Kind == UnknownSymbol {
		return ErrUnknownSymbol
	}
	return ErrUndefinedTransition
}

// NotFoundError reports the state from which no final state could be reached.
type NotFoundError struct {
	From State
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("The path from state %d to the final state was not found.", e.From)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPathNotFound
}

// ValidationErrors aggregates every inconsistency found by Validate.
type ValidationErrors struct {
	Problems []string
}

func (e *ValidationErrors) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", ErrInvalidAutomaton, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems:\n- %s", ErrInvalidAutomaton, len(e.Problems), strings.Join(e.Problems, "\n- "))
}

func (e *ValidationErrors) Unwrap() error {
	return ErrInvalidAutomaton
}

// ErrAutomatonNotFound is returned by loaders for unknown IDs. It wraps ErrLoad.
var ErrAutomatonNotFound = fmt.Errorf("%w: automaton not found", ErrLoad)

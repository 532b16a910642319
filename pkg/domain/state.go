package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// State identifies a state of the automaton.
type State int

func (s State) String() string {
	return strconv.Itoa(int(s))
}

// ParseState converts a decimal token into a State.
// Multi-digit identifiers are supported.
func ParseState(token string) (State, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("invalid state %q: %w", token, err)
	}
	return State(n), nil
}

// Symbol is a single character of the input alphabet.
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// ParseSymbol converts a single-character token into a Symbol.
func ParseSymbol(token string) (Symbol, error) {
	token = strings.TrimSpace(token)
	if utf8.RuneCountInString(token) != 1 {
		return 0, fmt.Errorf("invalid symbol %q: expected a single character", token)
	}
	r, _ := utf8.DecodeRuneInString(token)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("invalid symbol %q: not valid UTF-8", token)
	}
	return Symbol(r), nil
}

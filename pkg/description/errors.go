package description

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when a description cannot be parsed.
var ErrMalformed = errors.New("malformed automaton description")

// ParseError locates a problem in a text description.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("%s: %s", ErrMalformed, e.Msg)
	}
	return fmt.Sprintf("%s: line %d: %s", ErrMalformed, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

func errorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

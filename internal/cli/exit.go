package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitFailure reports a rejected word or a missing path in --strict mode.
	ExitFailure = 1
	// ExitCommandError reports unusable input: bad flags, config, or descriptions.
	ExitCommandError = 2
)

// ExitError carries the exit code a command wants main to use.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Message != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func commandError(msg string, err error) error {
	return &ExitError{Code: ExitCommandError, Message: msg, Err: err}
}

// GetExitCode maps an error returned by a command to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

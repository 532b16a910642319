package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHandler configures the output strategy.
func WithHandler(handler Handler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithRunIDGenerator replaces the random run identifier source.
// Tests use it to get stable output.
func WithRunIDGenerator(gen func() string) Option {
	return func(r *Runner) {
		r.newRunID = gen
	}
}

// WithMaxInputSize limits the word length in bytes.
// The AUTOMATA_MAX_INPUT_SIZE environment variable overrides it.
func WithMaxInputSize(size int) Option {
	return func(r *Runner) {
		r.MaxInputSize = size
	}
}

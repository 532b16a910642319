package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputSize bounds a word, in bytes, when nothing else is configured.
const DefaultMaxInputSize = 4096

// EnvMaxInputSize overrides both the default and WithMaxInputSize.
const EnvMaxInputSize = "AUTOMATA_MAX_INPUT_SIZE"

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// MaxInputSize returns the effective word limit: a positive EnvMaxInputSize first,
// then a positive configured value, then DefaultMaxInputSize.
func MaxInputSize(configured int) int {
	if v := os.Getenv(EnvMaxInputSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if configured > 0 {
		return configured
	}
	return DefaultMaxInputSize
}

// PrepareWord checks that word can be replayed and returns the symbols to feed.
//
// Only the whitespace around the word is dropped, as left by line-oriented input.
// Every other rune is kept, control characters included: whether a rune is a symbol is
// for the automaton's alphabet to decide, so an unexpected one is rejected as an unknown
// symbol instead of vanishing.
func PrepareWord(word string, limit int) (string, error) {
	if len(word) > limit {
		// Rejecting instead of truncating keeps the replay deterministic.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(word), limit)
	}
	if !utf8.ValidString(word) {
		return "", ErrInvalidUTF8
	}
	return strings.TrimSpace(word), nil
}

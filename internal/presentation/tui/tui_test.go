package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeMarkdown(t *testing.T) {
	a := domain.NewAutomaton(domain.Definition{
		Alphabet:    []domain.Symbol{'b', 'a'},
		States:      []domain.State{0, 1},
		Initial:     0,
		Finals:      []domain.State{1},
		Transitions: []domain.Transition{{From: 0, Symbol: 'a', To: 1}},
	})

	md := DescribeMarkdown("ab", a, validator.Inspect(a))

	assert.Contains(t, md, "# ab")
	assert.Contains(t, md, "- **Alphabet:** `a`, `b`")
	assert.Contains(t, md, "| 0 | `a` | 1 |")
	assert.NotContains(t, md, "Diagnostics")
}

func TestNonTerminalOutput(t *testing.T) {
	var buf bytes.Buffer

	PrintBanner(&buf, "1.0.0")
	assert.Empty(t, buf.String())

	assert.Equal(t, "ACCEPTED", Verdict(&buf, true))
	assert.Equal(t, "REJECTED", Verdict(&buf, false))

	out, err := NewRenderer(&buf)("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)
}

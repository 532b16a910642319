package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *domain.Automaton {
	t.Helper()
	a, err := description.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return a
}

func TestInspect_Clean(t *testing.T) {
	a := parse(t, `InputSymbols= a, b
StatesOfAutomata= 0, 1, 2
InitialState= 0
FinalStates= 2
TransitionFunction=
0 a 1
1 b 2
2 a 2`)

	res := Inspect(a)
	assert.True(t, res.Valid())
	assert.Empty(t, res.Warnings)
	assert.NoError(t, res.Err())
	assert.Empty(t, res.String())
}

func TestInspect_Warnings(t *testing.T) {
	a := parse(t, `InputSymbols= a
StatesOfAutomata= 0, 1, 2
InitialState= 0
FinalStates= 2
TransitionFunction=
0 a 1`)

	res := Inspect(a)
	assert.True(t, res.Valid())
	assert.Equal(t, []string{
		"state 2 is unreachable from the initial state 0",
		"no final state is reachable from the initial state 0",
		"state 1 is a dead end",
	}, res.Warnings)
}

func TestInspect_Errors(t *testing.T) {
	a := parse(t, `InputSymbols= a
StatesOfAutomata= 0
InitialState= 0
FinalStates= 0
TransitionFunction=
0 a 4`)

	res := Inspect(a)
	assert.False(t, res.Valid())
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "4")
	assert.ErrorIs(t, res.Err(), domain.ErrInvalidAutomaton)
	assert.Contains(t, res.String(), "error: ")
}

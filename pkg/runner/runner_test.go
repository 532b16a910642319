package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: 0 -a-> 1 -b-> 2 (final), and a dead end 0 -c-> 3.
const fixture = `InputSymbols= a, b, c
StatesOfAutomata= 0, 1, 2, 3
InitialState= 0
FinalStates= 2
TransitionFunction=
0 a 1
1 b 2
0 c 3
`

func loadFixture(t *testing.T) *domain.Automaton {
	t.Helper()
	a, err := description.ParseBytes([]byte(fixture))
	require.NoError(t, err)
	return a
}

func fixedID() string { return "run-1" }

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name      string
		word      string
		trace     []domain.Transition
		rejection domain.RejectionKind
		final     domain.State
		accepted  bool
		pathLen   int
		notFound  bool
	}{
		{
			name:     "accepted word",
			word:     "ab",
			trace:    []domain.Transition{{From: 0, Symbol: 'a', To: 1}, {From: 1, Symbol: 'b', To: 2}},
			final:    2,
			accepted: true,
			pathLen:  0,
		},
		{
			name:      "undefined transition",
			word:      "b",
			rejection: domain.UndefinedTransition,
			final:     0,
			pathLen:   2,
		},
		{
			name:      "unknown symbol after progress",
			word:      "ax",
			trace:     []domain.Transition{{From: 0, Symbol: 'a', To: 1}},
			rejection: domain.UnknownSymbol,
			final:     1,
			pathLen:   1,
		},
		{
			name:     "dead end",
			word:     "c",
			trace:    []domain.Transition{{From: 0, Symbol: 'c', To: 3}},
			final:    3,
			notFound: true,
		},
		{
			name:    "empty word",
			word:    "",
			final:   0,
			pathLen: 2,
		},
		{
			name:     "surrounding whitespace is trimmed",
			word:     "  ab\n",
			trace:    []domain.Transition{{From: 0, Symbol: 'a', To: 1}, {From: 1, Symbol: 'b', To: 2}},
			final:    2,
			accepted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(WithRunIDGenerator(fixedID))
			m := domain.NewMachine(loadFixture(t))

			report, err := r.Run(context.Background(), m, tt.word)
			require.NoError(t, err)

			assert.Equal(t, "run-1", report.RunID)
			assert.Equal(t, tt.trace, report.Trace)
			assert.Equal(t, tt.final, report.Final)
			assert.Equal(t, tt.final, m.Current())
			assert.Equal(t, tt.accepted, report.Accepted)

			if tt.rejection == "" {
				assert.Nil(t, report.Rejection)
				assert.True(t, report.Consumed())
			} else {
				require.NotNil(t, report.Rejection)
				assert.Equal(t, tt.rejection, report.Rejection.Kind)
				assert.Equal(t, tt.final, report.Rejection.State)
			}

			if tt.notFound {
				assert.Nil(t, report.Path)
				assert.ErrorIs(t, report.PathErr, domain.ErrPathNotFound)
				return
			}
			require.NotNil(t, report.Path)
			assert.NoError(t, report.PathErr)
			assert.Equal(t, tt.final, report.Path.Start)
			assert.Equal(t, tt.pathLen, report.Path.Len())
		})
	}
}

func TestRunner_StopsAtFirstRejection(t *testing.T) {
	var seen []domain.Transition
	hooks := domain.LifecycleHooks{
		OnTransition: func(_ context.Context, ev *domain.TransitionEvent) {
			seen = append(seen, ev.Transition)
		},
	}
	m := domain.NewMachine(loadFixture(t), domain.WithHooks(hooks))

	// "b" is rejected from 0; the trailing "ab" must never be fed.
	report, err := New().Run(context.Background(), m, "bab")
	require.NoError(t, err)

	assert.Empty(t, seen)
	assert.Empty(t, report.Trace)
	assert.Equal(t, domain.State(0), report.Final)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, domain.NewMachine(loadFixture(t)), "ab")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_InputTooLarge(t *testing.T) {
	r := New(WithMaxInputSize(3))

	_, err := r.Run(context.Background(), domain.NewMachine(loadFixture(t)), strings.Repeat("a", 4))
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestRunner_ControlCharacterIsUnknownSymbol(t *testing.T) {
	report, err := New().Run(context.Background(), domain.NewMachine(loadFixture(t)), "a\x01b")
	require.NoError(t, err)

	assert.Equal(t, "a\x01b", report.Word)
	assert.Equal(t, []domain.Transition{{From: 0, Symbol: 'a', To: 1}}, report.Trace)
	require.NotNil(t, report.Rejection)
	assert.Equal(t, domain.UnknownSymbol, report.Rejection.Kind)
	assert.Equal(t, domain.Symbol('\x01'), report.Rejection.Symbol)
	assert.Equal(t, domain.State(1), report.Final)
	assert.False(t, report.Accepted)
}

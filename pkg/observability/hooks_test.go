package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAutomaton() *domain.Automaton {
	return domain.NewAutomaton(domain.Definition{
		Alphabet:    []domain.Symbol{'a', 'b'},
		States:      []domain.State{0, 1},
		Initial:     0,
		Finals:      []domain.State{1},
		Transitions: []domain.Transition{{From: 0, Symbol: 'a', To: 1}},
	})
}

func TestCombine(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) { calls = append(calls, "first:"+e.String()) },
	}
	second := domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) { calls = append(calls, "second:"+e.String()) },
		OnReject:     func(ctx context.Context, e *domain.RejectEvent) { calls = append(calls, "reject:"+string(e.Kind)) },
	}

	m := domain.NewMachine(testAutomaton(), domain.WithHooks(Combine(first, domain.LifecycleHooks{}, second)))
	ctx := context.Background()

	_, err := m.Step(ctx, 'a')
	require.NoError(t, err)
	_, err = m.Step(ctx, 'b')
	require.Error(t, err)

	assert.Equal(t, []string{"first:0 a 1", "second:0 a 1", "reject:undefined_transition"}, calls)
}

func TestCombine_Empty(t *testing.T) {
	combined := Combine()
	assert.Nil(t, combined.OnTransition)
	assert.Nil(t, combined.OnReject)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := domain.NewMachine(testAutomaton(), domain.WithHooks(LoggingHooks(logger)))
	ctx := context.Background()

	_, err := m.Step(ctx, 'a')
	require.NoError(t, err)
	_, err = m.Step(ctx, 'z')
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=Transition from=0 symbol=a to=1")
	assert.Contains(t, out, "msg=Rejected state=1 symbol=z kind=unknown_symbol")
}

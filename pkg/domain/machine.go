package domain

import (
	"context"
	"errors"
	"time"
)

// Machine replays input against an Automaton.
// It owns the current-state cursor; the automaton itself is never mutated.
// A Machine is not safe for concurrent use.
type Machine struct {
	automaton *Automaton
	current   State
	hooks     LifecycleHooks
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithHooks registers observability hooks.
func WithHooks(hooks LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithStartState places the cursor on s instead of the initial state.
func WithStartState(s State) MachineOption {
	return func(m *Machine) {
		m.current = s
	}
}

// NewMachine creates a Machine positioned at the automaton's initial state.
func NewMachine(a *Automaton, opts ...MachineOption) *Machine {
	m := &Machine{
		automaton: a,
		current:   a.Initial(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Automaton returns the automaton being replayed.
func (m *Machine) Automaton() *Automaton {
	return m.automaton
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Reset moves the cursor back to the initial state.
func (m *Machine) Reset() {
	m.current = m.automaton.Initial()
}

// Step feeds one symbol. On success the cursor advances and the transition is returned.
// On rejection the cursor stays where it was and a *StepError is returned.
func (m *Machine) Step(ctx context.Context, sym Symbol) (Transition, error) {
	from := m.current
	to, err := m.automaton.Step(from, sym)
	if err != nil {
		if m.hooks.OnReject != nil {
			kind := UndefinedTransition
			var se *StepError
			if errors.As(err, &se) {
				kind = se.Kind
			}
			m.hooks.OnReject(ctx, &RejectEvent{
				EventBase: EventBase{Timestamp: time.Now(), Type: EventReject},
				State:     from,
				Symbol:    sym,
				Kind:      kind,
			})
		}
		return Transition{}, err
	}

	m.current = to
	t := Transition{From: from, Symbol: sym, To: to}
	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(ctx, &TransitionEvent{
			EventBase:  EventBase{Timestamp: time.Now(), Type: EventTransition},
			Transition: t,
		})
	}
	return t, nil
}

// InFinal reports whether the cursor rests on a final state.
func (m *Machine) InFinal() bool {
	return m.automaton.IsFinal(m.current)
}

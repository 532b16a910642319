package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	order       []domain.State
	states      map[domain.State]*StateBuilder
	alphabet    []domain.Symbol
	initial     *domain.State
	transitions []domain.Transition
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[domain.State]*StateBuilder),
	}
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(s domain.State) *StateBuilder {
	if sb, ok := b.states[s]; ok {
		return sb
	}
	sb := &StateBuilder{state: s, builder: b}
	b.states[s] = sb
	b.order = append(b.order, s)
	return sb
}

// Alphabet declares symbols that no transition uses yet.
// Symbols used by On are added automatically.
func (b *Builder) Alphabet(symbols string) *Builder {
	for _, r := range symbols {
		b.alphabet = append(b.alphabet, domain.Symbol(r))
	}
	return b
}

// Definition returns what has been declared so far.
// Without an explicit Initial call, the first declared state is the initial one.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		Alphabet:    append([]domain.Symbol(nil), b.alphabet...),
		States:      append([]domain.State(nil), b.order...),
		Transitions: append([]domain.Transition(nil), b.transitions...),
	}
	if b.initial != nil {
		def.Initial = *b.initial
	} else if len(b.order) > 0 {
		def.Initial = b.order[0]
	}
	for _, s := range b.order {
		if b.states[s].final {
			def.Finals = append(def.Finals, s)
		}
	}
	for _, t := range b.transitions {
		def.Alphabet = append(def.Alphabet, t.Symbol)
	}
	return def
}

// Build freezes the declarations into an Automaton.
func (b *Builder) Build() *domain.Automaton {
	return domain.NewAutomaton(b.Definition())
}

// Loader builds the automaton and registers it under id in a new MemoryLoader.
// Redefined transitions are reported as an error here, since a builder has no use for them.
func (b *Builder) Loader(id string) (*memory.Loader, error) {
	a := b.Build()
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", id, err)
	}

	loader := memory.NewLoader()
	if err := loader.Publish(context.Background(), id, a); err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.State
	final   bool
	builder *Builder
}

// Initial marks the state as the initial state, replacing any earlier choice.
func (s *StateBuilder) Initial() *StateBuilder {
	st := s.state
	s.builder.initial = &st
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds the transition (state, symbol) -> to, declaring the target state if needed.
func (s *StateBuilder) On(symbol rune, to domain.State) *StateBuilder {
	s.builder.State(to)
	s.builder.transitions = append(s.builder.transitions, domain.Transition{
		From:   s.state,
		Symbol: domain.Symbol(symbol),
		To:     to,
	})
	return s
}

// Loop adds a transition from the state to itself for every rune of symbols.
func (s *StateBuilder) Loop(symbols string) *StateBuilder {
	for _, r := range symbols {
		s.On(r, s.state)
	}
	return s
}

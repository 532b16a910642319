package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.AutomatonLoader and ports.Publisher using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	automata map[string]*domain.Automaton
}

// NewLoader creates an empty in-memory loader.
func NewLoader() *Loader {
	return &Loader{automata: make(map[string]*domain.Automaton)}
}

// NewFromSources parses text descriptions keyed by ID.
func NewFromSources(sources map[string]string) (*Loader, error) {
	l := NewLoader()
	for id, src := range sources {
		a, err := description.ParseBytes([]byte(src))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", id, err)
		}
		l.automata[id] = a
	}
	return l, nil
}

// Load returns the automaton registered under id.
func (l *Loader) Load(ctx context.Context, id string) (*domain.Automaton, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.automata[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	return a, nil
}

// List returns all registered IDs.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.automata))
	for k := range l.automata {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// Publish registers a under id, replacing any previous entry.
func (l *Loader) Publish(ctx context.Context, id string, a *domain.Automaton) error {
	if id == "" {
		return fmt.Errorf("automaton id is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.automata[id] = a
	return nil
}

// Delete removes id. Deleting a missing ID is not an error.
func (l *Loader) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.automata, id)
	return nil
}

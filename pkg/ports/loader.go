package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// AutomatonLoader defines how the engine retrieves automaton definitions.
// This allows the storage layer (files, Loam, Redis, memory) to be decoupled.
type AutomatonLoader interface {
	// Load returns the automaton registered under id.
	// Missing IDs return an error wrapping domain.ErrAutomatonNotFound.
	Load(ctx context.Context, id string) (*domain.Automaton, error)

	// List returns the available IDs in ascending order.
	List(ctx context.Context) ([]string, error)
}

// Publisher is implemented by loaders whose backend accepts new descriptions.
type Publisher interface {
	Publish(ctx context.Context, id string, a *domain.Automaton) error
	Delete(ctx context.Context, id string) error
}

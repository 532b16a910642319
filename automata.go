package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/search"
)

// Engine is the high-level entry point for the library.
// It ties a loader to the machine, runner and search so callers deal in IDs and words.
// An Engine is safe for concurrent use as long as its loader is.
type Engine struct {
	loader   ports.AutomatonLoader
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	validate bool
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks on every machine the engine creates.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom AutomatonLoader, bypassing the default file loader.
func WithLoader(l ports.AutomatonLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithValidation makes Load reject automata whose states or symbols are inconsistent.
func WithValidation(enabled bool) Option {
	return func(e *Engine) {
		e.validate = enabled
	}
}

// New initializes a new Engine.
// source may be a directory of descriptions or a single description file; in the latter
// case the automaton is registered under its base name and is also the default ID.
// If WithLoader option is provided, source can be empty and is only used as a label.
func New(source string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if eng.loader == nil {
		if source == "" {
			return nil, fmt.Errorf("source is required when no custom loader is provided")
		}
		loader, name, err := defaultLoader(source)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		eng.Name = name
	} else if source != "" {
		eng.Name = filepath.Base(source)
	}

	if eng.Name != "" {
		eng.logger = eng.logger.With("source", eng.Name)
	}

	return eng, nil
}

func defaultLoader(source string) (ports.AutomatonLoader, string, error) {
	absPath, err := filepath.Abs(source)
	if err != nil {
		return nil, "", fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	if info.IsDir() {
		return file.New(absPath), filepath.Base(absPath), nil
	}

	a, err := file.LoadFile(absPath)
	if err != nil {
		return nil, "", err
	}
	id := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	loader := memory.NewLoader()
	if err := loader.Publish(context.Background(), id, a); err != nil {
		return nil, "", err
	}
	return loader, id, nil
}

// Loader returns the underlying AutomatonLoader used by the engine.
func (e *Engine) Loader() ports.AutomatonLoader {
	return e.loader
}

// List returns the IDs the loader can serve.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Resolve maps an empty ID to the only automaton available.
func (e *Engine) Resolve(ctx context.Context, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	ids, err := e.loader.List(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) != 1 {
		return "", fmt.Errorf("automaton id is required: %d automata available", len(ids))
	}
	return ids[0], nil
}

// Load fetches an automaton, validating it when the engine was built WithValidation.
func (e *Engine) Load(ctx context.Context, id string) (*domain.Automaton, error) {
	id, err := e.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	a, err := e.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("automaton loaded", "id", id, "states", len(a.States()), "transitions", len(a.Transitions()))

	if e.validate {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
	}
	return a, nil
}

// Machine creates a fresh machine for id with the engine's hooks.
func (e *Engine) Machine(ctx context.Context, id string, opts ...domain.MachineOption) (*domain.Machine, error) {
	a, err := e.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	opts = append([]domain.MachineOption{domain.WithHooks(e.hooks)}, opts...)
	return domain.NewMachine(a, opts...), nil
}

// Simulate replays word on a new machine for id.
// Runner options such as a Handler may be passed; the engine logger is used unless overridden.
func (e *Engine) Simulate(ctx context.Context, id, word string, opts ...runner.Option) (*runner.Report, error) {
	m, err := e.Machine(ctx, id)
	if err != nil {
		return nil, err
	}
	opts = append([]runner.Option{runner.WithLogger(e.logger)}, opts...)
	return runner.New(opts...).Run(ctx, m, word)
}

// FindPath searches for the nearest final state starting at from.
func (e *Engine) FindPath(ctx context.Context, id string, from domain.State) (domain.Path, error) {
	a, err := e.Load(ctx, id)
	if err != nil {
		return domain.Path{}, err
	}
	return search.FindPathToAnyFinalState(a, from)
}

// Inspect returns the definition of id for visualization or introspection tools.
func (e *Engine) Inspect(ctx context.Context, id string) (domain.Definition, error) {
	a, err := e.Load(ctx, id)
	if err != nil {
		return domain.Definition{}, err
	}
	return a.Definition(), nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/adapters/file"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	redisAdapter "github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Options holds what every command resolves from flags and the config file.
type Options struct {
	Config config.Config
	Debug  bool
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// createLoader builds the configured backend. A nil loader means the engine's own
// file/directory handling applies. The returned close function is never nil.
func createLoader(cfg config.Config) (ports.AutomatonLoader, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "file":
		return nil, noop, nil
	case "loam":
		l, err := loamAdapter.Open(cfg.Source)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", domain.ErrLoad, err)
		}
		return l, noop, nil
	case "redis":
		store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisAdapter.WithPrefix(cfg.Redis.Prefix))
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// createEngine initializes an Engine with standard CLI conventions.
func createEngine(opts Options, logger *slog.Logger) (*automata.Engine, func() error, error) {
	engineOpts := []automata.Option{
		automata.WithLogger(logger),
		automata.WithValidation(opts.Config.Validate),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, automata.WithLifecycleHooks(createDebugHooks(logger)))
	}

	loader, closeFn, err := createLoader(opts.Config)
	if err != nil {
		return nil, closeFn, err
	}
	if loader != nil {
		engineOpts = append(engineOpts, automata.WithLoader(loader))
	}

	engine, err := automata.New(opts.Config.Source, engineOpts...)
	if err != nil {
		return nil, closeFn, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closeFn, nil
}

// resolveAutomaton picks the automaton a command works on.
// An explicit id wins. Otherwise the only available automaton is used, and a directory
// holding several falls back to a conventional entry point.
func resolveAutomaton(ctx context.Context, engine *automata.Engine, id, source string) (string, error) {
	if id != "" {
		return id, nil
	}
	resolved, err := engine.Resolve(ctx, "")
	if err == nil {
		return resolved, nil
	}
	if entry := determineEntryPoint(source); entry != "" {
		return entry, nil
	}
	return "", err
}

// determineEntryPoint looks for "default", "main", then a description named after the
// directory itself. It returns "" when none exists.
func determineEntryPoint(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for _, candidate := range []string{"default", "main", filepath.Base(abs)} {
		if hasDescription(abs, candidate) {
			return candidate
		}
	}
	return ""
}

// hasDescription checks if an automaton exists as a file in the directory.
func hasDescription(dir, id string) bool {
	for _, ext := range append(file.Extensions, ".md") {
		if _, err := os.Stat(filepath.Join(dir, id+ext)); err == nil {
			return true
		}
	}
	return false
}

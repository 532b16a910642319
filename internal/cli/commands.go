package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/adapters/file"
	redisAdapter "github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/search"
)

// PathOptions configures the path command.
type PathOptions struct {
	Options
	Automaton string
	From      *domain.State
	Strict    bool
}

// FindPath prints the shortest path from a state to the nearest final state.
func FindPath(ctx context.Context, opts PathOptions) error {
	logger := createLogger(opts.Debug, opts.Config.LogLevel)
	engine, closeFn, err := createEngine(opts.Options, logger)
	if err != nil {
		return commandError("load failed", err)
	}
	defer closeFn()

	id, err := resolveAutomaton(ctx, engine, opts.Automaton, opts.Config.Source)
	if err != nil {
		return commandError("", err)
	}
	a, err := engine.Load(ctx, id)
	if err != nil {
		return commandError("load failed", err)
	}

	from := a.Initial()
	if opts.From != nil {
		from = *opts.From
	}

	out := opts.stdout()
	path, err := search.FindPathToAnyFinalState(a, from)
	if opts.Config.Format == "json" {
		report := &runner.Report{Start: from, Final: from, Accepted: a.IsFinal(from)}
		if err != nil {
			report.PathErr = err
		} else {
			report.Path = &path
		}
		if werr := runner.NewJSONHandler(out).Finish(ctx, report); werr != nil {
			return werr
		}
	} else if err != nil {
		fmt.Fprintln(out, err.Error())
	} else if werr := runner.WritePath(out, path); werr != nil {
		return werr
	}

	if err != nil && opts.Strict {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	return nil
}

// TargetOptions selects one automaton for the inspection commands.
type TargetOptions struct {
	Options
	Automaton string
}

func loadTarget(ctx context.Context, opts TargetOptions) (string, *domain.Automaton, func() error, error) {
	// Inspection reports problems itself instead of refusing to load.
	opts.Config.Validate = false

	logger := createLogger(opts.Debug, opts.Config.LogLevel)
	engine, closeFn, err := createEngine(opts.Options, logger)
	if err != nil {
		return "", nil, closeFn, commandError("load failed", err)
	}
	id, err := resolveAutomaton(ctx, engine, opts.Automaton, opts.Config.Source)
	if err != nil {
		return "", nil, closeFn, commandError("", err)
	}
	a, err := engine.Load(ctx, id)
	if err != nil {
		return "", nil, closeFn, commandError("load failed", err)
	}
	return id, a, closeFn, nil
}

// Validate reports consistency errors and warnings. Errors fail the command.
func Validate(ctx context.Context, opts TargetOptions) error {
	id, a, closeFn, err := loadTarget(ctx, opts)
	defer closeFn()
	if err != nil {
		return err
	}

	res := validator.Inspect(a)
	out := opts.stdout()
	if s := res.String(); s != "" {
		fmt.Fprint(out, s)
	}
	if err := res.Err(); err != nil {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%s is invalid", id), Err: err}
	}
	fmt.Fprintf(out, "%s is valid\n", id)
	return nil
}

// GraphOptions configures the graph command.
type GraphOptions struct {
	TargetOptions
	// Word, when set, is replayed and its trace highlighted.
	Word string
}

// Graph prints a Mermaid diagram of the automaton.
func Graph(ctx context.Context, opts GraphOptions) error {
	_, a, closeFn, err := loadTarget(ctx, opts.TargetOptions)
	defer closeFn()
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Word != "" {
		m := domain.NewMachine(a)
		report, err := runner.New(runner.WithMaxInputSize(opts.Config.MaxInputSize)).Run(ctx, m, opts.Word)
		if err != nil {
			return commandError("", err)
		}
		overlay = graph.NewOverlay(report.Start, report.Trace, report.Final, report.Path)
	}

	fmt.Fprint(opts.stdout(), graph.GenerateMermaid(a, overlay))
	return nil
}

// Describe renders a Markdown summary, styled with glamour on terminals.
func Describe(ctx context.Context, opts TargetOptions) error {
	id, a, closeFn, err := loadTarget(ctx, opts)
	defer closeFn()
	if err != nil {
		return err
	}

	out := opts.stdout()
	render := tui.NewRenderer(out)
	rendered, err := render(tui.DescribeMarkdown(id, a, validator.Inspect(a)))
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// List prints the available automaton IDs, one per line.
func List(ctx context.Context, opts Options) error {
	logger := createLogger(opts.Debug, opts.Config.LogLevel)
	engine, closeFn, err := createEngine(opts, logger)
	if err != nil {
		return commandError("load failed", err)
	}
	defer closeFn()

	ids, err := engine.List(ctx)
	if err != nil {
		return commandError("list failed", err)
	}
	out := opts.stdout()
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

// PushOptions configures the push command.
type PushOptions struct {
	Options
	// Files are description files; each is published under its base name unless ID is set.
	Files []string
	ID    string
}

// Push publishes description files to the configured Redis store.
func Push(ctx context.Context, opts PushOptions) error {
	if len(opts.Files) == 0 {
		return commandError("", errors.New("no description files given"))
	}
	if opts.ID != "" && len(opts.Files) > 1 {
		return commandError("", errors.New("--id can only be used with a single file"))
	}

	cfg := opts.Config.Redis
	store := redisAdapter.New(cfg.Addr, cfg.Password, cfg.DB, redisAdapter.WithPrefix(cfg.Prefix))
	defer store.Close()

	logger := createLogger(opts.Debug, opts.Config.LogLevel)
	out := opts.stdout()
	for _, path := range opts.Files {
		a, err := file.LoadFile(path)
		if err != nil {
			return commandError("load failed", err)
		}
		id := opts.ID
		if id == "" {
			base := filepath.Base(path)
			id = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if err := store.Publish(ctx, id, a); err != nil {
			return fmt.Errorf("publish %s: %w", id, err)
		}
		logger.Info("Published", "id", id, "addr", cfg.Addr)
		fmt.Fprintf(out, "published %s\n", id)
	}
	return nil
}


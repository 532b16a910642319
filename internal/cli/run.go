package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
)

// RunOptions configures the run command.
type RunOptions struct {
	Options
	Automaton string
	Word      string
	// Start overrides the initial state when set.
	Start *domain.State
	// Strict turns a rejected word or a missing path into ExitFailure.
	Strict bool
	// Graph appends a Mermaid diagram of the run.
	Graph bool
}

// Run replays a word and prints the trace followed by the search result.
func Run(ctx context.Context, opts RunOptions) error {
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

	var machineOpts []domain.MachineOption
	if opts.Start != nil {
		machineOpts = append(machineOpts, domain.WithStartState(*opts.Start))
	}
	m, err := engine.Machine(ctx, id, machineOpts...)
	if err != nil {
		return commandError("load failed", err)
	}

	out := opts.stdout()
	var handler runner.Handler = runner.NewTextHandler(out)
	if opts.Config.Format == "json" {
		handler = runner.NewJSONHandler(out)
	}

	r := runner.New(
		runner.WithLogger(logger),
		runner.WithHandler(handler),
		runner.WithMaxInputSize(opts.Config.MaxInputSize),
	)
	start := m.Current()
	report, err := r.Run(ctx, m, opts.Word)
	if err != nil {
		if errors.Is(err, runner.ErrInputTooLarge) || errors.Is(err, runner.ErrInvalidUTF8) {
			return commandError("", err)
		}
		return err
	}
	logger.Info("Run finished", "automaton", id, "run_id", report.RunID, "accepted", report.Accepted)

	if opts.Graph {
		overlay := graph.NewOverlay(start, report.Trace, report.Final, report.Path)
		fmt.Fprint(out, graph.GenerateMermaid(m.Automaton(), overlay))
	}

	if opts.Config.Format != "json" {
		fmt.Fprintln(opts.stderr(), tui.Verdict(opts.stderr(), report.Accepted))
	}

	if opts.Strict && (!report.Accepted || report.Path == nil) {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("word %q was not accepted", report.Word)}
	}
	return nil
}

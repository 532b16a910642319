package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/search"
	"github.com/google/uuid"
)

// Report is the outcome of one run.
type Report struct {
	RunID string       `json:"run_id"`
	Word  string       `json:"word"`
	Start domain.State `json:"start"`

	// Trace holds the accepted transitions in input order.
	Trace []domain.Transition `json:"trace"`

	// Rejection is the step that stopped input processing, nil if the word was consumed.
	Rejection *domain.StepError `json:"-"`

	// Final is the state the machine rested on when input processing stopped.
	Final    domain.State `json:"final"`
	Accepted bool         `json:"accepted"`

	// Path leads from Final to the nearest final state. Nil when PathErr is set.
	Path    *domain.Path `json:"path,omitempty"`
	PathErr error        `json:"-"`
}

// Consumed reports whether every symbol of the word was accepted.
func (r *Report) Consumed() bool {
	return r.Rejection == nil
}

// Runner drives a Machine over an input word.
// A Runner holds no per-run state and may be reused, but its Handler may not be shared
// between concurrent runs.
type Runner struct {
	// Handler presents the run. If nil, output is discarded.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// MaxInputSize limits the word length in bytes. Zero means DefaultMaxInputSize.
	MaxInputSize int

	newRunID func() string
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run feeds word to m symbol by symbol.
//
// Processing stops at the first rejected symbol; the machine stays on the last reached
// state. The search for the nearest final state runs in every case, from that state.
// Rejections and a missing path are part of the Report, not errors. Run only fails when
// the word is unusable, the context is cancelled or the handler cannot write.
func (r *Runner) Run(ctx context.Context, m *domain.Machine, word string) (*Report, error) {
	clean, err := PrepareWord(word, MaxInputSize(r.MaxInputSize))
	if err != nil {
		return nil, fmt.Errorf("invalid input word: %w", err)
	}

	handler := r.resolveHandler()
	report := &Report{
		RunID: r.resolveRunID(),
		Word:  clean,
		Start: m.Current(),
	}
	logger := r.resolveLogger().With("run_id", report.RunID)
	logger.Debug("run started", "word", clean, "start", report.Start)

	if err := handler.Begin(ctx, report.RunID, clean, report.Start); err != nil {
		return report, fmt.Errorf("output error: %w", err)
	}

	for _, ch := range clean {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("run interrupted: %w", err)
		}

		t, err := m.Step(ctx, domain.Symbol(ch))
		if err != nil {
			var stepErr *domain.StepError
			if !errors.As(err, &stepErr) {
				return report, err
			}
			report.Rejection = stepErr
			logger.Debug("symbol rejected", "state", stepErr.State, "symbol", stepErr.Symbol.String(), "kind", stepErr.Kind)
			if err := handler.Rejected(ctx, stepErr); err != nil {
				return report, fmt.Errorf("output error: %w", err)
			}
			break
		}

		report.Trace = append(report.Trace, t)
		if err := handler.Transition(ctx, t); err != nil {
			return report, fmt.Errorf("output error: %w", err)
		}
	}

	report.Final = m.Current()
	report.Accepted = report.Rejection == nil && m.InFinal()

	path, err := search.FindPathToAnyFinalState(m.Automaton(), report.Final)
	if err != nil {
		report.PathErr = err
		logger.Debug("no final state reachable", "from", report.Final)
	} else {
		report.Path = &path
		logger.Debug("path found", "from", report.Final, "to", path.End(), "length", path.Len())
	}

	if err := handler.Finish(ctx, report); err != nil {
		return report, fmt.Errorf("output error: %w", err)
	}
	return report, nil
}

func (r *Runner) resolveHandler() Handler {
	if r.Handler != nil {
		return r.Handler
	}
	return NopHandler{}
}

func (r *Runner) resolveLogger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r *Runner) resolveRunID() string {
	if r.newRunID != nil {
		return r.newRunID()
	}
	return uuid.NewString()
}

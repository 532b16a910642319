package runner

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Handler defines how a run is presented.
// This allows switching between Text (CLI) and JSON (structured) output.
// Calls arrive in order: Begin, zero or more Transition, at most one Rejected, Finish.
type Handler interface {
	// Begin announces a new run.
	Begin(ctx context.Context, runID string, word string, start domain.State) error

	// Transition reports one accepted symbol.
	Transition(ctx context.Context, t domain.Transition) error

	// Rejected reports the symbol that stopped input processing.
	Rejected(ctx context.Context, err *domain.StepError) error

	// Finish presents the search result of a completed run.
	Finish(ctx context.Context, report *Report) error
}

// NopHandler discards everything. Used when only the Report matters.
type NopHandler struct{}

func (NopHandler) Begin(context.Context, string, string, domain.State) error { return nil }
func (NopHandler) Transition(context.Context, domain.Transition) error       { return nil }
func (NopHandler) Rejected(context.Context, *domain.StepError) error         { return nil }
func (NopHandler) Finish(context.Context, *Report) error                     { return nil }

package runner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/aretw0/automata/pkg/domain"
)

// EventType names a JSON event line.
type EventType string

const (
	EventTransition   EventType = "transition"
	EventRejected     EventType = "rejected"
	EventPath         EventType = "path"
	EventPathNotFound EventType = "path_not_found"
)

// Event is one line of JSONHandler output. Fields irrelevant to Type are omitted.
type Event struct {
	Type  EventType `json:"type"`
	RunID string    `json:"run_id"`

	From   *domain.State  `json:"from,omitempty"`
	Symbol *domain.Symbol `json:"symbol,omitempty"`
	To     *domain.State  `json:"to,omitempty"`

	Kind    domain.RejectionKind `json:"kind,omitempty"`
	Message string               `json:"message,omitempty"`

	Accepted *bool        `json:"accepted,omitempty"`
	Path     *domain.Path `json:"path,omitempty"`
}

// JSONHandler implements the Handler interface for structured JSON-Lines output.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder

	runID string
}

// NewJSONHandler creates a handler for JSON output.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Begin(ctx context.Context, runID string, word string, start domain.State) error {
	h.runID = runID
	return nil
}

func (h *JSONHandler) Transition(ctx context.Context, t domain.Transition) error {
	return h.Encoder.Encode(Event{
		Type:   EventTransition,
		RunID:  h.runID,
		From:   &t.From,
		Symbol: &t.Symbol,
		To:     &t.To,
	})
}

func (h *JSONHandler) Rejected(ctx context.Context, err *domain.StepError) error {
	return h.Encoder.Encode(Event{
		Type:    EventRejected,
		RunID:   h.runID,
		From:    &err.State,
		Symbol:  &err.Symbol,
		Kind:    err.Kind,
		Message: err.Error(),
	})
}

func (h *JSONHandler) Finish(ctx context.Context, report *Report) error {
	accepted := report.Accepted
	if report.Path != nil {
		return h.Encoder.Encode(Event{
			Type:     EventPath,
			RunID:    h.runID,
			Accepted: &accepted,
			Path:     report.Path,
		})
	}

	ev := Event{
		Type:     EventPathNotFound,
		RunID:    h.runID,
		From:     &report.Final,
		Accepted: &accepted,
	}
	var nf *domain.NotFoundError
	if errors.As(report.PathErr, &nf) {
		ev.Message = nf.Error()
	} else if report.PathErr != nil {
		ev.Message = report.PathErr.Error()
	}
	return h.Encoder.Encode(ev)
}

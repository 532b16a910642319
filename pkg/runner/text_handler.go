package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata/pkg/domain"
)

// Separator divides the replay trace from the search result.
const Separator = "------------------------------------------"

// TextHandler implements the standard line-oriented output.
//
// Each accepted symbol prints "from symbol to". A rejection prints its message. After the
// separator the path is printed one state per line, with a "state symbol" line for each edge
// taken out of that state, or a not-found message naming the start state.
type TextHandler struct {
	Writer io.Writer
}

// NewTextHandler creates a handler writing to w (stdout when nil).
func NewTextHandler(w io.Writer) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{Writer: w}
}

func (h *TextHandler) Begin(ctx context.Context, runID string, word string, start domain.State) error {
	return nil
}

func (h *TextHandler) Transition(ctx context.Context, t domain.Transition) error {
	_, err := fmt.Fprintln(h.Writer, t.String())
	return err
}

func (h *TextHandler) Rejected(ctx context.Context, err *domain.StepError) error {
	_, werr := fmt.Fprintln(h.Writer, err.Error())
	return werr
}

func (h *TextHandler) Finish(ctx context.Context, report *Report) error {
	if _, err := fmt.Fprintln(h.Writer, Separator); err != nil {
		return err
	}

	if report.Path == nil {
		var nf *domain.NotFoundError
		if errors.As(report.PathErr, &nf) {
			_, err := fmt.Fprintln(h.Writer, nf.Error())
			return err
		}
		_, err := fmt.Fprintf(h.Writer, "Search failed: %v\n", report.PathErr)
		return err
	}

	return WritePath(h.Writer, *report.Path)
}

// WritePath prints p in the text layout used by TextHandler.
func WritePath(w io.Writer, p domain.Path) error {
	prev := p.Start
	if _, err := fmt.Fprintln(w, prev); err != nil {
		return err
	}
	for _, step := range p.Steps {
		if _, err := fmt.Fprintf(w, "%d %s\n%d\n", prev, step.Symbol, step.State); err != nil {
			return err
		}
		prev = step.State
	}
	return nil
}

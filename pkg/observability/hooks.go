package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Combine returns hooks that call every non-nil callback of each set, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var onTransition []func(context.Context, *domain.TransitionEvent)
	var onReject []func(context.Context, *domain.RejectEvent)
	for _, h := range sets {
		if h.OnTransition != nil {
			onTransition = append(onTransition, h.OnTransition)
		}
		if h.OnReject != nil {
			onReject = append(onReject, h.OnReject)
		}
	}

	var combined domain.LifecycleHooks
	if len(onTransition) > 0 {
		combined.OnTransition = func(ctx context.Context, e *domain.TransitionEvent) {
			for _, fn := range onTransition {
				fn(ctx, e)
			}
		}
	}
	if len(onReject) > 0 {
		combined.OnReject = func(ctx context.Context, e *domain.RejectEvent) {
			for _, fn := range onReject {
				fn(ctx, e)
			}
		}
	}
	return combined
}

// LoggingHooks logs every transition and rejection at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "Transition", "from", e.From, "symbol", e.Symbol.String(), "to", e.To)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			logger.DebugContext(ctx, "Rejected", "state", e.State, "symbol", e.Symbol.String(), "kind", e.Kind)
		},
	}
}

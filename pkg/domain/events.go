package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventReject     EventType = "rejected"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransitionEvent is emitted after the cursor moved.
type TransitionEvent struct {
	EventBase
	Transition
}

// RejectEvent is emitted when a symbol was rejected.
type RejectEvent struct {
	EventBase
	State  State         `json:"state"`
	Symbol Symbol        `json:"symbol"`
	Kind   RejectionKind `json:"kind"`
}

// LifecycleHooks defines callbacks for machine observability.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnReject     func(context.Context, *RejectEvent)
}

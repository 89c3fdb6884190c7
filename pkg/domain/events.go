package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventRunComplete EventType = "run_complete"
	EventScheduled   EventType = "scheduled"
	EventCancelled   EventType = "cancelled"
)

// Trigger names what started a pipeline run.
type Trigger string

const (
	TriggerDebounce Trigger = "debounce"
	TriggerManual   Trigger = "manual"
	TriggerStartup  Trigger = "startup"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RunEvent describes one pipeline run.
// Outcome fields are only set on EventRunComplete.
type RunEvent struct {
	EventBase
	RunID    string        `json:"run_id"`
	Trigger  Trigger       `json:"trigger"`
	Wrapped  bool          `json:"wrapped"`
	Kind     Kind          `json:"kind,omitempty"`
	TypeName string        `json:"type_name,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// DebounceEvent describes a token being armed or superseded.
type DebounceEvent struct {
	EventBase
	Token uint64        `json:"token"`
	Delay time.Duration `json:"delay,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run on the session's execution context and must not block.
type LifecycleHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnRunComplete func(context.Context, *RunEvent)
	OnScheduled   func(context.Context, *DebounceEvent)
	OnCancelled   func(context.Context, *DebounceEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:    chainRun(h.OnRunStart, other.OnRunStart),
		OnRunComplete: chainRun(h.OnRunComplete, other.OnRunComplete),
		OnScheduled:   chainDebounce(h.OnScheduled, other.OnScheduled),
		OnCancelled:   chainDebounce(h.OnCancelled, other.OnCancelled),
	}
}

func chainRun(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainDebounce(a, b func(context.Context, *DebounceEvent)) func(context.Context, *DebounceEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *DebounceEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

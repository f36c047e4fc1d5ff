package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTick         EventType = "tick"
	EventStatusChange EventType = "status_change"
	EventComplete     EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Module    string    `json:"module"`
	Scenario  string    `json:"scenario"`
}

// TickEvent is emitted after a snapshot has been published.
type TickEvent struct {
	EventBase
	Tick     int           `json:"tick"`
	Phase    Phase         `json:"phase"`
	Duration time.Duration `json:"duration"` // Time spent producing the snapshot
}

// StatusEvent is emitted when the driver moves between idle/running/paused/complete.
type StatusEvent struct {
	EventBase
	From string `json:"from"`
	To   string `json:"to"`
}

// LifecycleHooks defines callbacks for driver observability.
type LifecycleHooks struct {
	OnTick         func(context.Context, *TickEvent)
	OnStatusChange func(context.Context, *StatusEvent)
	OnComplete     func(context.Context, *TickEvent)
}

package notify

import (
	"context"
	"time"
)

type EventType string

const (
	EventCreated     EventType = "appointment.created"
	EventCancelled   EventType = "appointment.cancelled"
	EventRescheduled EventType = "appointment.rescheduled"
	EventCompleted   EventType = "appointment.completed"
	EventNoShow      EventType = "appointment.no_show"
	EventConfirmed   EventType = "appointment.confirmed"
)

// Event tells one recipient about one committed appointment change.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"event_type"`
	AppointmentID string    `json:"appointment_id"`
	RecipientID   string    `json:"recipient_id"`
	RecipientRole string    `json:"recipient_role"`
	BusinessID    string    `json:"business_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier accepts events after a commit. Implementations must not block
// the caller on delivery.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Sink delivers an event to one transport.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

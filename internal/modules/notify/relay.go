// Package notify relays booking lifecycle events to downstream consumers.
// Delivery is fire-and-forget: a failed publish is logged, never surfaced
// into the booking path.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types emitted by the booking module.
const (
	EventBookingCreated       = "booking:created"
	EventBookingStatusChanged = "booking:statusChanged"
)

// Event describes a booking state change.
type Event struct {
	Type      string    `json:"type"`
	BookingID uuid.UUID `json:"booking_id"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	At        time.Time `json:"at"`
}

// Relay publishes events to whoever is listening.
type Relay interface {
	Publish(ctx context.Context, e Event)
}

type logRelay struct {
	log *zap.Logger
}

// NewLogRelay returns a Relay that writes events to the structured log.
// A message-broker relay would implement the same interface.
func NewLogRelay(log *zap.Logger) Relay {
	return &logRelay{log: log}
}

func (r *logRelay) Publish(_ context.Context, e Event) {
	r.log.Info("booking event",
		zap.String("type", e.Type),
		zap.String("booking_id", e.BookingID.String()),
		zap.String("from", e.From),
		zap.String("to", e.To),
		zap.Time("at", e.At),
	)
}

// NopRelay discards all events. Used by tests that don't assert on events.
type NopRelay struct{}

func (NopRelay) Publish(context.Context, Event) {}

package events

import (
	"context"
	"time"
)

// DomainEvent is a lifecycle notification produced after a successful commit.
// EventName returns one of the recognized webhook event names
// (booking_created, booking_updated, booking_cancelled, property_created,
// property_updated).
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// Sink delivers events to external subscribers. Delivery is fire-and-forget:
// implementations log failures and never surface them to the caller.
type Sink interface {
	Emit(ctx context.Context, event DomainEvent)
}

// Recorder collects events on an aggregate until the surrounding service
// flushes them to a Sink after persistence succeeds.
type Recorder struct {
	pending []DomainEvent
}

func (r *Recorder) Record(event DomainEvent) {
	if event == nil {
		return
	}
	r.pending = append(r.pending, event)
}

func (r *Recorder) PendingEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.pending))
	copy(out, r.pending)
	return out
}

func (r *Recorder) ClearEvents() {
	r.pending = nil
}

package booking

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/shared/money"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrOverlap         = errors.New("booking: stay overlaps an existing booking")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrInvalidGuests   = errors.New("booking: number of guests must be positive")
)

// MissingFieldError reports an absent required input.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "booking: " + e.Field + " is required"
}

type BookingID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Booking is a guest's stay at a property. The three totals are computed by
// the pricer and frozen at validation time; they are never assigned
// directly afterwards.
type Booking struct {
	ID              BookingID
	PropertyID      property.PropertyID
	GuestID         string
	Range           daterange.DateRange
	NumGuests       int
	BaseTotal       money.Money
	FeesTotal       money.Money
	TotalPrice      money.Money
	Status          Status
	SpecialRequests string
	BookedAt        time.Time
	UpdatedAt       time.Time
	Version         int64
	events.Recorder
}

type CreateParams struct {
	ID              BookingID
	PropertyID      property.PropertyID
	GuestID         string
	Range           daterange.DateRange
	NumGuests       int
	SpecialRequests string
	BaseTotal       money.Money
	FeesTotal       money.Money
	CreatedAt       time.Time
}

// NewBooking builds a pending booking from an already validated and priced
// candidate stay and records the booking_created event.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.PropertyID == "" {
		return nil, &MissingFieldError{Field: "property"}
	}
	if params.GuestID == "" {
		return nil, &MissingFieldError{Field: "guest"}
	}
	if params.NumGuests <= 0 {
		return nil, ErrInvalidGuests
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:              params.ID,
		PropertyID:      params.PropertyID,
		GuestID:         params.GuestID,
		Range:           params.Range,
		NumGuests:       params.NumGuests,
		BaseTotal:       params.BaseTotal,
		FeesTotal:       params.FeesTotal,
		TotalPrice:      params.BaseTotal.Add(params.FeesTotal),
		Status:          StatusPending,
		SpecialRequests: params.SpecialRequests,
		BookedAt:        now,
		UpdatedAt:       now,
	}
	b.Record(BookingCreated{Booking: snapshot(b), At: now})
	return b, nil
}

// Reprice replaces the frozen totals after the full validation pipeline has
// been re-run for an update.
func (b *Booking) Reprice(baseTotal, feesTotal money.Money, now time.Time) {
	b.BaseTotal = baseTotal
	b.FeesTotal = feesTotal
	b.TotalPrice = baseTotal.Add(feesTotal)
	b.UpdatedAt = now.UTC()
}

// Transition moves the booking to a new externally driven status. Terminal
// states reject further transitions.
func (b *Booking) Transition(next Status, now time.Time) error {
	if !next.valid() {
		return ErrInvalidState
	}
	if b.Status.Terminal() {
		return ErrInvalidState
	}
	if next == StatusCancelled {
		return b.Cancel(now)
	}
	b.Status = next
	b.UpdatedAt = now.UTC()
	return nil
}

// RecordUpdated records the booking_updated event after a successful
// re-validation. Cancellations record booking_cancelled instead.
func (b *Booking) RecordUpdated(now time.Time) {
	b.UpdatedAt = now.UTC()
	b.Record(BookingUpdated{Booking: snapshot(b), At: b.UpdatedAt})
}

// Cancel moves the booking to cancelled. Re-cancelling is rejected.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status.Terminal() {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{Booking: snapshot(b), At: b.UpdatedAt})
	return nil
}

// Repository is the booking persistence collaborator. Overlapping must read
// within the same consistency scope as the Save that follows it so two
// concurrent submissions for intersecting dates cannot both land.
type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ForProperty(ctx context.Context, propertyID property.PropertyID) ([]*Booking, error)
	Overlapping(ctx context.Context, propertyID property.PropertyID, stay daterange.DateRange, exclude BookingID) ([]*Booking, error)
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}

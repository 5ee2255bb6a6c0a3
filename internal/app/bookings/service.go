package bookings

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/guest"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
)

// Service drives the booking lifecycle: it validates candidate stays against
// the property's rules and existing bookings, freezes the computed totals,
// persists, and emits lifecycle events. Event emission happens after a
// successful save and never fails the operation.
type Service struct {
	properties property.Repository
	bookings   booking.Repository
	guests     guest.Repository
	sink       events.Sink
	logger     *slog.Logger
}

func NewService(properties property.Repository, bookings booking.Repository, guests guest.Repository, sink events.Sink, logger *slog.Logger) *Service {
	return &Service{
		properties: properties,
		bookings:   bookings,
		guests:     guests,
		sink:       sink,
		logger:     logger,
	}
}

type SubmitParams struct {
	PropertyID      string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	NumGuests       int
	SpecialRequests string
}

// Submit validates, prices and persists a new pending booking.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*booking.Booking, error) {
	if params.PropertyID == "" {
		return nil, &booking.MissingFieldError{Field: "property"}
	}
	if params.GuestID == "" {
		return nil, &booking.MissingFieldError{Field: "guest"}
	}
	if params.NumGuests <= 0 {
		return nil, booking.ErrInvalidGuests
	}
	if params.CheckIn.IsZero() {
		return nil, &booking.MissingFieldError{Field: "check-in date"}
	}
	if params.CheckOut.IsZero() {
		return nil, &booking.MissingFieldError{Field: "check-out date"}
	}

	stay, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}

	prop, err := s.properties.ByID(ctx, property.PropertyID(params.PropertyID))
	if err != nil {
		return nil, err
	}
	if _, err := s.guests.ByID(ctx, params.GuestID); err != nil {
		return nil, err
	}

	if err := s.ensureNoOverlap(ctx, prop.ID, stay, ""); err != nil {
		return nil, err
	}
	existing, err := s.activeStays(ctx, prop.ID, "")
	if err != nil {
		return nil, err
	}
	if err := property.ValidateStay(prop, stay, existing); err != nil {
		return nil, err
	}

	quote := pricing.Price(prop, stay, params.NumGuests)
	b, err := booking.NewBooking(booking.CreateParams{
		ID:              booking.BookingID(uuid.NewString()),
		PropertyID:      prop.ID,
		GuestID:         params.GuestID,
		Range:           stay,
		NumGuests:       params.NumGuests,
		SpecialRequests: params.SpecialRequests,
		BaseTotal:       quote.BaseTotal,
		FeesTotal:       quote.FeesTotal,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	s.flushEvents(ctx, b)
	return b, nil
}

type UpdateParams struct {
	CheckIn         time.Time
	CheckOut        time.Time
	NumGuests       int
	Status          booking.Status
	SpecialRequests *string
}

// Update re-runs the full validation and pricing pipeline, excluding the
// booking itself from the overlap check, then persists and emits
// booking_updated (or booking_cancelled when the new status is cancelled).
// Bookings in a terminal state reject edits; their totals stay frozen.
func (s *Service) Update(ctx context.Context, id booking.BookingID, params UpdateParams) (*booking.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, booking.ErrInvalidState
	}

	checkIn, checkOut := b.Range.CheckIn, b.Range.CheckOut
	if !params.CheckIn.IsZero() {
		checkIn = params.CheckIn
	}
	if !params.CheckOut.IsZero() {
		checkOut = params.CheckOut
	}
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	numGuests := b.NumGuests
	if params.NumGuests > 0 {
		numGuests = params.NumGuests
	}

	prop, err := s.properties.ByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoOverlap(ctx, prop.ID, stay, b.ID); err != nil {
		return nil, err
	}
	existing, err := s.activeStays(ctx, prop.ID, b.ID)
	if err != nil {
		return nil, err
	}
	if err := property.ValidateStay(prop, stay, existing); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote := pricing.Price(prop, stay, numGuests)
	b.Range = stay
	b.NumGuests = numGuests
	if params.SpecialRequests != nil {
		b.SpecialRequests = *params.SpecialRequests
	}
	b.Reprice(quote.BaseTotal, quote.FeesTotal, now)

	if params.Status != "" && params.Status != b.Status {
		if err := b.Transition(params.Status, now); err != nil {
			return nil, err
		}
	}
	if b.Status != booking.StatusCancelled {
		b.RecordUpdated(now)
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	s.flushEvents(ctx, b)
	return b, nil
}

// Cancel marks the booking cancelled and emits booking_cancelled.
// Cancelling a booking that already reached a terminal state is rejected.
func (s *Service) Cancel(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	s.flushEvents(ctx, b)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.bookings.ByID(ctx, id)
}

func (s *Service) ListByGuest(ctx context.Context, guestID string) ([]*booking.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestID)
}

func (s *Service) ListForProperty(ctx context.Context, propertyID property.PropertyID) ([]*booking.Booking, error) {
	return s.bookings.ForProperty(ctx, propertyID)
}

// Quote prices a candidate stay without persisting anything.
func (s *Service) Quote(ctx context.Context, propertyID string, checkIn, checkOut time.Time, numGuests int) (pricing.Quote, error) {
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return pricing.Quote{}, err
	}
	prop, err := s.properties.ByID(ctx, property.PropertyID(propertyID))
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Price(prop, stay, numGuests), nil
}

// ValidateStay checks a candidate stay against the property's booking rules
// without touching overlap or persistence.
func (s *Service) ValidateStay(ctx context.Context, propertyID string, checkIn, checkOut time.Time) error {
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return err
	}
	prop, err := s.properties.ByID(ctx, property.PropertyID(propertyID))
	if err != nil {
		return err
	}
	existing, err := s.activeStays(ctx, prop.ID, "")
	if err != nil {
		return err
	}
	return property.ValidateStay(prop, stay, existing)
}

func (s *Service) ensureNoOverlap(ctx context.Context, propertyID property.PropertyID, stay daterange.DateRange, exclude booking.BookingID) error {
	overlapping, err := s.bookings.Overlapping(ctx, propertyID, stay, exclude)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return booking.ErrOverlap
	}
	return nil
}

func (s *Service) activeStays(ctx context.Context, propertyID property.PropertyID, exclude booking.BookingID) ([]daterange.DateRange, error) {
	all, err := s.bookings.ForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	stays := make([]daterange.DateRange, 0, len(all))
	for _, b := range all {
		if b.ID == exclude || b.Status == booking.StatusCancelled {
			continue
		}
		stays = append(stays, b.Range)
	}
	return stays, nil
}

func (s *Service) flushEvents(ctx context.Context, b *booking.Booking) {
	for _, evt := range b.PendingEvents() {
		s.sink.Emit(ctx, evt)
	}
	b.ClearEvents()
	if s.logger != nil {
		s.logger.Info("booking saved", "booking_id", string(b.ID), "status", string(b.Status))
	}
}

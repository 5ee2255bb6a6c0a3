package booking

import (
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

// Snapshot mirrors the booking's public fields for event payloads.
type Snapshot struct {
	ID              BookingID           `json:"id"`
	PropertyID      property.PropertyID `json:"property_id"`
	GuestID         string              `json:"guest_id"`
	CheckInDate     time.Time           `json:"check_in_date"`
	CheckOutDate    time.Time           `json:"check_out_date"`
	NumGuests       int                 `json:"num_guests"`
	BaseTotal       money.Money         `json:"base_total"`
	FeesTotal       money.Money         `json:"fees_total"`
	TotalPrice      money.Money         `json:"total_price"`
	Status          Status              `json:"status"`
	SpecialRequests string              `json:"special_requests,omitempty"`
	BookedAt        time.Time           `json:"booking_date"`
}

func snapshot(b *Booking) Snapshot {
	return Snapshot{
		ID:              b.ID,
		PropertyID:      b.PropertyID,
		GuestID:         b.GuestID,
		CheckInDate:     b.Range.CheckIn,
		CheckOutDate:    b.Range.CheckOut,
		NumGuests:       b.NumGuests,
		BaseTotal:       b.BaseTotal,
		FeesTotal:       b.FeesTotal,
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		BookedAt:        b.BookedAt,
	}
}

type BookingCreated struct {
	Booking Snapshot  `json:"booking"`
	At      time.Time `json:"at"`
}

func (e BookingCreated) EventName() string     { return "booking_created" }
func (e BookingCreated) AggregateID() string   { return string(e.Booking.ID) }
func (e BookingCreated) OccurredAt() time.Time { return e.At }

type BookingUpdated struct {
	Booking Snapshot  `json:"booking"`
	At      time.Time `json:"at"`
}

func (e BookingUpdated) EventName() string     { return "booking_updated" }
func (e BookingUpdated) AggregateID() string   { return string(e.Booking.ID) }
func (e BookingUpdated) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	Booking Snapshot  `json:"booking"`
	At      time.Time `json:"at"`
}

func (e BookingCancelled) EventName() string     { return "booking_cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.Booking.ID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

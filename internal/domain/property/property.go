package property

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/shared/money"
)

var ErrPropertyNotFound = errors.New("property: not found")

type PropertyID string

// Property is a rentable unit together with its owner-configured pricing
// rules, booking rules and fees. The rule collections are loaded with the
// property and handed to the pricing engine explicitly; the engine itself
// never reaches back into storage.
type Property struct {
	ID            PropertyID
	Name          string
	Address       string
	OwnerID       string
	Bedrooms      int
	Bathrooms     float64
	MaxOccupancy  int
	NightlyRate   money.Money
	Description   string
	AllowGapStays bool
	DateAdded     time.Time

	PricingRules []PricingRule
	BookingRules []BookingRule
	Fees         []Fee
}

// Validate checks the property fields and every attached rule and fee.
// Rule misconfiguration is caught here, at the admin boundary, never at
// booking time.
func (p *Property) Validate() error {
	if p.Name == "" {
		return &ConfigError{Reason: "name is required"}
	}
	if p.MaxOccupancy <= 0 {
		return &ConfigError{Reason: "max occupancy must be positive"}
	}
	if p.NightlyRate.IsNegative() {
		return &ConfigError{Reason: "nightly rate cannot be negative"}
	}
	for _, r := range p.PricingRules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, r := range p.BookingRules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, f := range p.Fees {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type SearchParams struct {
	OwnerID   string
	MinGuests int
}

// Repository loads and stores properties with their rule collections.
// Deleting a property removes its rules and fees with it.
type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id PropertyID) error
	List(ctx context.Context, params SearchParams) ([]*Property, error)
}

package property

import (
	"fmt"

	"staybook/internal/domain/shared/money"
)

type FeeType string

const (
	FeePercentage FeeType = "percentage"
	FeeFixed      FeeType = "fixed"
)

type FeeApplies string

const (
	FeePerNight FeeApplies = "per_night"
	FeeOnce     FeeApplies = "once"
)

type DisplayStrategy string

const (
	DisplaySeparate     DisplayStrategy = "separate"
	DisplayIncorporated DisplayStrategy = "incorporated"
)

// Fee is a charge layered on top of the nightly rates. Amount is either a
// flat amount or a percentage of the stay's base total, depending on Type.
type Fee struct {
	ID               string
	Name             string
	Type             FeeType
	Applies          FeeApplies
	Display          DisplayStrategy
	Amount           money.Money
	IsExtraGuestFee  bool
	ExtraGuestThresh int
}

func (f Fee) Validate() error {
	switch f.Type {
	case FeePercentage, FeeFixed:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown fee type %q", f.Type)}
	}
	switch f.Applies {
	case FeePerNight, FeeOnce:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown fee application %q", f.Applies)}
	}
	switch f.Display {
	case DisplaySeparate, DisplayIncorporated:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown fee display strategy %q", f.Display)}
	}
	if f.Amount.IsNegative() {
		return &ConfigError{Reason: "fee amount cannot be negative"}
	}
	if f.IsExtraGuestFee && f.ExtraGuestThresh <= 0 {
		return &ConfigError{Reason: "extra guest fee requires a guest threshold"}
	}
	return nil
}

// Stay carries the inputs fee computation needs: length, party size and the
// pre-fee base total of the resolved nightly prices.
type Stay struct {
	Nights    int
	NumGuests int
	BaseTotal money.Money
}

// FeeAmount computes a single fee's contribution to the stay, rounded
// independently before it is summed with the others. The per-night and
// extra-guest multipliers compose when both conditions hold. Display
// strategy never changes the amount.
func FeeAmount(fee Fee, stay Stay) money.Money {
	var amount money.Money
	if fee.Type == FeePercentage {
		amount = stay.BaseTotal.ApplyPercent(fee.Amount.Decimal())
	} else {
		amount = fee.Amount
	}
	if fee.Applies == FeePerNight {
		amount = amount.MulInt(int64(stay.Nights))
	}
	if fee.IsExtraGuestFee && stay.NumGuests > fee.ExtraGuestThresh {
		amount = amount.MulInt(int64(stay.NumGuests - fee.ExtraGuestThresh))
	}
	return amount.Round()
}

// TotalFees sums every fee's rounded contribution and rounds the sum.
func TotalFees(fees []Fee, stay Stay) money.Money {
	total := money.Zero()
	for _, fee := range fees {
		total = total.Add(FeeAmount(fee, stay))
	}
	return total.Round()
}

// IncorporatedPerNight spreads the incorporated fees evenly across nights.
// Used only when presenting a per-night rate; totals are never derived from it.
func IncorporatedPerNight(fees []Fee, stay Stay) money.Money {
	if stay.Nights <= 0 {
		return money.Zero()
	}
	total := money.Zero()
	for _, fee := range fees {
		if fee.Display == DisplayIncorporated {
			total = total.Add(FeeAmount(fee, stay))
		}
	}
	return total.DivInt(int64(stay.Nights)).Round()
}

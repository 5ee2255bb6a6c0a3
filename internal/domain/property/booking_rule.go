package property

import (
	"fmt"
	"time"

	"staybook/internal/domain/shared/daterange"
)

type BookingRuleType string

const (
	RuleNoCheckIn     BookingRuleType = "no_checkin"
	RuleNoCheckOut    BookingRuleType = "no_checkout"
	RuleMinStay       BookingRuleType = "min_stay"
	RuleMinStayPeriod BookingRuleType = "min_stay_period"
)

// BookingRule restricts which stays a property accepts. DaysOfWeek uses the
// Monday=0 .. Sunday=6 convention.
type BookingRule struct {
	ID         string
	Type       BookingRuleType
	DaysOfWeek []int
	MinNights  int
	StartDate  time.Time
	EndDate    time.Time
}

func (r BookingRule) Validate() error {
	switch r.Type {
	case RuleNoCheckIn, RuleNoCheckOut:
		if len(r.DaysOfWeek) == 0 {
			return &ConfigError{Reason: "days of week must be specified for no check-in/check-out rules"}
		}
		for _, d := range r.DaysOfWeek {
			if d < 0 || d > 6 {
				return &ConfigError{Reason: fmt.Sprintf("day of week %d out of range", d)}
			}
		}
	case RuleMinStay:
		if r.MinNights <= 0 {
			return &ConfigError{Reason: "minimum nights must be specified for minimum stay rules"}
		}
	case RuleMinStayPeriod:
		if r.MinNights <= 0 {
			return &ConfigError{Reason: "minimum nights must be specified for minimum stay rules"}
		}
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			return &ConfigError{Reason: "start and end dates must be specified for minimum stay period rules"}
		}
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown booking rule type %q", r.Type)}
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.StartDate.After(r.EndDate) {
		return &ConfigError{Reason: "end date must be after start date"}
	}
	return nil
}

func (r BookingRule) forbidsDay(date time.Time) bool {
	wd := daterange.MondayWeekday(date)
	for _, d := range r.DaysOfWeek {
		if d == wd {
			return true
		}
	}
	return false
}

func (r BookingRule) coversCheckIn(checkIn time.Time) bool {
	return !checkIn.Before(r.StartDate) && !checkIn.After(r.EndDate)
}

// EffectiveMinStay resolves the minimum-night requirement for a candidate
// check-in date. A min_stay_period rule whose range contains the check-in
// replaces the property-wide min_stay rule outright; without any rule the
// minimum is one night.
func EffectiveMinStay(rules []BookingRule, checkIn time.Time) int {
	minNights := 1
	for _, rule := range rules {
		switch rule.Type {
		case RuleMinStay:
			minNights = rule.MinNights
		case RuleMinStayPeriod:
			if rule.coversCheckIn(checkIn) {
				return rule.MinNights
			}
		}
	}
	return minNights
}

// ValidateStay decides whether a candidate stay is eligible under the
// property's booking rules. existing carries the property's current
// non-cancelled bookings and is consulted only for the gap-stay exception;
// overlap against existing bookings is enforced separately at the
// persistence boundary.
//
// Checks run in order and the first failure wins: date order, no-check-in
// day, no-check-out day, then minimum stay with the gap-stay escape hatch.
func ValidateStay(p *Property, stay daterange.DateRange, existing []daterange.DateRange) error {
	if err := stay.Validate(); err != nil {
		return err
	}

	for _, rule := range p.BookingRules {
		if rule.Type == RuleNoCheckIn && rule.forbidsDay(stay.CheckIn) {
			return &RuleViolationError{
				Reason: fmt.Sprintf("check-in is not allowed on %ss for this property", stay.CheckIn.Weekday()),
			}
		}
	}
	for _, rule := range p.BookingRules {
		if rule.Type == RuleNoCheckOut && rule.forbidsDay(stay.CheckOut) {
			return &RuleViolationError{
				Reason: fmt.Sprintf("check-out is not allowed on %ss for this property", stay.CheckOut.Weekday()),
			}
		}
	}

	minNights := EffectiveMinStay(p.BookingRules, stay.CheckIn)
	nights := stay.Nights()
	if nights >= minNights {
		return nil
	}

	if p.AllowGapStays && fillsGapExactly(stay, existing) {
		return nil
	}
	return minStayViolation(minNights)
}

// fillsGapExactly reports whether the stay exactly fills the free interval
// between its nearest prior and nearest following bookings.
func fillsGapExactly(stay daterange.DateRange, existing []daterange.DateRange) bool {
	var prev, next *daterange.DateRange
	for i := range existing {
		b := existing[i]
		if !b.CheckOut.After(stay.CheckIn) {
			if prev == nil || b.CheckOut.After(prev.CheckOut) {
				prev = &existing[i]
			}
		}
		if !b.CheckIn.Before(stay.CheckOut) {
			if next == nil || b.CheckIn.Before(next.CheckIn) {
				next = &existing[i]
			}
		}
	}
	if prev == nil || next == nil {
		return false
	}
	gapNights := int(next.CheckIn.Sub(prev.CheckOut).Hours() / 24)
	return stay.Nights() == gapNights
}

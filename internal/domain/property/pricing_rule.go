package property

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

type PricingRuleType string

const (
	PricingWeekend  PricingRuleType = "weekend"
	PricingSeasonal PricingRuleType = "seasonal"
	PricingOverride PricingRuleType = "override"
)

// Weekend nights are Friday and Saturday in the Monday=0 convention.
var weekendDays = [...]int{4, 5}

// PricingRule adjusts the nightly rate for the dates it covers.
// Modifier is a percentage: 120 means +20%, 80 means -20%.
type PricingRule struct {
	ID        string
	Type      PricingRuleType
	StartDate time.Time
	EndDate   time.Time
	Modifier  decimal.Decimal
}

func (r PricingRule) Validate() error {
	switch r.Type {
	case PricingWeekend:
	case PricingSeasonal:
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			return &ConfigError{Reason: "seasonal pricing must have start and end dates"}
		}
	case PricingOverride:
		if r.StartDate.IsZero() {
			return &ConfigError{Reason: "override pricing must have a start date"}
		}
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown pricing rule type %q", r.Type)}
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.StartDate.After(r.EndDate) {
		return &ConfigError{Reason: "end date must be after start date"}
	}
	if r.Modifier.LessThanOrEqual(decimal.Zero) {
		return &ConfigError{Reason: "price modifier must be greater than 0"}
	}
	return nil
}

func (r PricingRule) displayName() string {
	switch r.Type {
	case PricingWeekend:
		return "Weekend Pricing"
	case PricingSeasonal:
		return "Seasonal Pricing"
	case PricingOverride:
		return "Override Pricing"
	}
	return string(r.Type)
}

func (r PricingRule) label() string {
	return fmt.Sprintf("%s: %s%%", r.displayName(), r.Modifier.String())
}

func (r PricingRule) appliesTo(date time.Time) bool {
	switch r.Type {
	case PricingOverride:
		return r.StartDate.Equal(date)
	case PricingSeasonal:
		return !date.Before(r.StartDate) && !date.After(r.EndDate)
	case PricingWeekend:
		wd := daterange.MondayWeekday(date)
		return wd == weekendDays[0] || wd == weekendDays[1]
	}
	return false
}

// PriceForNight resolves the nightly price for date given the property's
// pricing rules, returning the rounded price and a label naming the rule
// that fired.
//
// Overrides matching the exact date short-circuit everything else. Among the
// remaining applicable rules, seasonal outranks weekend regardless of
// magnitude, and within a type the highest modifier wins. With no applicable
// rule the base rate stands.
func PriceForNight(baseRate money.Money, rules []PricingRule, date time.Time) (money.Money, string) {
	date = daterange.Date(date)

	applicable := make([]PricingRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Type == PricingOverride && rule.appliesTo(date) {
			return baseRate.ApplyPercent(rule.Modifier).Round(), rule.label()
		}
		if rule.Type != PricingOverride && rule.appliesTo(date) {
			applicable = append(applicable, rule)
		}
	}

	if len(applicable) > 0 {
		sort.SliceStable(applicable, func(i, j int) bool {
			si, sj := applicable[i].Type == PricingSeasonal, applicable[j].Type == PricingSeasonal
			if si != sj {
				return si
			}
			return applicable[i].Modifier.GreaterThan(applicable[j].Modifier)
		})
		winner := applicable[0]
		return baseRate.ApplyPercent(winner.Modifier).Round(), winner.label()
	}

	return baseRate.Round(), "Base rate"
}

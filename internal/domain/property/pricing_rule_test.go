package property_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pct(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestPriceForNightBaseRateFallback(t *testing.T) {
	price, label := property.PriceForNight(money.FromInt(100), nil, day(2026, time.July, 1))
	assert.Equal(t, "100.00", price.String())
	assert.Equal(t, "Base rate", label)
}

func TestPriceForNightWeekend(t *testing.T) {
	rules := []property.PricingRule{
		{Type: property.PricingWeekend, Modifier: pct(110)},
	}

	// 2026-07-03 is a Friday, 2026-07-05 a Sunday.
	price, label := property.PriceForNight(money.FromInt(100), rules, day(2026, time.July, 3))
	assert.Equal(t, "110.00", price.String())
	assert.Equal(t, "Weekend Pricing: 110%", label)

	price, label = property.PriceForNight(money.FromInt(100), rules, day(2026, time.July, 5))
	assert.Equal(t, "100.00", price.String())
	assert.Equal(t, "Base rate", label)
}

func TestPriceForNightSeasonalOutranksWeekend(t *testing.T) {
	rules := []property.PricingRule{
		{Type: property.PricingWeekend, Modifier: pct(150)},
		{Type: property.PricingSeasonal, StartDate: day(2026, time.July, 1), EndDate: day(2026, time.July, 31), Modifier: pct(90)},
	}

	// Friday inside the season: the seasonal rule wins even with the smaller modifier.
	price, label := property.PriceForNight(money.FromInt(100), rules, day(2026, time.July, 3))
	assert.Equal(t, "90.00", price.String())
	assert.Equal(t, "Seasonal Pricing: 90%", label)
}

func TestPriceForNightOverrideShortCircuits(t *testing.T) {
	rules := []property.PricingRule{
		{Type: property.PricingSeasonal, StartDate: day(2026, time.July, 1), EndDate: day(2026, time.July, 31), Modifier: pct(200)},
		{Type: property.PricingOverride, StartDate: day(2026, time.July, 3), Modifier: pct(120)},
	}

	price, label := property.PriceForNight(money.FromInt(100), rules, day(2026, time.July, 3))
	assert.Equal(t, "120.00", price.String())
	assert.Equal(t, "Override Pricing: 120%", label)

	// The override binds only its exact date.
	price, label = property.PriceForNight(money.FromInt(100), rules, day(2026, time.July, 4))
	assert.Equal(t, "200.00", price.String())
	assert.Equal(t, "Seasonal Pricing: 200%", label)
}

func TestPriceForNightHighestModifierWinsWithinType(t *testing.T) {
	rules := []property.PricingRule{
		{Type: property.PricingSeasonal, StartDate: day(2026, time.July, 1), EndDate: day(2026, time.July, 31), Modifier: pct(105)},
		{Type: property.PricingSeasonal, StartDate: day(2026, time.June, 15), EndDate: day(2026, time.August, 15), Modifier: pct(130)},
	}

	price, label := property.PriceForNight(money.FromInt(100), rules, day(2026, time.July, 10))
	assert.Equal(t, "130.00", price.String())
	assert.Equal(t, "Seasonal Pricing: 130%", label)
}

func TestPriceForNightRoundsHalfUp(t *testing.T) {
	rules := []property.PricingRule{
		{Type: property.PricingSeasonal, StartDate: day(2026, time.July, 1), EndDate: day(2026, time.July, 31), Modifier: pct(95)},
	}
	price, _ := property.PriceForNight(money.MustFromString("99.95"), rules, day(2026, time.July, 10))
	// 99.95 * 0.95 = 94.9525 -> 94.95
	assert.Equal(t, "94.95", price.String())

	price, _ = property.PriceForNight(money.MustFromString("99.99"), rules, day(2026, time.July, 10))
	// 99.99 * 0.95 = 94.9905 -> 94.99
	assert.Equal(t, "94.99", price.String())
}

func TestPricingRuleValidate(t *testing.T) {
	var cfgErr *property.ConfigError

	err := property.PricingRule{Type: property.PricingSeasonal, Modifier: pct(110)}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.PricingRule{Type: property.PricingOverride, Modifier: pct(110)}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.PricingRule{Type: property.PricingWeekend, Modifier: pct(0)}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.PricingRule{Type: "holiday", Modifier: pct(110)}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.PricingRule{
		Type:      property.PricingSeasonal,
		StartDate: day(2026, time.July, 31),
		EndDate:   day(2026, time.July, 1),
		Modifier:  pct(110),
	}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	assert.NoError(t, property.PricingRule{Type: property.PricingWeekend, Modifier: pct(110)}.Validate())
}

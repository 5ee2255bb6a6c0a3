package property_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

func stay(t *testing.T, checkIn, checkOut time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(checkIn, checkOut)
	require.NoError(t, err)
	return dr
}

func testProperty(rules ...property.BookingRule) *property.Property {
	return &property.Property{
		ID:           "prop-1",
		Name:         "Seaside Cottage",
		MaxOccupancy: 6,
		NightlyRate:  money.FromInt(100),
		BookingRules: rules,
	}
}

func TestValidateStayNoRules(t *testing.T) {
	p := testProperty()
	err := property.ValidateStay(p, stay(t, day(2026, time.July, 1), day(2026, time.July, 2)), nil)
	assert.NoError(t, err)
}

func TestValidateStayNoCheckIn(t *testing.T) {
	// Sunday is day 6 in the Monday=0 convention; 2026-07-05 is a Sunday.
	p := testProperty(property.BookingRule{Type: property.RuleNoCheckIn, DaysOfWeek: []int{6}})

	err := property.ValidateStay(p, stay(t, day(2026, time.July, 5), day(2026, time.July, 8)), nil)
	var violation *property.RuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "check-in is not allowed on Sundays")

	assert.NoError(t, property.ValidateStay(p, stay(t, day(2026, time.July, 6), day(2026, time.July, 8)), nil))
}

func TestValidateStayNoCheckOut(t *testing.T) {
	// 2026-07-06 is a Monday.
	p := testProperty(property.BookingRule{Type: property.RuleNoCheckOut, DaysOfWeek: []int{0}})

	err := property.ValidateStay(p, stay(t, day(2026, time.July, 3), day(2026, time.July, 6)), nil)
	var violation *property.RuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "check-out is not allowed on Mondays")

	assert.NoError(t, property.ValidateStay(p, stay(t, day(2026, time.July, 3), day(2026, time.July, 7)), nil))
}

func TestValidateStayMinStay(t *testing.T) {
	p := testProperty(property.BookingRule{Type: property.RuleMinStay, MinNights: 3})

	err := property.ValidateStay(p, stay(t, day(2026, time.July, 1), day(2026, time.July, 3)), nil)
	var violation *property.RuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 3, violation.MinNights)

	assert.NoError(t, property.ValidateStay(p, stay(t, day(2026, time.July, 1), day(2026, time.July, 4)), nil))
}

func TestMinStayPeriodReplacesMinStay(t *testing.T) {
	rules := []property.BookingRule{
		{Type: property.RuleMinStay, MinNights: 2},
		{
			Type:      property.RuleMinStayPeriod,
			MinNights: 7,
			StartDate: day(2026, time.July, 1),
			EndDate:   day(2026, time.August, 31),
		},
	}

	// Inside the period the 7-night requirement replaces the 2-night one.
	assert.Equal(t, 7, property.EffectiveMinStay(rules, day(2026, time.July, 15)))
	// Outside the period the property-wide minimum applies.
	assert.Equal(t, 2, property.EffectiveMinStay(rules, day(2026, time.June, 15)))
	// No rules at all means one night.
	assert.Equal(t, 1, property.EffectiveMinStay(nil, day(2026, time.June, 15)))

	p := testProperty(rules...)
	err := property.ValidateStay(p, stay(t, day(2026, time.July, 10), day(2026, time.July, 14)), nil)
	var violation *property.RuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 7, violation.MinNights)
}

func TestGapStayException(t *testing.T) {
	p := testProperty(property.BookingRule{Type: property.RuleMinStay, MinNights: 5})
	p.AllowGapStays = true

	existing := []daterange.DateRange{
		stay(t, day(2026, time.January, 1), day(2026, time.January, 3)),
		stay(t, day(2026, time.January, 6), day(2026, time.January, 10)),
	}

	// Three nights exactly fill the gap between the two bookings.
	assert.NoError(t, property.ValidateStay(p, stay(t, day(2026, time.January, 3), day(2026, time.January, 6)), existing))

	// A shorter stay leaves part of the gap open and stays rejected.
	err := property.ValidateStay(p, stay(t, day(2026, time.January, 3), day(2026, time.January, 5)), existing)
	var violation *property.RuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 5, violation.MinNights)
}

func TestGapStayRequiresBothNeighbours(t *testing.T) {
	p := testProperty(property.BookingRule{Type: property.RuleMinStay, MinNights: 5})
	p.AllowGapStays = true

	onlyAfter := []daterange.DateRange{
		stay(t, day(2026, time.January, 6), day(2026, time.January, 10)),
	}
	err := property.ValidateStay(p, stay(t, day(2026, time.January, 3), day(2026, time.January, 6)), onlyAfter)
	var violation *property.RuleViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestGapStayDisabledByDefault(t *testing.T) {
	p := testProperty(property.BookingRule{Type: property.RuleMinStay, MinNights: 5})

	existing := []daterange.DateRange{
		stay(t, day(2026, time.January, 1), day(2026, time.January, 3)),
		stay(t, day(2026, time.January, 6), day(2026, time.January, 10)),
	}
	err := property.ValidateStay(p, stay(t, day(2026, time.January, 3), day(2026, time.January, 6)), existing)
	var violation *property.RuleViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestGapStayPicksNearestNeighbours(t *testing.T) {
	p := testProperty(property.BookingRule{Type: property.RuleMinStay, MinNights: 5})
	p.AllowGapStays = true

	existing := []daterange.DateRange{
		stay(t, day(2025, time.December, 20), day(2025, time.December, 25)),
		stay(t, day(2026, time.January, 1), day(2026, time.January, 3)),
		stay(t, day(2026, time.January, 6), day(2026, time.January, 10)),
		stay(t, day(2026, time.January, 20), day(2026, time.January, 25)),
	}

	// The nearest bookings bound the gap, not the outermost ones.
	assert.NoError(t, property.ValidateStay(p, stay(t, day(2026, time.January, 3), day(2026, time.January, 6)), existing))
}

func TestBookingRuleValidate(t *testing.T) {
	var cfgErr *property.ConfigError

	err := property.BookingRule{Type: property.RuleNoCheckIn}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.BookingRule{Type: property.RuleNoCheckIn, DaysOfWeek: []int{7}}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.BookingRule{Type: property.RuleMinStay}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.BookingRule{Type: property.RuleMinStayPeriod, MinNights: 3}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	err = property.BookingRule{Type: "blackout"}.Validate()
	assert.ErrorAs(t, err, &cfgErr)

	assert.NoError(t, property.BookingRule{Type: property.RuleNoCheckOut, DaysOfWeek: []int{0, 6}}.Validate())
	assert.NoError(t, property.BookingRule{
		Type:      property.RuleMinStayPeriod,
		MinNights: 3,
		StartDate: day(2026, time.July, 1),
		EndDate:   day(2026, time.July, 31),
	}.Validate())
}

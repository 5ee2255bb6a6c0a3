package property_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

func TestFeeAmountFixedOnce(t *testing.T) {
	fee := property.Fee{Name: "Cleaning", Type: property.FeeFixed, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.MustFromString("75.00")}
	got := property.FeeAmount(fee, property.Stay{Nights: 4, NumGuests: 2, BaseTotal: money.FromInt(400)})
	assert.Equal(t, "75.00", got.String())
}

func TestFeeAmountFixedPerNight(t *testing.T) {
	fee := property.Fee{Name: "Resort", Type: property.FeeFixed, Applies: property.FeePerNight, Display: property.DisplaySeparate, Amount: money.MustFromString("12.50")}
	got := property.FeeAmount(fee, property.Stay{Nights: 4, NumGuests: 2, BaseTotal: money.FromInt(400)})
	assert.Equal(t, "50.00", got.String())
}

func TestFeeAmountPercentageOfBaseTotal(t *testing.T) {
	fee := property.Fee{Name: "Service", Type: property.FeePercentage, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.FromInt(10)}
	got := property.FeeAmount(fee, property.Stay{Nights: 4, NumGuests: 2, BaseTotal: money.MustFromString("333.33")})
	// 10% of 333.33 = 33.333 -> 33.33
	assert.Equal(t, "33.33", got.String())
}

func TestFeeAmountExtraGuest(t *testing.T) {
	fee := property.Fee{
		Name:             "Extra guest",
		Type:             property.FeeFixed,
		Applies:          property.FeeOnce,
		Display:          property.DisplaySeparate,
		Amount:           money.FromInt(10),
		IsExtraGuestFee:  true,
		ExtraGuestThresh: 4,
	}

	// At or below the threshold the extra-guest multiplier stays off.
	got := property.FeeAmount(fee, property.Stay{Nights: 3, NumGuests: 4, BaseTotal: money.FromInt(300)})
	assert.Equal(t, "10.00", got.String())

	got = property.FeeAmount(fee, property.Stay{Nights: 3, NumGuests: 6, BaseTotal: money.FromInt(300)})
	assert.Equal(t, "20.00", got.String())
}

func TestFeeAmountExtraGuestPerNightComposes(t *testing.T) {
	fee := property.Fee{
		Name:             "Extra guest",
		Type:             property.FeeFixed,
		Applies:          property.FeePerNight,
		Display:          property.DisplaySeparate,
		Amount:           money.FromInt(10),
		IsExtraGuestFee:  true,
		ExtraGuestThresh: 4,
	}
	// 10 * 3 nights * 1 extra guest = 30.
	got := property.FeeAmount(fee, property.Stay{Nights: 3, NumGuests: 5, BaseTotal: money.FromInt(300)})
	assert.Equal(t, "30.00", got.String())
}

func TestTotalFeesRoundsEachIndependently(t *testing.T) {
	fees := []property.Fee{
		{Name: "Service", Type: property.FeePercentage, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.MustFromString("3.333")},
		{Name: "Tax", Type: property.FeePercentage, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.MustFromString("3.333")},
	}
	stay := property.Stay{Nights: 2, NumGuests: 2, BaseTotal: money.MustFromString("100.00")}

	// Each fee is 3.333 -> 3.33 on its own; the total is 6.66, not round(6.666).
	assert.Equal(t, "6.66", property.TotalFees(fees, stay).String())
}

func TestIncorporatedPerNight(t *testing.T) {
	fees := []property.Fee{
		{Name: "Cleaning", Type: property.FeeFixed, Applies: property.FeeOnce, Display: property.DisplayIncorporated, Amount: money.FromInt(100)},
		{Name: "Service", Type: property.FeeFixed, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.FromInt(50)},
	}
	stay := property.Stay{Nights: 3, NumGuests: 2, BaseTotal: money.FromInt(300)}

	// Only the incorporated fee spreads: 100 / 3 nights.
	assert.Equal(t, "33.33", property.IncorporatedPerNight(fees, stay).String())
	// Totals still include both fees.
	assert.Equal(t, "150.00", property.TotalFees(fees, stay).String())
}

func TestFeeValidate(t *testing.T) {
	var cfgErr *property.ConfigError

	base := property.Fee{Name: "Cleaning", Type: property.FeeFixed, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.FromInt(10)}
	assert.NoError(t, base.Validate())

	bad := base
	bad.Type = "tiered"
	assert.ErrorAs(t, bad.Validate(), &cfgErr)

	bad = base
	bad.Applies = "weekly"
	assert.ErrorAs(t, bad.Validate(), &cfgErr)

	bad = base
	bad.Display = "hidden"
	assert.ErrorAs(t, bad.Validate(), &cfgErr)

	bad = base
	bad.Amount = money.MustFromString("-1")
	assert.ErrorAs(t, bad.Validate(), &cfgErr)

	bad = base
	bad.IsExtraGuestFee = true
	assert.ErrorAs(t, bad.Validate(), &cfgErr)
}

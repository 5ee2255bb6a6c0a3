package pricing

import (
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

// Night is one line of a stay's price breakdown.
type Night struct {
	Date        time.Time   `json:"date"`
	Price       money.Money `json:"price"`
	RuleApplied string      `json:"rule_applied"`
}

// Quote is the full price computation for a candidate stay. BaseTotal is
// the rounded sum of the rounded nightly prices, FeesTotal the rounded fee
// sum, and Total always equals BaseTotal + FeesTotal.
//
// IncorporatedPerNight is a display figure only: the incorporated fees
// spread evenly across nights. It never feeds into Total.
type Quote struct {
	Breakdown            []Night     `json:"breakdown"`
	BaseTotal            money.Money `json:"base_total"`
	FeesTotal            money.Money `json:"fees_total"`
	Total                money.Money `json:"total_price"`
	IncorporatedPerNight money.Money `json:"incorporated_per_night"`
}

// Price computes the quote for a stay. Pure: same property rules and dates
// always produce the same quote, and nothing is persisted.
func Price(p *property.Property, stay daterange.DateRange, numGuests int) Quote {
	nights := stay.Dates()
	breakdown := make([]Night, 0, len(nights))
	baseTotal := money.Zero()
	for _, date := range nights {
		price, rule := property.PriceForNight(p.NightlyRate, p.PricingRules, date)
		breakdown = append(breakdown, Night{Date: date, Price: price, RuleApplied: rule})
		baseTotal = baseTotal.Add(price)
	}
	baseTotal = baseTotal.Round()

	feeStay := property.Stay{Nights: stay.Nights(), NumGuests: numGuests, BaseTotal: baseTotal}
	feesTotal := property.TotalFees(p.Fees, feeStay)

	return Quote{
		Breakdown:            breakdown,
		BaseTotal:            baseTotal,
		FeesTotal:            feesTotal,
		Total:                baseTotal.Add(feesTotal),
		IncorporatedPerNight: property.IncorporatedPerNight(p.Fees, feeStay),
	}
}

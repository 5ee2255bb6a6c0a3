package ginserver

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

const dateLayout = "2006-01-02"

func parseDate(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: use YYYY-MM-DD", field)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

type pricingRuleDTO struct {
	ID            string `json:"id,omitempty"`
	RuleType      string `json:"rule_type"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	PriceModifier string `json:"price_modifier"`
}

type bookingRuleDTO struct {
	ID         string `json:"id,omitempty"`
	RuleType   string `json:"rule_type"`
	DaysOfWeek []int  `json:"days_of_week,omitempty"`
	MinNights  int    `json:"min_nights,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

type feeDTO struct {
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name"`
	FeeType             string `json:"fee_type"`
	Applies             string `json:"applies"`
	DisplayStrategy     string `json:"display_strategy"`
	Amount              string `json:"amount"`
	IsExtraGuestFee     bool   `json:"is_extra_guest_fee"`
	ExtraGuestThreshold int    `json:"extra_guest_threshold,omitempty"`
}

type propertyDTO struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	OwnerID       string           `json:"owner_id"`
	Bedrooms      int              `json:"bedrooms"`
	Bathrooms     float64          `json:"bathrooms"`
	MaxOccupancy  int              `json:"max_occupancy"`
	NightlyRate   string           `json:"nightly_rate"`
	Description   string           `json:"description,omitempty"`
	AllowGapStays bool             `json:"allow_gap_stays"`
	DateAdded     string           `json:"date_added,omitempty"`
	PricingRules  []pricingRuleDTO `json:"pricing_rules,omitempty"`
	BookingRules  []bookingRuleDTO `json:"booking_rules,omitempty"`
	Fees          []feeDTO         `json:"fees,omitempty"`
}

func (dto propertyDTO) toAggregate() (*property.Property, error) {
	rate, err := decimal.NewFromString(dto.NightlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid nightly_rate: %w", err)
	}
	p := &property.Property{
		ID:            property.PropertyID(dto.ID),
		Name:          dto.Name,
		Address:       dto.Address,
		OwnerID:       dto.OwnerID,
		Bedrooms:      dto.Bedrooms,
		Bathrooms:     dto.Bathrooms,
		MaxOccupancy:  dto.MaxOccupancy,
		NightlyRate:   money.New(rate),
		Description:   dto.Description,
		AllowGapStays: dto.AllowGapStays,
	}
	for _, r := range dto.PricingRules {
		mod, err := decimal.NewFromString(r.PriceModifier)
		if err != nil {
			return nil, fmt.Errorf("invalid price_modifier: %w", err)
		}
		rule := property.PricingRule{
			ID:       r.ID,
			Type:     property.PricingRuleType(r.RuleType),
			Modifier: mod,
		}
		if r.StartDate != "" {
			if rule.StartDate, err = parseDate(r.StartDate, "start_date"); err != nil {
				return nil, err
			}
		}
		if r.EndDate != "" {
			if rule.EndDate, err = parseDate(r.EndDate, "end_date"); err != nil {
				return nil, err
			}
		}
		p.PricingRules = append(p.PricingRules, rule)
	}
	for _, r := range dto.BookingRules {
		rule := property.BookingRule{
			ID:         r.ID,
			Type:       property.BookingRuleType(r.RuleType),
			DaysOfWeek: r.DaysOfWeek,
			MinNights:  r.MinNights,
		}
		var err error
		if r.StartDate != "" {
			if rule.StartDate, err = parseDate(r.StartDate, "start_date"); err != nil {
				return nil, err
			}
		}
		if r.EndDate != "" {
			if rule.EndDate, err = parseDate(r.EndDate, "end_date"); err != nil {
				return nil, err
			}
		}
		p.BookingRules = append(p.BookingRules, rule)
	}
	for _, f := range dto.Fees {
		amount, err := decimal.NewFromString(f.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid fee amount: %w", err)
		}
		p.Fees = append(p.Fees, property.Fee{
			ID:               f.ID,
			Name:             f.Name,
			Type:             property.FeeType(f.FeeType),
			Applies:          property.FeeApplies(f.Applies),
			Display:          property.DisplayStrategy(f.DisplayStrategy),
			Amount:           money.New(amount),
			IsExtraGuestFee:  f.IsExtraGuestFee,
			ExtraGuestThresh: f.ExtraGuestThreshold,
		})
	}
	return p, nil
}

func propertyToDTO(p *property.Property) propertyDTO {
	dto := propertyDTO{
		ID:            string(p.ID),
		Name:          p.Name,
		Address:       p.Address,
		OwnerID:       p.OwnerID,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		MaxOccupancy:  p.MaxOccupancy,
		NightlyRate:   p.NightlyRate.String(),
		Description:   p.Description,
		AllowGapStays: p.AllowGapStays,
		DateAdded:     formatDate(p.DateAdded),
	}
	for _, r := range p.PricingRules {
		dto.PricingRules = append(dto.PricingRules, pricingRuleDTO{
			ID:            r.ID,
			RuleType:      string(r.Type),
			StartDate:     formatDate(r.StartDate),
			EndDate:       formatDate(r.EndDate),
			PriceModifier: r.Modifier.String(),
		})
	}
	for _, r := range p.BookingRules {
		dto.BookingRules = append(dto.BookingRules, bookingRuleDTO{
			ID:         r.ID,
			RuleType:   string(r.Type),
			DaysOfWeek: r.DaysOfWeek,
			MinNights:  r.MinNights,
			StartDate:  formatDate(r.StartDate),
			EndDate:    formatDate(r.EndDate),
		})
	}
	for _, f := range p.Fees {
		dto.Fees = append(dto.Fees, feeDTO{
			ID:                  f.ID,
			Name:                f.Name,
			FeeType:             string(f.Type),
			Applies:             string(f.Applies),
			DisplayStrategy:     string(f.Display),
			Amount:              f.Amount.String(),
			IsExtraGuestFee:     f.IsExtraGuestFee,
			ExtraGuestThreshold: f.ExtraGuestThresh,
		})
	}
	return dto
}

type bookingDTO struct {
	ID              string `json:"id"`
	PropertyID      string `json:"property_id"`
	GuestID         string `json:"guest_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	NumGuests       int    `json:"num_guests"`
	BaseTotal       string `json:"base_total"`
	FeesTotal       string `json:"fees_total"`
	TotalPrice      string `json:"total_price"`
	Status          string `json:"status"`
	SpecialRequests string `json:"special_requests,omitempty"`
	BookingDate     string `json:"booking_date"`
}

func bookingToDTO(b *booking.Booking) bookingDTO {
	return bookingDTO{
		ID:              string(b.ID),
		PropertyID:      string(b.PropertyID),
		GuestID:         b.GuestID,
		CheckInDate:     formatDate(b.Range.CheckIn),
		CheckOutDate:    formatDate(b.Range.CheckOut),
		NumGuests:       b.NumGuests,
		BaseTotal:       b.BaseTotal.String(),
		FeesTotal:       b.FeesTotal.String(),
		TotalPrice:      b.TotalPrice.String(),
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		BookingDate:     b.BookedAt.UTC().Format(time.RFC3339),
	}
}

type quoteNightDTO struct {
	Date        string `json:"date"`
	Price       string `json:"price"`
	RuleApplied string `json:"rule_applied"`
}

type quoteDTO struct {
	Breakdown            []quoteNightDTO `json:"breakdown"`
	BaseTotal            string          `json:"base_total"`
	FeesTotal            string          `json:"fees_total"`
	TotalPrice           string          `json:"total_price"`
	IncorporatedPerNight string          `json:"incorporated_per_night"`
}

func quoteToDTO(q pricing.Quote) quoteDTO {
	dto := quoteDTO{
		Breakdown:            make([]quoteNightDTO, 0, len(q.Breakdown)),
		BaseTotal:            q.BaseTotal.String(),
		FeesTotal:            q.FeesTotal.String(),
		TotalPrice:           q.Total.String(),
		IncorporatedPerNight: q.IncorporatedPerNight.String(),
	}
	for _, n := range q.Breakdown {
		dto.Breakdown = append(dto.Breakdown, quoteNightDTO{
			Date:        formatDate(n.Date),
			Price:       n.Price.String(),
			RuleApplied: n.RuleApplied,
		})
	}
	return dto
}

package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

// PropertyRepository stores each property as one document with its pricing
// rules, booking rules and fees embedded, so deleting the property removes
// them with it.
type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("properties")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperty.ErrPropertyNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := newPropertyDocument(p)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *PropertyRepository) Delete(ctx context.Context, id domainproperty.PropertyID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainproperty.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) List(ctx context.Context, params domainproperty.SearchParams) ([]*domainproperty.Property, error) {
	filter := bson.M{}
	if params.OwnerID != "" {
		filter["owner_id"] = params.OwnerID
	}
	if params.MinGuests > 0 {
		filter["max_occupancy"] = bson.M{"$gte": params.MinGuests}
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainproperty.Property
	for cur.Next(ctx) {
		var doc propertyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

type propertyDocument struct {
	ID            string                `bson:"_id"`
	Name          string                `bson:"name"`
	Address       string                `bson:"address"`
	OwnerID       string                `bson:"owner_id"`
	Bedrooms      int                   `bson:"bedrooms"`
	Bathrooms     float64               `bson:"bathrooms"`
	MaxOccupancy  int                   `bson:"max_occupancy"`
	NightlyRate   string                `bson:"nightly_rate"`
	Description   string                `bson:"description"`
	AllowGapStays bool                  `bson:"allow_gap_stays"`
	DateAdded     int64                 `bson:"date_added"`
	PricingRules  []pricingRuleDocument `bson:"pricing_rules"`
	BookingRules  []bookingRuleDocument `bson:"booking_rules"`
	Fees          []feeDocument         `bson:"fees"`
}

type pricingRuleDocument struct {
	ID        string `bson:"id"`
	Type      string `bson:"rule_type"`
	StartDate int64  `bson:"start_date,omitempty"`
	EndDate   int64  `bson:"end_date,omitempty"`
	Modifier  string `bson:"price_modifier"`
}

type bookingRuleDocument struct {
	ID         string `bson:"id"`
	Type       string `bson:"rule_type"`
	DaysOfWeek []int  `bson:"days_of_week,omitempty"`
	MinNights  int    `bson:"min_nights,omitempty"`
	StartDate  int64  `bson:"start_date,omitempty"`
	EndDate    int64  `bson:"end_date,omitempty"`
}

type feeDocument struct {
	ID               string `bson:"id"`
	Name             string `bson:"name"`
	Type             string `bson:"fee_type"`
	Applies          string `bson:"applies"`
	Display          string `bson:"display_strategy"`
	Amount           string `bson:"amount"`
	IsExtraGuestFee  bool   `bson:"is_extra_guest_fee"`
	ExtraGuestThresh int    `bson:"extra_guest_threshold,omitempty"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	doc := propertyDocument{
		ID:            string(p.ID),
		Name:          p.Name,
		Address:       p.Address,
		OwnerID:       p.OwnerID,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		MaxOccupancy:  p.MaxOccupancy,
		NightlyRate:   p.NightlyRate.Decimal().String(),
		Description:   p.Description,
		AllowGapStays: p.AllowGapStays,
		DateAdded:     p.DateAdded.UnixMilli(),
		PricingRules:  make([]pricingRuleDocument, 0, len(p.PricingRules)),
		BookingRules:  make([]bookingRuleDocument, 0, len(p.BookingRules)),
		Fees:          make([]feeDocument, 0, len(p.Fees)),
	}
	for _, r := range p.PricingRules {
		doc.PricingRules = append(doc.PricingRules, pricingRuleDocument{
			ID:        r.ID,
			Type:      string(r.Type),
			StartDate: timeToMillis(r.StartDate),
			EndDate:   timeToMillis(r.EndDate),
			Modifier:  r.Modifier.String(),
		})
	}
	for _, r := range p.BookingRules {
		doc.BookingRules = append(doc.BookingRules, bookingRuleDocument{
			ID:         r.ID,
			Type:       string(r.Type),
			DaysOfWeek: r.DaysOfWeek,
			MinNights:  r.MinNights,
			StartDate:  timeToMillis(r.StartDate),
			EndDate:    timeToMillis(r.EndDate),
		})
	}
	for _, f := range p.Fees {
		doc.Fees = append(doc.Fees, feeDocument{
			ID:               f.ID,
			Name:             f.Name,
			Type:             string(f.Type),
			Applies:          string(f.Applies),
			Display:          string(f.Display),
			Amount:           f.Amount.Decimal().String(),
			IsExtraGuestFee:  f.IsExtraGuestFee,
			ExtraGuestThresh: f.ExtraGuestThresh,
		})
	}
	return doc
}

func (d propertyDocument) toAggregate() (*domainproperty.Property, error) {
	rate, err := decimal.NewFromString(d.NightlyRate)
	if err != nil {
		return nil, err
	}
	p := &domainproperty.Property{
		ID:            domainproperty.PropertyID(d.ID),
		Name:          d.Name,
		Address:       d.Address,
		OwnerID:       d.OwnerID,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		MaxOccupancy:  d.MaxOccupancy,
		NightlyRate:   money.New(rate),
		Description:   d.Description,
		AllowGapStays: d.AllowGapStays,
		DateAdded:     millisToTime(d.DateAdded),
	}
	for _, r := range d.PricingRules {
		mod, err := decimal.NewFromString(r.Modifier)
		if err != nil {
			return nil, err
		}
		p.PricingRules = append(p.PricingRules, domainproperty.PricingRule{
			ID:        r.ID,
			Type:      domainproperty.PricingRuleType(r.Type),
			StartDate: millisToTime(r.StartDate),
			EndDate:   millisToTime(r.EndDate),
			Modifier:  mod,
		})
	}
	for _, r := range d.BookingRules {
		p.BookingRules = append(p.BookingRules, domainproperty.BookingRule{
			ID:         r.ID,
			Type:       domainproperty.BookingRuleType(r.Type),
			DaysOfWeek: r.DaysOfWeek,
			MinNights:  r.MinNights,
			StartDate:  millisToTime(r.StartDate),
			EndDate:    millisToTime(r.EndDate),
		})
	}
	for _, f := range d.Fees {
		amount, err := decimal.NewFromString(f.Amount)
		if err != nil {
			return nil, err
		}
		p.Fees = append(p.Fees, domainproperty.Fee{
			ID:               f.ID,
			Name:             f.Name,
			Type:             domainproperty.FeeType(f.Type),
			Applies:          domainproperty.FeeApplies(f.Applies),
			Display:          domainproperty.DisplayStrategy(f.Display),
			Amount:           money.New(amount),
			IsExtraGuestFee:  f.IsExtraGuestFee,
			ExtraGuestThresh: f.ExtraGuestThresh,
		})
	}
	return p, nil
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

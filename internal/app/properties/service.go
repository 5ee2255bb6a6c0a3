package properties

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/events"
)

// Service is the property admin surface: CRUD over properties and their
// rule collections, with configuration validated at the boundary and
// property_created/property_updated emitted after successful saves.
type Service struct {
	properties property.Repository
	sink       events.Sink
	logger     *slog.Logger
}

func NewService(properties property.Repository, sink events.Sink, logger *slog.Logger) *Service {
	return &Service{properties: properties, sink: sink, logger: logger}
}

func (s *Service) Create(ctx context.Context, p *property.Property) (*property.Property, error) {
	if p.ID == "" {
		p.ID = property.PropertyID(uuid.NewString())
	}
	assignRuleIDs(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.DateAdded = time.Now().UTC()
	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}
	s.sink.Emit(ctx, property.PropertyCreated{Property: p, At: p.DateAdded})
	if s.logger != nil {
		s.logger.Info("property created", "property_id", string(p.ID))
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *property.Property) (*property.Property, error) {
	current, err := s.properties.ByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.DateAdded = current.DateAdded
	assignRuleIDs(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}
	s.sink.Emit(ctx, property.PropertyUpdated{Property: p, At: time.Now().UTC()})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id property.PropertyID) (*property.Property, error) {
	return s.properties.ByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id property.PropertyID) error {
	return s.properties.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, params property.SearchParams) ([]*property.Property, error) {
	return s.properties.List(ctx, params)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*property.Property, error) {
	return s.properties.List(ctx, property.SearchParams{OwnerID: ownerID})
}

func assignRuleIDs(p *property.Property) {
	for i := range p.PricingRules {
		if p.PricingRules[i].ID == "" {
			p.PricingRules[i].ID = uuid.NewString()
		}
	}
	for i := range p.BookingRules {
		if p.BookingRules[i].ID == "" {
			p.BookingRules[i].ID = uuid.NewString()
		}
	}
	for i := range p.Fees {
		if p.Fees[i].ID == "" {
			p.Fees[i].ID = uuid.NewString()
		}
	}
}

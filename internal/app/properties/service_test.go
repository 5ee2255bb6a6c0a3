package properties_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/app/properties"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra/storage/memory"
)

type recordingSink struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (s *recordingSink) Emit(ctx context.Context, event events.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventName())
	}
	return out
}

func newService() (*properties.Service, *memory.PropertyRepository, *recordingSink) {
	repo := memory.NewPropertyRepository()
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return properties.NewService(repo, sink, logger), repo, sink
}

func validProperty() *property.Property {
	return &property.Property{
		Name:         "Seaside Cottage",
		OwnerID:      "owner-1",
		MaxOccupancy: 6,
		NightlyRate:  money.FromInt(100),
		PricingRules: []property.PricingRule{
			{Type: property.PricingWeekend, Modifier: decimal.NewFromInt(110)},
		},
		Fees: []property.Fee{
			{Name: "Cleaning", Type: property.FeeFixed, Applies: property.FeeOnce, Display: property.DisplaySeparate, Amount: money.FromInt(50)},
		},
	}
}

func TestCreateAssignsIDsAndEmits(t *testing.T) {
	svc, _, sink := newService()

	created, err := svc.Create(context.Background(), validProperty())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.PricingRules[0].ID)
	assert.NotEmpty(t, created.Fees[0].ID)
	assert.False(t, created.DateAdded.IsZero())
	assert.Equal(t, []string{"property_created"}, sink.names())
}

func TestCreateRejectsInvalidConfig(t *testing.T) {
	svc, repo, sink := newService()

	p := validProperty()
	p.PricingRules = append(p.PricingRules, property.PricingRule{Type: property.PricingSeasonal, Modifier: decimal.NewFromInt(120)})
	_, err := svc.Create(context.Background(), p)

	var cfgErr *property.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, sink.names())

	list, err := repo.List(context.Background(), property.SearchParams{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdatePreservesDateAddedAndEmits(t *testing.T) {
	svc, _, sink := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validProperty())
	require.NoError(t, err)
	added := created.DateAdded

	time.Sleep(10 * time.Millisecond)
	changed := validProperty()
	changed.ID = created.ID
	changed.Name = "Seaside Cottage Deluxe"
	updated, err := svc.Update(ctx, changed)
	require.NoError(t, err)

	assert.Equal(t, added, updated.DateAdded)
	assert.Equal(t, "Seaside Cottage Deluxe", updated.Name)
	assert.Equal(t, []string{"property_created", "property_updated"}, sink.names())
}

func TestUpdateUnknownProperty(t *testing.T) {
	svc, _, _ := newService()

	p := validProperty()
	p.ID = "nope"
	_, err := svc.Update(context.Background(), p)
	assert.ErrorIs(t, err, property.ErrPropertyNotFound)
}

func TestDeleteAndList(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validProperty())
	require.NoError(t, err)

	other := validProperty()
	other.Name = "City Flat"
	other.OwnerID = "owner-2"
	other.MaxOccupancy = 2
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	byOwner, err := svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, created.ID, byOwner[0].ID)

	roomy, err := svc.List(ctx, property.SearchParams{MinGuests: 4})
	require.NoError(t, err)
	require.Len(t, roomy, 1)
	assert.Equal(t, created.ID, roomy[0].ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, property.ErrPropertyNotFound)
}

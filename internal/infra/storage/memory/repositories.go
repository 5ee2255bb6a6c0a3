package memory

import (
	"context"
	"sort"
	"sync"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/guest"
	"staybook/internal/domain/owner"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/webhook"
)

// PropertyRepository is an in-memory implementation used by tests and the
// memory storage mode.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[property.PropertyID]*property.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[property.PropertyID]*property.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id property.PropertyID) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	return p, nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return nil
}

// Delete removes the property; its rules and fees live inside the aggregate
// and go with it.
func (r *PropertyRepository) Delete(ctx context.Context, id property.PropertyID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return property.ErrPropertyNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *PropertyRepository) List(ctx context.Context, params property.SearchParams) ([]*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*property.Property, 0, len(r.items))
	for _, p := range r.items {
		if params.OwnerID != "" && p.OwnerID != params.OwnerID {
			continue
		}
		if params.MinGuests > 0 && p.MaxOccupancy < params.MinGuests {
			continue
		}
		matches = append(matches, p)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

// BookingRepository keeps bookings in memory. Reads and writes share one
// lock, so the overlap read plus save in the booking service cannot
// interleave with a concurrent submission's save.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[booking.BookingID]*booking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[booking.BookingID]*booking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ForProperty(ctx context.Context, propertyID property.PropertyID) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*booking.Booking
	for _, b := range r.items {
		if b.PropertyID == propertyID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.CheckIn.Before(out[j].Range.CheckIn) })
	return out, nil
}

func (r *BookingRepository) Overlapping(ctx context.Context, propertyID property.PropertyID, stay daterange.DateRange, exclude booking.BookingID) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*booking.Booking
	for _, b := range r.items {
		if b.PropertyID != propertyID || b.ID == exclude || b.Status == booking.StatusCancelled {
			continue
		}
		if b.Range.Overlaps(stay) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*booking.Booking
	for _, b := range r.items {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.CheckIn.Before(out[j].Range.CheckIn) })
	return out, nil
}

type GuestRepository struct {
	mu    sync.RWMutex
	items map[string]*guest.Guest
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{items: make(map[string]*guest.Guest)}
}

func (r *GuestRepository) ByID(ctx context.Context, id string) (*guest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.items[id]
	if !ok {
		return nil, guest.ErrGuestNotFound
	}
	return g, nil
}

func (r *GuestRepository) Save(ctx context.Context, g *guest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[g.ID] = g
	return nil
}

func (r *GuestRepository) List(ctx context.Context) ([]*guest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*guest.Guest, 0, len(r.items))
	for _, g := range r.items {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

type OwnerRepository struct {
	mu    sync.RWMutex
	items map[string]*owner.Owner
}

func NewOwnerRepository() *OwnerRepository {
	return &OwnerRepository{items: make(map[string]*owner.Owner)}
}

func (r *OwnerRepository) ByID(ctx context.Context, id string) (*owner.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	return o, nil
}

func (r *OwnerRepository) Save(ctx context.Context, o *owner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[o.ID] = o
	return nil
}

func (r *OwnerRepository) List(ctx context.Context) ([]*owner.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*owner.Owner, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

type WebhookRepository struct {
	mu    sync.RWMutex
	items map[string]*webhook.Subscription
}

func NewWebhookRepository() *WebhookRepository {
	return &WebhookRepository{items: make(map[string]*webhook.Subscription)}
}

func (r *WebhookRepository) ByID(ctx context.Context, id string) (*webhook.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, webhook.ErrSubscriptionNotFound
	}
	return s, nil
}

func (r *WebhookRepository) Save(ctx context.Context, s *webhook.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = s
	return nil
}

func (r *WebhookRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return webhook.ErrSubscriptionNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *WebhookRepository) List(ctx context.Context) ([]*webhook.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*webhook.Subscription, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WebhookRepository) ActiveForEvent(ctx context.Context, event string) ([]*webhook.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*webhook.Subscription
	for _, s := range r.items {
		if s.Active && s.Event == event {
			out = append(out, s)
		}
	}
	return out, nil
}

package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

var ErrSubscriptionNotFound = errors.New("webhook: subscription not found")

// Events lists the event names subscribers may register for.
var Events = []string{
	"booking_created",
	"booking_updated",
	"booking_cancelled",
	"property_created",
	"property_updated",
}

// Subscription registers a target URL for one event name. Inactive
// subscriptions are kept but skipped at dispatch time.
type Subscription struct {
	ID        string
	Event     string
	TargetURL string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Subscription) Validate() error {
	if !KnownEvent(s.Event) {
		return fmt.Errorf("webhook: unknown event %q", s.Event)
	}
	u, err := url.Parse(s.TargetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("webhook: invalid target url %q", s.TargetURL)
	}
	return nil
}

func KnownEvent(event string) bool {
	for _, e := range Events {
		if e == event {
			return true
		}
	}
	return false
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Subscription, error)
	Save(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Subscription, error)
	ActiveForEvent(ctx context.Context, event string) ([]*Subscription, error)
}

package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/webhook"
	"staybook/internal/infra/notify"
	"staybook/internal/infra/storage/memory"
)

type stubEvent struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	At   time.Time
}

func (e stubEvent) EventName() string     { return e.Name }
func (e stubEvent) AggregateID() string   { return e.ID }
func (e stubEvent) OccurredAt() time.Time { return e.At }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebhookSinkDeliversToActiveSubscriptions(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	subs := memory.NewWebhookRepository()
	require.NoError(t, subs.Save(context.Background(), &webhook.Subscription{
		ID:        "sub-1",
		Event:     "booking_created",
		TargetURL: srv.URL,
		Active:    true,
	}))

	sink := notify.NewWebhookSink(subs, time.Second, discardLogger())
	sink.Emit(context.Background(), stubEvent{Name: "booking_created", ID: "bkg-1"})

	select {
	case body := <-received:
		var payload struct {
			Event   string    `json:"event"`
			Payload stubEvent `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "booking_created", payload.Event)
		assert.Equal(t, "bkg-1", payload.Payload.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}

func TestWebhookSinkSkipsInactiveAndOtherEvents(t *testing.T) {
	hits := make(chan struct{}, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
	}))
	defer srv.Close()

	ctx := context.Background()
	subs := memory.NewWebhookRepository()
	require.NoError(t, subs.Save(ctx, &webhook.Subscription{ID: "sub-1", Event: "booking_created", TargetURL: srv.URL, Active: false}))
	require.NoError(t, subs.Save(ctx, &webhook.Subscription{ID: "sub-2", Event: "property_created", TargetURL: srv.URL, Active: true}))

	sink := notify.NewWebhookSink(subs, time.Second, discardLogger())
	sink.Emit(ctx, stubEvent{Name: "booking_created", ID: "bkg-1"})

	select {
	case <-hits:
		t.Fatal("no subscription should have been called")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWebhookSinkSurvivesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx := context.Background()
	subs := memory.NewWebhookRepository()
	require.NoError(t, subs.Save(ctx, &webhook.Subscription{ID: "sub-1", Event: "booking_created", TargetURL: srv.URL, Active: true}))
	require.NoError(t, subs.Save(ctx, &webhook.Subscription{ID: "sub-2", Event: "booking_created", TargetURL: "http://127.0.0.1:1", Active: true}))

	sink := notify.NewWebhookSink(subs, 500*time.Millisecond, discardLogger())
	// Failed deliveries are logged and dropped; Emit must not block or panic.
	sink.Emit(ctx, stubEvent{Name: "booking_created", ID: "bkg-1"})
	time.Sleep(100 * time.Millisecond)
}

func TestMultiSinkFansOut(t *testing.T) {
	var first, second recordingSink
	multi := notify.MultiSink{&first, &second}
	multi.Emit(context.Background(), stubEvent{Name: "property_updated", ID: "prop-1"})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

type recordingSink struct {
	events []events.DomainEvent
}

func (s *recordingSink) Emit(ctx context.Context, event events.DomainEvent) {
	s.events = append(s.events, event)
}

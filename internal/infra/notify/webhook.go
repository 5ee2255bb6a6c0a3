package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/webhook"
)

// WebhookSink POSTs events to every active subscription for the event name.
// Delivery runs in a goroutine per emit and is fire-and-forget: failures are
// logged and never retried or surfaced.
type WebhookSink struct {
	subs    webhook.Repository
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewWebhookSink(subs webhook.Repository, timeout time.Duration, logger *slog.Logger) *WebhookSink {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSink{
		subs:    subs,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		logger:  logger,
	}
}

type webhookBody struct {
	Event   string             `json:"event"`
	Payload events.DomainEvent `json:"payload"`
}

func (s *WebhookSink) Emit(ctx context.Context, event events.DomainEvent) {
	subs, err := s.subs.ActiveForEvent(ctx, event.EventName())
	if err != nil {
		s.logger.Error("webhook subscription lookup failed", "event", event.EventName(), "error", err)
		return
	}
	if len(subs) == 0 {
		return
	}
	body, err := json.Marshal(webhookBody{Event: event.EventName(), Payload: event})
	if err != nil {
		s.logger.Error("webhook payload marshal failed", "event", event.EventName(), "error", err)
		return
	}
	for _, sub := range subs {
		go s.deliver(event.EventName(), sub.TargetURL, body)
	}
}

func (s *WebhookSink) deliver(event, target string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("webhook request build failed", "event", event, "target", target, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("webhook delivery failed", "event", event, "target", target, "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		s.logger.Error("webhook delivery rejected", "event", event, "target", target, "status", resp.StatusCode)
		return
	}
	s.logger.Info("webhook delivered", "event", event, "target", target)
}

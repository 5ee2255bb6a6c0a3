package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"staybook/internal/domain/shared/events"
)

// Publisher is satisfied by the kafka producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// KafkaSink publishes every event to a per-event-name topic, keyed by
// aggregate so consumers see one aggregate's events in order. Publish
// failures are logged, matching the fire-and-forget sink contract.
type KafkaSink struct {
	producer    Publisher
	topicPrefix string
	logger      *slog.Logger
}

func NewKafkaSink(producer Publisher, topicPrefix string, logger *slog.Logger) *KafkaSink {
	return &KafkaSink{producer: producer, topicPrefix: topicPrefix, logger: logger}
}

func (s *KafkaSink) Emit(ctx context.Context, event events.DomainEvent) {
	payload, err := json.Marshal(map[string]any{
		"event":   event.EventName(),
		"payload": event,
		"at":      event.OccurredAt(),
	})
	if err != nil {
		s.logger.Error("event marshal failed", "event", event.EventName(), "error", err)
		return
	}
	topic := s.topicPrefix + event.EventName()
	headers := map[string]string{"content-type": "application/json"}
	if err := s.producer.Publish(ctx, topic, event.AggregateID(), payload, headers); err != nil {
		s.logger.Error("event publish failed", "event", event.EventName(), "topic", topic, "error", err)
		return
	}
	s.logger.Info("event published", "event", event.EventName(), "topic", topic)
}

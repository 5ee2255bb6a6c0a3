package notify

import (
	"context"

	"staybook/internal/domain/shared/events"
)

// MultiSink fans one event out to several sinks.
type MultiSink []events.Sink

func (m MultiSink) Emit(ctx context.Context, event events.DomainEvent) {
	for _, sink := range m {
		sink.Emit(ctx, event)
	}
}

// NopSink discards events; used when no delivery target is configured.
type NopSink struct{}

func (NopSink) Emit(ctx context.Context, event events.DomainEvent) {}

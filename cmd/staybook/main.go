package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appbookings "staybook/internal/app/bookings"
	appproperties "staybook/internal/app/properties"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/guest"
	"staybook/internal/domain/owner"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/webhook"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	dbmongo "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/notify"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev").Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	stores, ready, err := buildStores(ctx, cfg)
	if err != nil {
		logger.Error("storage init failed", "error", err, "mode", cfg.StorageMode)
		os.Exit(1)
	}
	logger.Info("storage initialized", "mode", cfg.StorageMode)

	sink, closeSink, err := buildSink(cfg, stores.webhooks, logger)
	if err != nil {
		logger.Error("event sink init failed", "error", err)
		os.Exit(1)
	}
	defer closeSink()

	bookingSvc := appbookings.NewService(stores.properties, stores.bookings, stores.guests, sink, logger)
	propertySvc := appproperties.NewService(stores.properties, sink, logger)

	handlers := ginserver.Handlers{
		Property: ginserver.PropertyHandler{Properties: propertySvc, Bookings: bookingSvc},
		Booking:  ginserver.BookingHandler{Bookings: bookingSvc},
		Webhook:  ginserver.WebhookHandler{Subscriptions: stores.webhooks},
		Guest:    ginserver.GuestHandler{Guests: stores.guests},
		Owner:    ginserver.OwnerHandler{Owners: stores.owners, Properties: propertySvc, Bookings: bookingSvc},
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type stores struct {
	properties property.Repository
	bookings   booking.Repository
	guests     guest.Repository
	owners     owner.Repository
	webhooks   webhook.Repository
}

func buildStores(ctx context.Context, cfg config.Config) (stores, func() error, error) {
	if cfg.StorageMode == "mongo" {
		client, err := dbmongo.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, nil, err
		}
		ready := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx)
		}
		return stores{
			properties: dbmongo.NewPropertyRepository(client.DB),
			bookings:   dbmongo.NewBookingRepository(client.DB),
			guests:     dbmongo.NewGuestRepository(client.DB),
			owners:     dbmongo.NewOwnerRepository(client.DB),
			webhooks:   dbmongo.NewWebhookRepository(client.DB),
		}, ready, nil
	}
	return stores{
		properties: memory.NewPropertyRepository(),
		bookings:   memory.NewBookingRepository(),
		guests:     memory.NewGuestRepository(),
		owners:     memory.NewOwnerRepository(),
		webhooks:   memory.NewWebhookRepository(),
	}, func() error { return nil }, nil
}

func buildSink(cfg config.Config, subs webhook.Repository, logger *slog.Logger) (events.Sink, func(), error) {
	sinks := notify.MultiSink{notify.NewWebhookSink(subs, cfg.WebhookTimeout, logger)}
	closeSink := func() {}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, notify.NewKafkaSink(producer, cfg.KafkaTopicPrefix, logger))
		closeSink = func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close failed", "error", err)
			}
		}
	}
	return sinks, closeSink, nil
}

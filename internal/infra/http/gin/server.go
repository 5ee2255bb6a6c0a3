package ginserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type Handlers struct {
	Property PropertyHandler
	Booking  BookingHandler
	Webhook  WebhookHandler
	Guest    GuestHandler
	Owner    OwnerHandler
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")

	api.GET("/properties", h.Property.List)
	api.POST("/properties", h.Property.Create)
	api.GET("/properties/:id", h.Property.Get)
	api.PUT("/properties/:id", h.Property.Update)
	api.DELETE("/properties/:id", h.Property.Delete)
	api.GET("/properties/:id/pricing", h.Property.Pricing)
	api.GET("/properties/:id/check-availability", h.Property.CheckAvailability)

	api.POST("/bookings", h.Booking.Create)
	api.GET("/bookings/:id", h.Booking.Get)
	api.PUT("/bookings/:id", h.Booking.Update)
	api.POST("/bookings/:id/cancel", h.Booking.Cancel)

	api.POST("/guests", h.Guest.Create)
	api.GET("/guests", h.Guest.List)
	api.GET("/guests/:id", h.Guest.Get)
	api.GET("/guests/:id/bookings", h.Booking.ListByGuest)

	api.POST("/owners", h.Owner.Create)
	api.GET("/owners/:id/properties", h.Owner.PropertiesList)
	api.GET("/owners/:id/bookings", h.Owner.BookingOverview)

	api.GET("/webhooks/events", h.Webhook.Events)
	api.GET("/webhooks", h.Webhook.List)
	api.POST("/webhooks", h.Webhook.Create)
	api.GET("/webhooks/:id", h.Webhook.Get)
	api.PUT("/webhooks/:id", h.Webhook.Update)
	api.DELETE("/webhooks/:id", h.Webhook.Delete)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func configureGinMode(env string) string {
	mode := gin.ReleaseMode
	if env == "dev" {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)
	return mode
}

package ginserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/guest"
	"staybook/internal/domain/owner"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/webhook"
)

// respondError translates domain failures into HTTP status codes. Typed
// failures always reach the caller; nothing is swallowed here.
func respondError(c *gin.Context, err error) {
	var missing *booking.MissingFieldError
	var ruleViolation *property.RuleViolationError
	var configErr *property.ConfigError

	switch {
	case errors.As(err, &missing),
		errors.Is(err, booking.ErrInvalidGuests),
		errors.Is(err, daterange.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, property.ErrPropertyNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, guest.ErrGuestNotFound),
		errors.Is(err, owner.ErrOwnerNotFound),
		errors.Is(err, webhook.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrOverlap),
		errors.Is(err, booking.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &ruleViolation):
		body := gin.H{"error": err.Error()}
		if ruleViolation.MinNights > 0 {
			body["min_nights"] = ruleViolation.MinNights
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &configErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

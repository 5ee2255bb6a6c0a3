package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appbookings "staybook/internal/app/bookings"
	appproperties "staybook/internal/app/properties"
	"staybook/internal/domain/property"
)

type PropertyHandler struct {
	Properties *appproperties.Service
	Bookings   *appbookings.Service
}

func (h PropertyHandler) List(c *gin.Context) {
	params := property.SearchParams{OwnerID: c.Query("owner_id")}
	if raw := c.Query("guests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil || guests <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guests parameter"})
			return
		}
		params.MinGuests = guests
	}
	props, err := h.Properties.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]propertyDTO, 0, len(props))
	for _, p := range props {
		out = append(out, propertyToDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h PropertyHandler) Get(c *gin.Context) {
	p, err := h.Properties.Get(c.Request.Context(), property.PropertyID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, propertyToDTO(p))
}

func (h PropertyHandler) Create(c *gin.Context) {
	var dto propertyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := dto.toAggregate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Properties.Create(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, propertyToDTO(created))
}

func (h PropertyHandler) Update(c *gin.Context) {
	var dto propertyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto.ID = c.Param("id")
	p, err := dto.toAggregate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Properties.Update(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, propertyToDTO(updated))
}

func (h PropertyHandler) Delete(c *gin.Context) {
	if err := h.Properties.Delete(c.Request.Context(), property.PropertyID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Pricing returns the full quote for a candidate stay without creating
// anything.
func (h PropertyHandler) Pricing(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"), "check_in")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"), "check_out")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	guests := 1
	if raw := c.Query("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil || guests <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guests parameter"})
			return
		}
	}
	quote, err := h.Bookings.Quote(c.Request.Context(), c.Param("id"), checkIn, checkOut, guests)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteToDTO(quote))
}

// CheckAvailability reports whether a candidate stay passes the property's
// booking rules.
func (h PropertyHandler) CheckAvailability(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"), "check_in")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"), "check_out")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Bookings.ValidateStay(c.Request.Context(), c.Param("id"), checkIn, checkOut); err != nil {
		var ruleViolation *property.RuleViolationError
		if errors.As(err, &ruleViolation) {
			c.JSON(http.StatusOK, gin.H{"available": false, "reason": ruleViolation.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}

package ginserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbookings "staybook/internal/app/bookings"
	appproperties "staybook/internal/app/properties"
	"staybook/internal/domain/owner"
)

type OwnerHandler struct {
	Owners     owner.Repository
	Properties *appproperties.Service
	Bookings   *appbookings.Service
}

type ownerDTO struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (h OwnerHandler) Create(c *gin.Context) {
	var dto ownerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dto.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	o := &owner.Owner{
		ID:         uuid.NewString(),
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Address:    dto.Address,
		DateJoined: time.Now().UTC(),
	}
	if err := h.Owners.Save(c.Request.Context(), o); err != nil {
		respondError(c, err)
		return
	}
	dto.ID = o.ID
	c.JSON(http.StatusCreated, dto)
}

// Properties lists the properties owned by one owner.
func (h OwnerHandler) PropertiesList(c *gin.Context) {
	ownerID := c.Param("id")
	if _, err := h.Owners.ByID(c.Request.Context(), ownerID); err != nil {
		respondError(c, err)
		return
	}
	props, err := h.Properties.ListByOwner(c.Request.Context(), ownerID)
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

// BookingOverview aggregates bookings across all of an owner's properties.
func (h OwnerHandler) BookingOverview(c *gin.Context) {
	ownerID := c.Param("id")
	if _, err := h.Owners.ByID(c.Request.Context(), ownerID); err != nil {
		respondError(c, err)
		return
	}
	props, err := h.Properties.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	overview := make(map[string][]bookingDTO, len(props))
	for _, p := range props {
		list, err := h.Bookings.ListForProperty(c.Request.Context(), p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		dtos := make([]bookingDTO, 0, len(list))
		for _, b := range list {
			dtos = append(dtos, bookingToDTO(b))
		}
		overview[string(p.ID)] = dtos
	}
	c.JSON(http.StatusOK, overview)
}

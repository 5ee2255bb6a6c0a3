package ginserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/domain/guest"
)

type GuestHandler struct {
	Guests guest.Repository
}

type guestDTO struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (h GuestHandler) Create(c *gin.Context) {
	var dto guestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dto.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	g := &guest.Guest{
		ID:         uuid.NewString(),
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		DateJoined: time.Now().UTC(),
	}
	if err := h.Guests.Save(c.Request.Context(), g); err != nil {
		respondError(c, err)
		return
	}
	dto.ID = g.ID
	c.JSON(http.StatusCreated, dto)
}

func (h GuestHandler) Get(c *gin.Context) {
	g, err := h.Guests.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guestDTO{ID: g.ID, FirstName: g.FirstName, LastName: g.LastName, Email: g.Email, Phone: g.Phone})
}

func (h GuestHandler) List(c *gin.Context) {
	list, err := h.Guests.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]guestDTO, 0, len(list))
	for _, g := range list {
		out = append(out, guestDTO{ID: g.ID, FirstName: g.FirstName, LastName: g.LastName, Email: g.Email, Phone: g.Phone})
	}
	c.JSON(http.StatusOK, out)
}

package ginserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/domain/webhook"
)

type WebhookHandler struct {
	Subscriptions webhook.Repository
}

type subscriptionDTO struct {
	ID        string `json:"id,omitempty"`
	Event     string `json:"event"`
	TargetURL string `json:"target_url"`
	Active    bool   `json:"is_active"`
}

func (h WebhookHandler) Events(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": webhook.Events})
}

func (h WebhookHandler) List(c *gin.Context) {
	subs, err := h.Subscriptions.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]subscriptionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, subscriptionDTO{ID: s.ID, Event: s.Event, TargetURL: s.TargetURL, Active: s.Active})
	}
	c.JSON(http.StatusOK, out)
}

func (h WebhookHandler) Create(c *gin.Context) {
	var dto subscriptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := time.Now().UTC()
	sub := &webhook.Subscription{
		ID:        uuid.NewString(),
		Event:     dto.Event,
		TargetURL: dto.TargetURL,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sub.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Subscriptions.Save(c.Request.Context(), sub); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscriptionDTO{ID: sub.ID, Event: sub.Event, TargetURL: sub.TargetURL, Active: sub.Active})
}

func (h WebhookHandler) Get(c *gin.Context) {
	sub, err := h.Subscriptions.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptionDTO{ID: sub.ID, Event: sub.Event, TargetURL: sub.TargetURL, Active: sub.Active})
}

func (h WebhookHandler) Update(c *gin.Context) {
	sub, err := h.Subscriptions.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var dto subscriptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dto.Event != "" {
		sub.Event = dto.Event
	}
	if dto.TargetURL != "" {
		sub.TargetURL = dto.TargetURL
	}
	sub.Active = dto.Active
	sub.UpdatedAt = time.Now().UTC()
	if err := sub.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Subscriptions.Save(c.Request.Context(), sub); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptionDTO{ID: sub.ID, Event: sub.Event, TargetURL: sub.TargetURL, Active: sub.Active})
}

func (h WebhookHandler) Delete(c *gin.Context) {
	if err := h.Subscriptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

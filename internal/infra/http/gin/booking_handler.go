package ginserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbookings "staybook/internal/app/bookings"
	"staybook/internal/domain/booking"
)

type BookingHandler struct {
	Bookings *appbookings.Service
}

type createBookingRequest struct {
	PropertyID      string `json:"property_id"`
	GuestID         string `json:"guest_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	NumGuests       int    `json:"num_guests"`
	SpecialRequests string `json:"special_requests"`
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := appbookings.SubmitParams{
		PropertyID:      req.PropertyID,
		GuestID:         req.GuestID,
		NumGuests:       req.NumGuests,
		SpecialRequests: req.SpecialRequests,
	}
	if req.CheckInDate != "" {
		t, err := parseDate(req.CheckInDate, "check_in_date")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.CheckIn = t
	}
	if req.CheckOutDate != "" {
		t, err := parseDate(req.CheckOutDate, "check_out_date")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.CheckOut = t
	}
	b, err := h.Bookings.Submit(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingToDTO(b))
}

func (h BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), booking.BookingID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingToDTO(b))
}

type updateBookingRequest struct {
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	NumGuests       int     `json:"num_guests"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"special_requests"`
}

func (h BookingHandler) Update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := appbookings.UpdateParams{
		NumGuests:       req.NumGuests,
		Status:          booking.Status(req.Status),
		SpecialRequests: req.SpecialRequests,
	}
	if req.CheckInDate != "" {
		t, err := parseDate(req.CheckInDate, "check_in_date")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.CheckIn = t
	}
	if req.CheckOutDate != "" {
		t, err := parseDate(req.CheckOutDate, "check_out_date")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.CheckOut = t
	}
	b, err := h.Bookings.Update(c.Request.Context(), booking.BookingID(c.Param("id")), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingToDTO(b))
}

func (h BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Bookings.Cancel(c.Request.Context(), booking.BookingID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingToDTO(b))
}

func (h BookingHandler) ListByGuest(c *gin.Context) {
	list, err := h.Bookings.ListByGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]bookingDTO, 0, len(list))
	for _, b := range list {
		out = append(out, bookingToDTO(b))
	}
	c.JSON(http.StatusOK, out)
}

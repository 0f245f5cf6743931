package handler

import (
	"errors"
	"net/http"

	"parking_booking/internal/api/middleware"
	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
	"parking_booking/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService *service.ReservationService
}

func NewReservationHandler(rs *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// POST /reservations
// The requester's phone comes from the authenticated token, not the body.
func (h *ReservationHandler) ReserveSlot(c *gin.Context) {
	var dto domain.ReserveSlotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := c.GetString(middleware.UserPhoneKey)
	result, err := h.reservationService.ReserveSlot(c.Request.Context(), phone, dto)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		case errors.Is(err, repository.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reserve slot", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// POST /reservations/complete
func (h *ReservationHandler) CompleteBooking(c *gin.Context) {
	var dto domain.CompleteBookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.reservationService.CompleteBooking(c.Request.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNoActiveBooking):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete booking", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /bookings
// Lists the authenticated user's bookings, newest entry time first.
func (h *ReservationHandler) ListMyBookings(c *gin.Context) {
	phone := c.GetString(middleware.UserPhoneKey)
	bookings, err := h.reservationService.ListUserBookings(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /bookings/:code
func (h *ReservationHandler) GetBookingByCode(c *gin.Context) {
	booking, err := h.reservationService.GetBookingByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch booking"})
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

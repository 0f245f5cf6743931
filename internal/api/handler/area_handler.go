package handler

import (
	"errors"
	"net/http"
	"strconv"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
	"parking_booking/internal/service"

	"github.com/gin-gonic/gin"
)

type AreaHandler struct {
	reservationService *service.ReservationService
}

func NewAreaHandler(rs *service.ReservationService) *AreaHandler {
	return &AreaHandler{reservationService: rs}
}

// PUT /areas
// Creates the named area, or resizes it when the requested totals differ.
// Resize is destructive and regenerates the area's whole slot set.
func (h *AreaHandler) CreateOrResizeArea(c *gin.Context) {
	var dto domain.ParkingAreaDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := h.reservationService.CreateOrResizeArea(c.Request.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicateEntry):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create or resize area", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, area)
}

// GET /areas
func (h *AreaHandler) GetAllAreas(c *gin.Context) {
	areas, err := h.reservationService.GetAllAreas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list areas"})
		return
	}
	c.JSON(http.StatusOK, areas)
}

// GET /areas/:id
func (h *AreaHandler) GetAreaByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid area id"})
		return
	}

	area, err := h.reservationService.GetAreaByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch area"})
		return
	}
	c.JSON(http.StatusOK, area)
}

// GET /areas/:id/slots?vehicle_type=car
func (h *AreaHandler) ListSlots(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid area id"})
		return
	}

	slots, err := h.reservationService.ListSlots(c.Request.Context(), id, c.Query("vehicle_type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list slots"})
		}
		return
	}
	c.JSON(http.StatusOK, slots)
}

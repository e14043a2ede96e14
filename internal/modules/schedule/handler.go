// Package schedule is the HTTP read side of availability: working windows,
// point availability checks, slot enumeration and chain durations.
package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonbook/internal/booking"
	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/salons/:id/working-window", h.GetWorkingWindow)
	v1.GET("/salons/:id/availability", h.CheckAvailability)
	v1.POST("/salons/:id/slots", h.GenerateSlots)
	v1.POST("/salons/:id/duration", h.ComputeDuration)
}

func (h *Handler) GetWorkingWindow(c *gin.Context) {
	salonID, ok := pathSalonID(c)
	if !ok {
		return
	}
	staffID, err := strconv.ParseInt(c.Query("staff_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "staff_id is required")
		return
	}
	date := c.Query("date")

	win, open, err := h.service.GetWorkingWindow(c.Request.Context(), staffID, salonID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	if !open {
		response.Success(c, http.StatusOK, gin.H{"open": false})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"open":  true,
		"start": win.Start.String(),
		"end":   win.End.String(),
	})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	if _, ok := pathSalonID(c); !ok {
		return
	}
	staffID, err := strconv.ParseInt(c.Query("staff_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "staff_id is required")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration_minutes"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration_minutes is required")
		return
	}
	var excludeID int64
	if v := c.Query("exclude_appointment_id"); v != "" {
		excludeID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid exclude_appointment_id")
			return
		}
	}

	free, err := h.service.IsAvailable(c.Request.Context(), staffID, c.Query("date"), c.Query("start_time"), duration, excludeID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": free})
}

func (h *Handler) GenerateSlots(c *gin.Context) {
	salonID, ok := pathSalonID(c)
	if !ok {
		return
	}
	var req SlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	chain := make([]booking.ChainItem, 0, len(req.Chain))
	for _, item := range req.Chain {
		chain = append(chain, booking.ChainItem{ServiceID: item.ServiceID, StaffID: item.StaffID})
	}

	slots, err := h.service.GenerateSlots(c.Request.Context(), salonID, req.Date, chain)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) ComputeDuration(c *gin.Context) {
	salonID, ok := pathSalonID(c)
	if !ok {
		return
	}
	var req DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	total, err := h.service.ComputeDuration(c.Request.Context(), salonID, req.ServiceIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"duration_minutes": total})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, booking.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process request")
	}
}

func pathSalonID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid salon ID")
		return 0, false
	}
	return id, true
}

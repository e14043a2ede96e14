// Package booking is the HTTP write side of appointments: booking,
// rescheduling and status transitions.
package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	core "salonbook/internal/booking"
	"salonbook/internal/domain"
	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{service: service}
}

// RegisterClientRoutes carries the booking endpoint walk-in clients use.
// Mounted behind OptionalJWT: a logged-in staff member booking on a client's
// behalf is recognized by the role in their token.
func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	rg.POST("/salons/:id/appointments", h.Book)
}

// RegisterStaffRoutes carries everything that requires a staff login.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/salons/:id/appointments", h.ListDay)
	rg.GET("/appointments/:id", h.GetAppointment)
	rg.POST("/appointments/:id/reschedule", h.Reschedule)
	rg.POST("/appointments/:id/confirm", h.transitionTo(domain.AppointmentConfirmed))
	rg.POST("/appointments/:id/start", h.transitionTo(domain.AppointmentInProgress))
	rg.POST("/appointments/:id/complete", h.transitionTo(domain.AppointmentCompleted))
	rg.POST("/appointments/:id/no-show", h.transitionTo(domain.AppointmentNoShow))
	rg.POST("/appointments/:id/cancel", h.Cancel)
}

func (h *Handler) Book(c *gin.Context) {
	salonID, ok := pathID(c, "Invalid salon ID")
	if !ok {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	initiator := domain.RoleClient
	switch domain.StaffRole(c.GetString("role")) {
	case domain.RoleStaff:
		initiator = domain.RoleStaff
	case domain.RoleOwner:
		initiator = domain.RoleOwner
	}

	appt, err := h.service.Book(c.Request.Context(), core.BookRequest{
		SalonID:   salonID,
		StaffID:   req.StaffID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Chain:     toCoreChain(req.Chain),
		Client: core.ClientInfo{
			Name:  req.ClientName,
			Phone: req.ClientPhone,
			Email: req.ClientEmail,
		},
		Notes:     req.Notes,
		Initiator: initiator,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": appt})
}

func (h *Handler) Reschedule(c *gin.Context) {
	apptID, ok := pathID(c, "Invalid appointment ID")
	if !ok {
		return
	}
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	appt, err := h.service.Reschedule(c.Request.Context(), apptID, core.RescheduleRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		StaffID:   req.StaffID,
		Chain:     toCoreChain(req.Chain),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": appt})
}

func (h *Handler) Cancel(c *gin.Context) {
	apptID, ok := pathID(c, "Invalid appointment ID")
	if !ok {
		return
	}
	// The reason is optional; an empty or missing body is fine.
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	appt, err := h.service.Transition(c.Request.Context(), apptID, domain.AppointmentCancelled, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": appt})
}

func (h *Handler) transitionTo(to domain.AppointmentStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		apptID, ok := pathID(c, "Invalid appointment ID")
		if !ok {
			return
		}

		appt, err := h.service.Transition(c.Request.Context(), apptID, to, "")
		if err != nil {
			respondError(c, err)
			return
		}

		response.Success(c, http.StatusOK, gin.H{"appointment": appt})
	}
}

func (h *Handler) ListDay(c *gin.Context) {
	salonID, ok := pathID(c, "Invalid salon ID")
	if !ok {
		return
	}

	appts, err := h.service.ListDay(c.Request.Context(), salonID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": appts})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	apptID, ok := pathID(c, "Invalid appointment ID")
	if !ok {
		return
	}

	appt, err := h.service.GetAppointment(c.Request.Context(), apptID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": appt})
}

// respondError maps the booking errors onto the HTTP contract. The wrapping
// order matters: zero-duration and capability errors are validation errors
// underneath, so they come first.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrSlotConflict):
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "The requested time is not available")
	case errors.Is(err, core.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, core.ErrZeroDuration):
		response.Error(c, http.StatusBadRequest, "ZERO_DURATION", "Booking must reserve time")
	case errors.Is(err, core.ErrCapability):
		response.Error(c, http.StatusBadRequest, "CAPABILITY_MISMATCH", "Staff member cannot perform a requested service")
	case errors.Is(err, core.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, core.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process appointment")
	}
}

func toCoreChain(chain []ChainItem) []core.ChainItem {
	if chain == nil {
		return nil
	}
	out := make([]core.ChainItem, 0, len(chain))
	for _, item := range chain {
		out = append(out, core.ChainItem{ServiceID: item.ServiceID, StaffID: item.StaffID})
	}
	return out
}

func pathID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", msg)
		return 0, false
	}
	return id, true
}

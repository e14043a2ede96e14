package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
	"salonbook/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the read side of the catalog; clients browse
// it before booking.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/salons", h.ListSalons)
	v1.GET("/salons/:id", h.GetSalon)
	v1.GET("/salons/:id/staff", h.ListStaff)
	v1.GET("/salons/:id/services", h.ListServices)
}

// RegisterOwnerRoutes exposes the write side; main mounts these behind
// JWTAuth and OwnerOnly.
func (h *Handler) RegisterOwnerRoutes(protected *gin.RouterGroup) {
	protected.POST("/salons", h.CreateSalon)
	protected.POST("/salons/:id/staff", h.CreateStaff)
	protected.POST("/salons/:id/services", h.CreateService)
	protected.POST("/salons/:id/exclusions", h.CreateExclusion)
	protected.GET("/salons/:id/exclusions", h.ListExclusions)
}

func (h *Handler) ListSalons(c *gin.Context) {
	salons, err := h.service.ListSalons(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list salons")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"salons": salons})
}

func (h *Handler) GetSalon(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	salon, err := h.service.GetSalon(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to load salon")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"salon": salon})
}

func (h *Handler) CreateSalon(c *gin.Context) {
	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	salon, err := h.service.CreateSalon(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create salon")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"salon": salon})
}

func (h *Handler) ListStaff(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	staff, err := h.service.ListStaff(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to list staff")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": staff})
}

func (h *Handler) CreateStaff(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	staff, err := h.service.CreateStaff(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to create staff member")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"staff": staff})
}

func (h *Handler) ListServices(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	services, err := h.service.ListServices(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to list services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) CreateService(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to create service")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) CreateExclusion(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	var req CreateExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	excl, err := h.service.CreateExclusion(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to create exclusion")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exclusion": excl})
}

func (h *Handler) ListExclusions(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	exclusions, err := h.service.ListExclusions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to list exclusions")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exclusions": exclusions})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func salonID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid salon ID")
		return 0, false
	}
	return id, true
}

package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	staffGroup := protected.Group("/staff")
	{
		staffGroup.GET("/me", h.GetMe)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	staff, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"staff": gin.H{
			"id":       staff.ID,
			"salon_id": staff.SalonID,
			"name":     staff.Name,
			"email":    staff.Email,
			"role":     staff.Role,
		},
		"token": token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	staffID := c.GetInt64("staff_id")
	if staffID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	staff, err := h.service.GetCurrentStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Staff member not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"staff": staff})
}

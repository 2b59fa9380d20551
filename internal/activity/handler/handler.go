// Package handler provides HTTP handlers for activity feed endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/communityhub/initiatives/internal/activity/service"
)

// Handler handles HTTP requests for activity feed endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new activity handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// List handles GET /activities request.
func (h *Handler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, "VALIDATION_ERROR", "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	resp, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

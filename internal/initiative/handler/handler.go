// Package handler provides HTTP handlers for initiative endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/communityhub/initiatives/internal/initiative/model"
	"github.com/communityhub/initiatives/internal/initiative/service"
	"github.com/communityhub/initiatives/internal/middleware"
)

// Handler handles HTTP requests for initiative endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new initiative handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /initiatives request.
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	var req model.CreateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /initiatives request.
func (h *Handler) List(c *gin.Context) {
	status := c.DefaultQuery("status", model.StatusUpcoming)
	location := c.Query("location")

	resp, err := h.service.List(c.Request.Context(), status, location)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /initiatives/:id request.
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Join handles POST /initiatives/:id/join request.
func (h *Handler) Join(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.Join(c.Request.Context(), id, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListParticipants handles GET /initiatives/:id/participants request.
func (h *Handler) ListParticipants(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.ListParticipants(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /initiatives/:id request.
func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// pathID parses the :id path parameter, writing a 404 on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		notFoundResponse(c, model.ErrInitiativeNotFound.Error())
		return 0, false
	}
	return uint(id), true
}

// writeError maps domain errors to HTTP responses.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInitiativeNotFound):
		notFoundResponse(c, err.Error())
	case errors.Is(err, model.ErrNotCreator):
		errorResponse(c, "FORBIDDEN", err.Error(), http.StatusForbidden)
	case errors.Is(err, model.ErrNotUpcoming):
		errorResponse(c, "NOT_UPCOMING", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrAlreadyJoined):
		errorResponse(c, "ALREADY_JOINED", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrInitiativeFull):
		errorResponse(c, "INITIATIVE_FULL", err.Error(), http.StatusBadRequest)
	case model.IsValidationError(err):
		errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

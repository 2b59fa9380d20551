// Package router provides activity module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/communityhub/initiatives/internal/activity/handler"
	"github.com/communityhub/initiatives/internal/activity/service"
)

// RegisterRoutes registers activity module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.GET("/activities", h.List)
}

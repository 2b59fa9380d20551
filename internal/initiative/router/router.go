// Package router provides initiative module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/communityhub/initiatives/internal/initiative/handler"
	"github.com/communityhub/initiatives/internal/initiative/repository"
	"github.com/communityhub/initiatives/internal/initiative/service"
)

// RegisterRoutes registers initiative module routes. requireAuth guards the
// mutating endpoints; reads are public.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, activity service.Recorder, requireAuth gin.HandlerFunc, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, activity, logger)
	h := handler.New(svc, logger)

	r.POST("/initiatives", requireAuth, h.Create)
	r.GET("/initiatives", h.List)
	r.GET("/initiatives/:id", h.Get)
	r.POST("/initiatives/:id/join", requireAuth, h.Join)
	r.GET("/initiatives/:id/participants", h.ListParticipants)
	r.PUT("/initiatives/:id", requireAuth, h.Update)
}

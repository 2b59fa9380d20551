// Package router provides auth module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/communityhub/initiatives/internal/auth/handler"
	"github.com/communityhub/initiatives/internal/auth/repository"
	"github.com/communityhub/initiatives/internal/auth/service"
	"github.com/communityhub/initiatives/pkg/token"
)

// RegisterRoutes registers auth module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, tokens *token.Manager, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, tokens, logger)
	h := handler.New(svc, logger)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
}

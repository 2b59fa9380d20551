// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	activityPublisher "github.com/communityhub/initiatives/internal/activity/publisher"
	activityRepository "github.com/communityhub/initiatives/internal/activity/repository"
	activityRouter "github.com/communityhub/initiatives/internal/activity/router"
	activityService "github.com/communityhub/initiatives/internal/activity/service"
	authRouter "github.com/communityhub/initiatives/internal/auth/router"
	"github.com/communityhub/initiatives/internal/config"
	"github.com/communityhub/initiatives/internal/database"
	"github.com/communityhub/initiatives/internal/database/migrate"
	"github.com/communityhub/initiatives/internal/health"
	initiativeRouter "github.com/communityhub/initiatives/internal/initiative/router"
	"github.com/communityhub/initiatives/internal/middleware"
	"github.com/communityhub/initiatives/pkg/logger"
	"github.com/communityhub/initiatives/pkg/token"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			appLogger.Errorw("failed to close database", "error", closeErr)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	tokens := token.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var pub activityPublisher.Publisher
	if cfg.Activity.RedisAddr != "" {
		pub = activityPublisher.NewRedis(cfg.Activity.RedisAddr, cfg.Activity.RedisChannel, appLogger)
		defer func() {
			_ = pub.Close()
		}()
	}
	activities := activityService.New(activityRepository.New(db, appLogger), pub, appLogger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(appLogger))
	r.Use(middleware.Logger(appLogger))

	requireAuth := middleware.Auth(tokens, appLogger)

	authRouter.RegisterRoutes(r, db, tokens, appLogger)
	initiativeRouter.RegisterRoutes(r, db, activities, requireAuth, appLogger)
	activityRouter.RegisterRoutes(r, activities, appLogger)

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("server shutdown failed", "error", err)
	}
}

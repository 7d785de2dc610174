// Package main runs the school hub HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dohmens-hub/backend/config"
	"github.com/dohmens-hub/backend/internal/admin"
	"github.com/dohmens-hub/backend/internal/auth"
	"github.com/dohmens-hub/backend/internal/events"
	"github.com/dohmens-hub/backend/internal/memberships"
	"github.com/dohmens-hub/backend/internal/middleware"
	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/internal/organizations"
	"github.com/dohmens-hub/backend/internal/token"
	"github.com/dohmens-hub/backend/internal/users"
	"github.com/dohmens-hub/backend/pkg/response"
	"github.com/dohmens-hub/backend/pkg/store"
)

const deleteConfirmTTL = 5 * time.Minute

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	st, err := store.New(cfg.Store.URL, cfg.Store.Key, logger)
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}

	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Domain access layer
	userRepo := users.NewRepository(st, logger)
	orgRepo := organizations.NewRepository(st, logger)
	membershipRepo := memberships.NewRepository(st, logger)
	eventRepo := events.NewRepository(st, logger)

	// Views
	authHandler := auth.NewHandler(userRepo, tokens, logger)
	userHandler := users.NewHandler(userRepo)
	orgHandler := organizations.NewHandler(orgRepo)
	membershipHandler := memberships.NewHandler(membershipRepo)
	eventHandler := events.NewHandler(eventRepo)
	adminHandler := admin.NewHandler(userRepo, orgRepo, admin.NewPendingDeletes(deleteConfirmTTL), logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Identity (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/signin", authHandler.SignIn)
	}

	// Authenticated surface
	api := router.Group("")
	api.Use(middleware.JWT(tokens))
	{
		api.POST("/auth/signout", authHandler.SignOut)

		// Directory and Detail
		api.GET("/organizations", orgHandler.Directory)
		api.GET("/organizations/:id", orgHandler.GetByID)
		api.GET("/organizations/:id/members", membershipHandler.Roster)
		api.GET("/organizations/:id/membership", membershipHandler.Status)
		api.POST("/organizations/:id/join", membershipHandler.Join)
		api.POST("/organizations/:id/leave", membershipHandler.Leave)

		// Calendar
		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)

		// Profile
		api.GET("/me", userHandler.Me)
		api.GET("/me/memberships", membershipHandler.MyMemberships)

		// Admin panel
		adminGroup := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			adminGroup.POST("/organizations", adminHandler.CreateOrganization)
			adminGroup.PUT("/organizations/:id", adminHandler.UpdateOrganization)
			adminGroup.POST("/organizations/:id/delete-request", adminHandler.RequestDelete)
			adminGroup.POST("/organizations/:id/delete-confirm", adminHandler.ConfirmDelete)
			adminGroup.POST("/organizations/:id/delete-cancel", adminHandler.CancelDelete)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := zc.Build()
	return logger
}

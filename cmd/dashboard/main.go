package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-inventory-dashboard/internal/config"
	"hospital-inventory-dashboard/internal/database"
	"hospital-inventory-dashboard/internal/handler"
	"hospital-inventory-dashboard/internal/logging"
	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/obs"
	"hospital-inventory-dashboard/internal/repository"
	"hospital-inventory-dashboard/internal/service"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Info().Str("api", cfg.API.BaseURL).Str("session_driver", cfg.Session.Driver).Msg("configuration loaded")

	// 2. Open the session database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open session database")
	}

	// 3. Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 4. Metrics
	metrics := obs.NewMetrics()

	// 5. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pruner := service.NewAuditPruner(auditRepo, cfg.Audit.Retention, cfg.Audit.PruneInterval, logger)
	go pruner.Start(ctx)

	// 6. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		metrics.Instrument(),
		middleware.CORS(cfg),
	)

	// 7. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-inventory-dashboard",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	handler.RegisterRoutes(r, handler.RouteDeps{
		Session: middleware.Session(middleware.SessionDeps{
			CookieName: cfg.Server.ProfileCookie,
			BaseURL:    cfg.API.BaseURL,
			Sessions:   sessionRepo,
			Audit:      auditRepo,
			Metrics:    metrics,
			Logger:     logger,
		}),
		LoginLimit: middleware.RateLimit(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst),
		Logger:     logger,
	})

	// 8. Setup graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("dashboard starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	// Cancel background worker context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("server exited")
}

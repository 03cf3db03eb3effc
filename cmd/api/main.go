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

	"github.com/amirhossein-jamali/referral-platform/internal/app"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/scheduler"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/config"
)

// rateLimiterIdle is how long a client IP may stay silent before its bucket is dropped
const rateLimiterIdle = 10 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction(), coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Database.AutoMigrate {
		if err := a.Migrate(ctx); err != nil {
			return err
		}
	}

	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst, a.Clock, appLogger)

	jobs := scheduler.New(appLogger, a.Clock, a.Metrics)
	err = scheduler.RegisterMaintenance(jobs, scheduler.MaintenanceConfig{
		LockCleanupSpec:       cfg.Scheduler.LockCleanupSpec,
		NotificationPurgeSpec: cfg.Scheduler.NotificationPurgeSpec,
		NotificationRetention: cfg.Scheduler.NotificationRetention,
		DepositExpirySpec:     cfg.Scheduler.DepositExpirySpec,
		DepositMaxAge:         cfg.Scheduler.DepositMaxAge,
	}, scheduler.MaintenanceDeps{
		Locks:         a.Locks,
		Notifications: a.Notifications,
		Transactions:  a.Transactions,
		Logger:        appLogger,
	})
	if err != nil {
		return err
	}
	err = jobs.Add("rate_limiter_cleanup", "@every 5m", time.Minute, func(context.Context) error {
		authLimiter.Cleanup(rateLimiterIdle)
		return nil
	})
	if err != nil {
		return err
	}

	router := gin.New()
	var recorder middleware.HTTPRecorder
	var metricsHandler http.Handler
	if cfg.Server.MetricsEnabled {
		recorder = a.Metrics
		metricsHandler = a.Metrics.Handler()
	}
	routes.SetupMiddlewares(router, appLogger, recorder, cfg.CORS.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Auth:         handler.NewAuthHandler(a.Users, appLogger),
		User:         handler.NewUserHandler(a.Users, appLogger),
		Transaction:  handler.NewTransactionHandler(a.Transactions, appLogger),
		Referral:     handler.NewReferralHandler(a.Referrals, a.Users, appLogger),
		Notification: handler.NewNotificationHandler(a.Notifications),
		Content:      handler.NewContentHandler(a.Settings, a.Announcements, a.Dashboard, appLogger),
		Health:       handler.NewHealthHandler(a.DB, appLogger),
		Tokens:       a.Tokens,
		Users:        a.Users,
		AuthLimiter:  authLimiter,
		Metrics:      metricsHandler,
		Logger:       appLogger,
	})

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
			"jobs": jobs.Jobs(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	jobs.Start()

	select {
	case <-ctx.Done():
		appLogger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		if err != nil {
			_ = jobs.Stop(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		appLogger.Warn("Scheduler did not stop in time", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/security"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles everything the router needs
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Transaction  *handler.TransactionHandler
	Referral     *handler.ReferralHandler
	Notification *handler.NotificationHandler
	Content      *handler.ContentHandler
	Health       *handler.HealthHandler

	Tokens      security.TokenIssuer
	Users       usecase.UserUseCase
	AuthLimiter *middleware.RateLimiter
	// Metrics serves /metrics when set
	Metrics http.Handler
	Logger  coreport.Logger
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	api := router.Group("/api")

	// Public
	auth := api.Group("/auth")
	if h.AuthLimiter != nil {
		auth.Use(h.AuthLimiter.Handler())
	}
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}
	// code lookup is part of sign-up and shares its per-IP budget
	lookup := api.Group("/referrals/lookup")
	if h.AuthLimiter != nil {
		lookup.Use(h.AuthLimiter.Handler())
	}
	lookup.GET("/:code", h.Referral.Lookup)
	api.GET("/settings", h.Content.GetSettings)
	api.GET("/announcements", h.Content.ListActiveAnnouncements)

	// Authenticated
	authed := api.Group("", middleware.Auth(h.Tokens))
	{
		authed.GET("/me", h.User.Me)
		authed.GET("/me/balance", h.User.GetBalance)

		authed.POST("/transactions/deposit", h.Transaction.Deposit)
		authed.POST("/transactions/withdraw", h.Transaction.Withdraw)
		authed.POST("/transactions/invest", h.Transaction.Invest)
		authed.GET("/transactions", h.Transaction.ListMine)

		authed.GET("/referrals/me", h.Referral.Mine)
		authed.GET("/referrals/team", h.Referral.Team)
		authed.GET("/referrals/stats", h.Referral.Stats)

		authed.GET("/notifications", h.Notification.List)
		authed.POST("/notifications/read-all", h.Notification.MarkAllRead)
		authed.POST("/notifications/:id/read", h.Notification.MarkRead)
	}

	// Admin
	admin := api.Group("/admin", middleware.Auth(h.Tokens), middleware.AdminOnly(h.Users, h.Logger))
	{
		admin.GET("/dashboard", h.Content.Dashboard)

		admin.GET("/users", h.User.ListUsers)
		admin.PUT("/users/:userId/status", h.User.SetStatus)
		admin.POST("/users/:userId/balance", h.Transaction.AdjustBalance)

		admin.GET("/transactions", h.Transaction.ListAll)
		admin.POST("/transactions/:transactionId/approve", h.Transaction.Approve)
		admin.POST("/transactions/:transactionId/reject", h.Transaction.Reject)

		admin.PUT("/settings", h.Content.UpdateSettings)

		admin.GET("/announcements", h.Content.ListAnnouncements)
		admin.POST("/announcements", h.Content.CreateAnnouncement)
		admin.PUT("/announcements/:id", h.Content.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", h.Content.DeleteAnnouncement)

		admin.GET("/referrals/:userId/debug", h.Referral.Debug)
		admin.POST("/referrals/backfill-codes", h.Referral.BackfillCodes)
	}
}

// SetupMiddlewares configures global middlewares for the API. The error
// handler sits inside the logger and metrics so they see the final status.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, recorder middleware.HTTPRecorder, allowedOrigins []string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if recorder != nil {
		router.Use(middleware.Metrics(recorder))
	}
	router.Use(middleware.ErrorHandler(logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))
}

// corsConfig allows any origin without credentials when none are configured
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

package app

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/admin"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/announcement"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/notification"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/referral"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/settings"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/usecase/user"
	cacheadapter "github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/security"
	timeProvider "github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/config"
)

// App holds the connected infrastructure and the use cases built on it.
// Both the API server and the admin CLI start from here.
type App struct {
	Config  *config.Config
	Logger  coreport.Logger
	Clock   coreport.TimeProvider
	Metrics *metrics.Prometheus

	DB        *database.Manager
	CodeCache cache.ReferralCodeCache
	Locks     *repository.UserLockRepository
	Tokens    *security.JWTIssuer

	Users         *user.UserUseCase
	Referrals     *referral.Service
	Notifications *notification.Service
	Settings      *settings.Service
	Announcements *announcement.Service
	Dashboard     *admin.DashboardService
	Transactions  *transaction.Service
}

// New connects to the database and the optional redis cache and wires every use case
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  logger,
		Clock:   timeProvider.NewRealTimeProvider(),
		Metrics: metrics.NewPrometheus(),
	}

	a.DB = database.NewManager(database.NewConfig(cfg.Database, cfg.Logger.SQLLevel), logger, a.Clock)
	db, err := a.DB.Connect(ctx)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := a.Metrics.RegisterDBStats(sqlDB, cfg.Database.Database); err != nil {
		logger.Warn("Database pool metrics not registered", map[string]any{"error": err.Error()})
	}

	a.CodeCache = a.connectCache(ctx)

	uow := a.DB.UnitOfWork()
	a.Locks = repository.NewUserLockRepository(db, a.Clock, logger)
	a.Tokens = security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL, a.Clock)
	ids := idgen.NewUUIDGenerator()

	a.Settings = settings.NewService(repository.NewSettingsRepository(db, logger), a.Clock, logger)
	a.Announcements = announcement.NewService(repository.NewAnnouncementRepository(db, logger), a.Clock, logger)
	a.Notifications = notification.NewService(uow, a.Clock, logger)
	a.Dashboard = admin.NewDashboardService(uow, logger)

	a.Referrals = referral.NewService(
		uow,
		a.Settings,
		a.Notifications,
		a.CodeCache,
		idgen.NewRandomCodeGenerator(),
		ids,
		a.Clock,
		logger.Named("referral"),
		referral.Options{
			CodeLength:      cfg.Referral.CodeLength,
			MaxCodeAttempts: cfg.Referral.MaxCodeAttempts,
		},
	)

	a.Users = user.NewUserUseCase(
		uow,
		a.Referrals,
		a.Notifications,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		a.Tokens,
		a.Clock,
		a.Metrics,
		logger.Named("user"),
	)

	a.Transactions = transaction.NewTransactionService(transaction.Dependencies{
		UnitOfWork:    uow,
		UserLockRepo:  a.Locks,
		Settings:      a.Settings,
		Referrals:     a.Referrals,
		Notifications: a.Notifications,
		IDGenerator:   ids,
		TimeProvider:  a.Clock,
		Metrics:       a.Metrics,
		Logger:        logger.Named("transaction"),
	}, cfg.Transaction.LockTimeout, cfg.Transaction.QueueSize)

	return a, nil
}

// connectCache falls back to no caching when redis is not configured or unreachable
func (a *App) connectCache(ctx context.Context) cache.ReferralCodeCache {
	if !a.Config.Cache.Enabled() {
		a.Logger.Info("Referral code cache disabled", nil)
		return cacheadapter.NoopReferralCodeCache{}
	}

	redisCache, err := cacheadapter.NewRedisReferralCodeCache(ctx, cacheadapter.RedisOptions{
		Addr:     a.Config.Cache.Addr,
		Password: a.Config.Cache.Password,
		DB:       a.Config.Cache.DB,
		TTL:      a.Config.Cache.TTL,
	}, a.Logger)
	if err != nil {
		a.Logger.Warn("Redis unavailable, referral codes will be resolved from the database", map[string]any{
			"addr":  a.Config.Cache.Addr,
			"error": err.Error(),
		})
		return cacheadapter.NoopReferralCodeCache{}
	}
	return redisCache
}

// Migrate applies pending schema migrations and makes sure the bootstrap admin exists
func (a *App) Migrate(ctx context.Context) error {
	if err := migration.NewMigrationManager(a.DB.DB(), a.Logger, a.Clock).MigrateAll(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := migration.EnsureBootstrapAdmin(ctx, a.Users, a.Config.Auth.AdminEmail, a.Config.Auth.AdminPassword); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return nil
}

// Close stops the transaction workers and releases the cache and the pool
func (a *App) Close() {
	if a.Transactions != nil {
		a.Transactions.Shutdown()
	}
	if a.CodeCache != nil {
		if err := a.CodeCache.Close(); err != nil {
			a.Logger.Warn("Error closing referral code cache", map[string]any{"error": err.Error()})
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Error closing database", map[string]any{"error": err.Error()})
	}
}

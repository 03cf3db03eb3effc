package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/repository"
)

// Manager owns the connection pool
type Manager struct {
	config       *Config
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	monitor      *PoolMonitor
	classifier   *repository.ErrorClassifier
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger.Named("database"),
		timeProvider: timeProvider,
		classifier:   repository.NewErrorClassifier(),
	}
}

// Connect opens the pool, retrying while the server is unreachable
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	m.logger.Info("Connecting to database", m.config.Redacted())

	gormConfig := &gorm.Config{
		Logger:                 NewGormLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowQuery),
		NowFunc:                m.timeProvider.Now,
		SkipDefaultTransaction: true,
	}

	var db *gorm.DB
	err := Retry(ctx, m.config.Retry, func(ctx context.Context) error {
		opened, err := gorm.Open(postgres.Open(m.config.DSN()), gormConfig)
		if err != nil {
			return err
		}
		if err := ping(ctx, opened, m.config.QueryTimeout); err != nil {
			closeQuietly(opened)
			return err
		}
		db = opened
		return nil
	}, m.classifier.IsConnectionError, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.db = db
	m.monitor = NewPoolMonitor(sqlDB, m.logger)
	m.monitor.Start(ctx, 30*time.Second)

	m.logger.Info("Successfully connected to database", m.config.Redacted())
	return db, nil
}

func ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return sqlDB.PingContext(ctx)
}

func closeQuietly(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks the database is reachable, used by the health endpoint
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return errors.New("database not connected")
	}
	return ping(ctx, m.db, m.config.QueryTimeout)
}

// Stats returns the latest pool snapshot
func (m *Manager) Stats() PoolStats {
	if m.monitor == nil {
		return PoolStats{}
	}
	return m.monitor.Stats()
}

// UnitOfWork returns a unit of work over this connection
func (m *Manager) UnitOfWork() *UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}

// Close stops monitoring and closes the pool
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)
	if m.monitor != nil {
		m.monitor.Stop()
	}
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

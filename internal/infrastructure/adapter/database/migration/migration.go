package migration

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/model"
)

// step is one schema change. Steps run in order and each is recorded in
// migration_versions once it succeeds.
type step struct {
	version     string
	description string
	run         func(ctx context.Context, tx *gorm.DB) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	steps        []step
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	m := &MigrationManager{
		db:           db,
		logger:       logger.Named("migration"),
		timeProvider: timeProvider,
	}
	m.steps = []step{
		{"1.0.0", "query indexes", createIndexes},
		{"1.1.0", "default settings row", m.seedSettings},
		{"1.2.0", "lower-case legacy emails", lowerCaseEmails},
	}
	return m
}

// CurrentSchemaVersion is the version after every step has run
func (m *MigrationManager) CurrentSchemaVersion() string {
	return m.steps[len(m.steps)-1].version
}

// Models lists every table the application owns
func Models() []any {
	return []any{
		&model.User{},
		&model.Transaction{},
		&model.UserLock{},
		&model.Settings{},
		&model.Announcement{},
		&model.Notification{},
	}
}

// MigrateAll brings the schema up to date: it auto-migrates the models and
// runs every step newer than the recorded version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	target := m.CurrentSchemaVersion()
	m.logger.Info("Starting database migrations", map[string]any{"target_version": target})

	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return fmt.Errorf("creating migration version table: %w", err)
	}

	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current == target {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{"version": current})
		return nil
	}

	pending, err := m.pendingSteps(current)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	for _, s := range pending {
		m.logger.Info("Applying migration", map[string]any{"version": s.version, "description": s.description})

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := s.run(ctx, tx); err != nil {
				return err
			}
			return tx.Create(&model.MigrationVersion{
				Version:   s.version,
				AppliedAt: m.timeProvider.Now(),
				Details:   s.description,
			}).Error
		})
		if err != nil {
			m.logger.Error("Migration failed", map[string]any{"version": s.version, "error": err.Error()})
			return fmt.Errorf("migration %s (%s): %w", s.version, s.description, err)
		}
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"from":    current,
		"version": target,
		"applied": len(pending),
	})
	return nil
}

// pendingSteps returns the steps after current; an empty current means a fresh database
func (m *MigrationManager) pendingSteps(current string) ([]step, error) {
	if current == "" {
		return m.steps, nil
	}
	for i, s := range m.steps {
		if s.version == current {
			return m.steps[i+1:], nil
		}
	}
	return nil, fmt.Errorf("unknown schema version %q, expected one of the known migrations", current)
}

// GetCurrentVersion gets the latest applied migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var version model.MigrationVersion
	err := m.db.WithContext(ctx).Order("applied_at DESC, id DESC").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

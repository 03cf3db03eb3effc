package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/model"
)

// UserLockRepository implements user locking functionality using GORM
type UserLockRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserLockRepository creates a new UserLockRepository instance
func NewUserLockRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserLockRepository {
	return &UserLockRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.UserLockRepository = (*UserLockRepository)(nil)

// AcquireLock takes the user's lease, or steals it when the current one expired.
// The upsert only touches an existing row whose lease ran out, so zero affected
// rows means another process holds the lock.
func (r *UserLockRepository) AcquireLock(ctx context.Context, userID uint64, duration time.Duration) error {
	now := r.timeProvider.Now()
	expiresAt := now.Add(duration)

	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_locks (user_id, locked_at, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET locked_at = EXCLUDED.locked_at,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = EXCLUDED.updated_at
		WHERE user_locks.expires_at <= ?`,
		userID, now, expiresAt, now, now,
		now,
	)

	if result.Error != nil {
		if isContextError(result.Error) {
			r.logger.Warn("Context ended while acquiring lock", map[string]any{
				"user_id": userID,
				"error":   result.Error.Error(),
			})
			return fmt.Errorf("lock acquisition timeout: %w", result.Error)
		}
		return r.errorClassifier.translate(r.logger, "acquiring lock", result.Error,
			dbErrorMapping{duplicate: errs.ErrUserLocked}, map[string]any{"user_id": userID})
	}

	if result.RowsAffected == 0 {
		r.logger.Debug("User is already locked", map[string]any{"user_id": userID})
		return errs.ErrUserLocked
	}

	r.logger.Debug("Lock acquired", map[string]any{
		"user_id":    userID,
		"expires_at": expiresAt,
	})
	return nil
}

// ReleaseLock deletes the user's lease. A lease that already expired or was
// cleaned up is not an error.
func (r *UserLockRepository) ReleaseLock(ctx context.Context, userID uint64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserLock{})

	if result.Error != nil && isContextError(result.Error) {
		r.logger.Warn("Context ended while releasing lock, lock will expire on its own", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil
	}
	if result.Error != nil {
		return r.errorClassifier.translate(r.logger, "releasing lock", result.Error,
			dbErrorMapping{}, map[string]any{"user_id": userID})
	}

	if result.RowsAffected == 0 {
		r.logger.Debug("No lock found to release", map[string]any{"user_id": userID})
	}
	return nil
}

// CleanupExpiredLocks deletes expired leases and returns how many were removed
func (r *UserLockRepository) CleanupExpiredLocks(ctx context.Context) (int64, error) {
	now := r.timeProvider.Now()

	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.UserLock{})
	if result.Error != nil {
		return 0, r.errorClassifier.translate(r.logger, "cleaning up expired locks", result.Error, dbErrorMapping{}, nil)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Expired locks removed", map[string]any{
			"locks_removed": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}

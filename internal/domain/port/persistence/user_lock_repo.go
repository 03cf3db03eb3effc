package persistence

import (
	"context"
	"time"
)

// UserLockRepository manages short-lived per-user locks shared by every API
// instance, so an admin decision and a user request on the same balance never
// interleave across processes.
type UserLockRepository interface {
	// AcquireLock attempts to acquire a lock on the user; the lock expires after duration
	//
	// Possible errors:
	// - ErrUserLocked: If user is already locked by another process
	// - ErrDatabaseConnection: If database connection fails
	AcquireLock(ctx context.Context, userID uint64, duration time.Duration) error

	// ReleaseLock releases a previously acquired lock
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ReleaseLock(ctx context.Context, userID uint64) error

	// CleanupExpiredLocks deletes expired locks and returns how many were removed
	CleanupExpiredLocks(ctx context.Context) (int64, error)
}

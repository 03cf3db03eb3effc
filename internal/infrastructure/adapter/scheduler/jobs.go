package scheduler

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// Job names, also used as metric labels
const (
	LockCleanupJob       = "lock_cleanup"
	NotificationPurgeJob = "notification_purge"
	DepositExpiryJob     = "deposit_expiry"
)

const jobTimeout = 2 * time.Minute

// MaintenanceConfig holds the cron specs of the maintenance jobs
type MaintenanceConfig struct {
	LockCleanupSpec       string
	NotificationPurgeSpec string
	NotificationRetention time.Duration
	DepositExpirySpec     string
	DepositMaxAge         time.Duration
}

// MaintenanceDeps are the services the maintenance jobs drive
type MaintenanceDeps struct {
	Locks         persistence.UserLockRepository
	Notifications usecase.NotificationUseCase
	Transactions  usecase.TransactionUseCase
	Logger        coreport.Logger
}

// RegisterMaintenance schedules lock cleanup, notification purge and stale deposit expiry
func RegisterMaintenance(s *Scheduler, cfg MaintenanceConfig, deps MaintenanceDeps) error {
	err := s.Add(LockCleanupJob, cfg.LockCleanupSpec, jobTimeout, func(ctx context.Context) error {
		_, err := deps.Locks.CleanupExpiredLocks(ctx)
		return err
	})
	if err != nil {
		return err
	}

	err = s.Add(NotificationPurgeJob, cfg.NotificationPurgeSpec, jobTimeout, func(ctx context.Context) error {
		removed, err := deps.Notifications.PurgeRead(ctx, cfg.NotificationRetention)
		if err == nil && removed > 0 {
			deps.Logger.Info("Read notifications purged", map[string]any{"removed": removed})
		}
		return err
	})
	if err != nil {
		return err
	}

	return s.Add(DepositExpiryJob, cfg.DepositExpirySpec, jobTimeout, func(ctx context.Context) error {
		expired, err := deps.Transactions.ExpireStaleDeposits(ctx, cfg.DepositMaxAge)
		if err == nil && expired > 0 {
			deps.Logger.Info("Stale deposits expired", map[string]any{"expired": expired})
		}
		return err
	})
}

package notification

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// ListLimit caps how many notifications a feed request returns
const ListLimit = 50

// Service implements usecase.NotificationUseCase. Repositories come from the
// unit of work so notifications written during a deposit approval commit or
// roll back with it.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a notification service
func NewService(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.NotificationUseCase = (*Service)(nil)

func (s *Service) Notify(ctx context.Context, userID uint64, kind entity.NotificationKind, title, message string) error {
	n := &entity.Notification{
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.timeProvider.Now(),
	}
	if err := s.uow.GetNotificationRepository(ctx).Create(ctx, n); err != nil {
		s.logger.Error("Failed to store notification", map[string]any{
			"user_id": userID,
			"kind":    kind,
			"error":   err.Error(),
		})
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID uint64, unreadOnly bool) ([]*entity.Notification, error) {
	return s.uow.GetNotificationRepository(ctx).ListByUser(ctx, userID, unreadOnly, ListLimit)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	return s.uow.GetNotificationRepository(ctx).MarkRead(ctx, userID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	return s.uow.GetNotificationRepository(ctx).MarkAllRead(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.uow.GetNotificationRepository(ctx).CountUnread(ctx, userID)
}

// PurgeRead removes read notifications older than olderThan
func (s *Service) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.timeProvider.Now().Add(-olderThan)
	removed, err := s.uow.GetNotificationRepository(ctx).DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Purged read notifications", map[string]any{
		"removed": removed,
		"cutoff":  cutoff,
	})
	return removed, nil
}

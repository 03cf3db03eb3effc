package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// SettingsUseCase reads and updates platform settings
type SettingsUseCase interface {
	// Get returns stored settings or the defaults when none were saved
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, settings *entity.Settings, adminID uint64) (*entity.Settings, error)
}

// AnnouncementInput is the editable part of an announcement
type AnnouncementInput struct {
	Title   string
	Content string
	Date    *time.Time // defaults to now
	Active  bool
}

// AnnouncementUseCase manages announcements
type AnnouncementUseCase interface {
	Create(ctx context.Context, input AnnouncementInput) (*entity.Announcement, error)
	Update(ctx context.Context, id uint64, input AnnouncementInput) (*entity.Announcement, error)
	Delete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]*entity.Announcement, error)
	ListActive(ctx context.Context) ([]*entity.Announcement, error)
}

// NotificationUseCase manages user notifications
type NotificationUseCase interface {
	// Notify stores a notification; with a unit-of-work context it joins that transaction
	Notify(ctx context.Context, userID uint64, kind entity.NotificationKind, title, message string) error
	List(ctx context.Context, userID uint64, unreadOnly bool) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
	// PurgeRead deletes read notifications older than the given age
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

// AdminUseCase serves the back-office overview
type AdminUseCase interface {
	Dashboard(ctx context.Context) (*entity.Dashboard, error)
}

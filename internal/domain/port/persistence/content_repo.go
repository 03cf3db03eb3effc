package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// SettingsRepository stores the single settings row
type SettingsRepository interface {
	// Get returns the stored settings
	//
	// Possible errors:
	// - ErrNotFound: If settings were never saved
	// - ErrDatabaseConnection: If database connection fails
	Get(ctx context.Context) (*entity.Settings, error)

	// Save inserts or replaces the settings row
	Save(ctx context.Context, settings *entity.Settings) error
}

// AnnouncementRepository stores announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *entity.Announcement) error

	// Update replaces title, content, date and active flag
	//
	// Possible errors:
	// - ErrAnnouncementNotFound: If the announcement doesn't exist
	Update(ctx context.Context, announcement *entity.Announcement) error

	// Delete removes an announcement
	//
	// Possible errors:
	// - ErrAnnouncementNotFound: If the announcement doesn't exist
	Delete(ctx context.Context, id uint64) error

	GetByID(ctx context.Context, id uint64) (*entity.Announcement, error)

	// List returns announcements newest first, optionally only active ones
	List(ctx context.Context, activeOnly bool) ([]*entity.Announcement, error)
}

// NotificationRepository stores user notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns up to limit notifications for a user, newest first
	ListByUser(ctx context.Context, userID uint64, unreadOnly bool, limit int) ([]*entity.Notification, error)

	// MarkRead marks one of the user's notifications as read
	//
	// Possible errors:
	// - ErrNotificationNotFound: If the user has no such notification
	MarkRead(ctx context.Context, userID, notificationID uint64) error

	// MarkAllRead marks every unread notification of the user and returns the count
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)

	CountUnread(ctx context.Context, userID uint64) (int64, error)

	// DeleteReadBefore removes read notifications created before cutoff
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/model"
)

// SettingsRepository stores the single settings row
type SettingsRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewSettingsRepository creates a new SettingsRepository instance
func NewSettingsRepository(db *gorm.DB, logger coreport.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

var _ persistence.SettingsRepository = (*SettingsRepository)(nil)

func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	var row model.Settings
	if err := r.db.WithContext(ctx).First(&row, entity.SettingsID).Error; err != nil {
		return nil, r.errorClassifier.translate(r.logger, "getting settings", err, dbErrorMapping{}, nil)
	}

	settings := &entity.Settings{
		MinDeposit:    row.MinDeposit,
		MaxDeposit:    row.MaxDeposit,
		MinWithdrawal: row.MinWithdrawal,
		MaxWithdrawal: row.MaxWithdrawal,
		BankAccounts:  row.BankAccounts,
		Banner:        row.Banner,
		Popup:         row.Popup,
		ReferralRates: [entity.MaxReferralDepth]int{row.Level1RateBps, row.Level2RateBps, row.Level3RateBps},
		UpdatedAt:     row.UpdatedAt,
		UpdatedBy:     row.UpdatedBy,
	}
	if settings.BankAccounts == nil {
		settings.BankAccounts = []entity.BankAccount{}
	}
	return settings, nil
}

// Save inserts or replaces the settings row
func (r *SettingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	row := model.Settings{
		ID:            entity.SettingsID,
		MinDeposit:    settings.MinDeposit,
		MaxDeposit:    settings.MaxDeposit,
		MinWithdrawal: settings.MinWithdrawal,
		MaxWithdrawal: settings.MaxWithdrawal,
		BankAccounts:  settings.BankAccounts,
		Banner:        settings.Banner,
		Popup:         settings.Popup,
		Level1RateBps: settings.ReferralRates[0],
		Level2RateBps: settings.ReferralRates[1],
		Level3RateBps: settings.ReferralRates[2],
		UpdatedAt:     settings.UpdatedAt,
		UpdatedBy:     settings.UpdatedBy,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return r.errorClassifier.translate(r.logger, "saving settings", err, dbErrorMapping{}, nil)
	}
	return nil
}

// AnnouncementRepository stores announcements
type AnnouncementRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAnnouncementRepository creates a new AnnouncementRepository instance
func NewAnnouncementRepository(db *gorm.DB, logger coreport.Logger) *AnnouncementRepository {
	return &AnnouncementRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

var _ persistence.AnnouncementRepository = (*AnnouncementRepository)(nil)

var announcementErrors = dbErrorMapping{notFound: errs.ErrAnnouncementNotFound}

func announcementToEntity(m *model.Announcement) *entity.Announcement {
	return &entity.Announcement{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Date:      m.Date,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement *entity.Announcement) error {
	row := model.Announcement{
		Title:     announcement.Title,
		Content:   announcement.Content,
		Date:      announcement.Date,
		Active:    announcement.Active,
		CreatedAt: announcement.CreatedAt,
		UpdatedAt: announcement.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.errorClassifier.translate(r.logger, "creating announcement", err, announcementErrors, nil)
	}
	announcement.ID = row.ID
	return nil
}

// Update replaces title, content, date and active flag
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *entity.Announcement) error {
	result := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("id = ?", announcement.ID).
		Updates(map[string]any{
			"title":      announcement.Title,
			"content":    announcement.Content,
			"date":       announcement.Date,
			"active":     announcement.Active,
			"updated_at": announcement.UpdatedAt,
		})
	if result.Error != nil {
		return r.errorClassifier.translate(r.logger, "updating announcement", result.Error, announcementErrors,
			map[string]any{"announcement_id": announcement.ID})
	}
	if result.RowsAffected == 0 {
		return errs.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Announcement{}, id)
	if result.Error != nil {
		return r.errorClassifier.translate(r.logger, "deleting announcement", result.Error, announcementErrors,
			map[string]any{"announcement_id": id})
	}
	if result.RowsAffected == 0 {
		return errs.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id uint64) (*entity.Announcement, error) {
	var row model.Announcement
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, r.errorClassifier.translate(r.logger, "getting announcement", err, announcementErrors,
			map[string]any{"announcement_id": id})
	}
	return announcementToEntity(&row), nil
}

// List returns announcements newest first, optionally only active ones
func (r *AnnouncementRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&model.Announcement{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []model.Announcement
	if err := query.Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.translate(r.logger, "listing announcements", err, announcementErrors, nil)
	}

	announcements := make([]*entity.Announcement, 0, len(rows))
	for i := range rows {
		announcements = append(announcements, announcementToEntity(&rows[i]))
	}
	return announcements, nil
}

// NotificationRepository stores user notifications
type NotificationRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(db *gorm.DB, logger coreport.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

var _ persistence.NotificationRepository = (*NotificationRepository)(nil)

var notificationErrors = dbErrorMapping{notFound: errs.ErrNotificationNotFound}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	row := model.Notification{
		UserID:    notification.UserID,
		Kind:      string(notification.Kind),
		Title:     notification.Title,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(&row).Error; err != nil {
		return r.errorClassifier.translate(r.logger, "creating notification", err, notificationErrors,
			map[string]any{"user_id": notification.UserID})
	}
	notification.ID = row.ID
	return nil
}

// ListByUser returns up to limit notifications for a user, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []model.Notification
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.translate(r.logger, "listing notifications", err, notificationErrors,
			map[string]any{"user_id": userID})
	}

	notifications := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, &entity.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Kind:      entity.NotificationKind(row.Kind),
			Title:     row.Title,
			Message:   row.Message,
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		})
	}
	return notifications, nil
}

// MarkRead marks one of the user's notifications as read
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return r.errorClassifier.translate(r.logger, "marking notification read", result.Error, notificationErrors,
			map[string]any{"user_id": userID, "notification_id": notificationID})
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the user and returns the count
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, r.errorClassifier.translate(r.logger, "marking notifications read", result.Error, notificationErrors,
			map[string]any{"user_id": userID})
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, r.errorClassifier.translate(r.logger, "counting unread notifications", err, notificationErrors,
			map[string]any{"user_id": userID})
	}
	return count, nil
}

// DeleteReadBefore removes read notifications created before cutoff
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		return 0, r.errorClassifier.translate(r.logger, "purging notifications", result.Error, notificationErrors, nil)
	}
	return result.RowsAffected, nil
}

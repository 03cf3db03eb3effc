package migration

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/model"
)

// seedSettings inserts the default settings row unless one exists
func (m *MigrationManager) seedSettings(ctx context.Context, tx *gorm.DB) error {
	defaults := entity.DefaultSettings()
	row := model.Settings{
		ID:            entity.SettingsID,
		MinDeposit:    defaults.MinDeposit,
		MaxDeposit:    defaults.MaxDeposit,
		MinWithdrawal: defaults.MinWithdrawal,
		MaxWithdrawal: defaults.MaxWithdrawal,
		BankAccounts:  defaults.BankAccounts,
		Banner:        defaults.Banner,
		Popup:         defaults.Popup,
		Level1RateBps: defaults.ReferralRates[0],
		Level2RateBps: defaults.ReferralRates[1],
		Level3RateBps: defaults.ReferralRates[2],
		UpdatedAt:     m.timeProvider.Now(),
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// EnsureBootstrapAdmin creates or promotes the configured admin account.
// Nothing happens when no admin email is configured.
func EnsureBootstrapAdmin(ctx context.Context, users usecase.UserUseCase, email, password string) error {
	if email == "" {
		return nil
	}
	return users.CreateDefaultAdmin(ctx, email, password)
}

package settings

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// Service implements usecase.SettingsUseCase
type Service struct {
	repo         persistence.SettingsRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a settings service
func NewService(repo persistence.SettingsRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.SettingsUseCase = (*Service)(nil)

// Get returns the stored settings, or the defaults if an admin never saved any
func (s *Service) Get(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return entity.DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// Update validates and stores new settings
func (s *Service) Update(ctx context.Context, settings *entity.Settings, adminID uint64) (*entity.Settings, error) {
	if err := settings.Validate(); err != nil {
		s.logger.Warn("Rejected settings update", map[string]any{
			"admin_id": adminID,
			"error":    err.Error(),
		})
		return nil, err
	}

	if settings.BankAccounts == nil {
		settings.BankAccounts = []entity.BankAccount{}
	}
	settings.UpdatedAt = s.timeProvider.Now()
	settings.UpdatedBy = &adminID

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("Settings updated", map[string]any{
		"admin_id":       adminID,
		"min_deposit":    entity.AmountInCentsToString(settings.MinDeposit),
		"max_deposit":    entity.AmountInCentsToString(settings.MaxDeposit),
		"min_withdrawal": entity.AmountInCentsToString(settings.MinWithdrawal),
		"max_withdrawal": entity.AmountInCentsToString(settings.MaxWithdrawal),
		"referral_rates": settings.ReferralRates,
	})
	return settings, nil
}

package referral

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

const (
	defaultMaxCodeAttempts = entity.MaxReferralCodeAttempts
	backfillBatchSize      = 100
	// maxAncestorWalk bounds the debugger's walk up a corrupted chain
	maxAncestorWalk = 64
)

// Options tunes referral code generation
type Options struct {
	CodeLength      int
	MaxCodeAttempts int
}

// Service implements usecase.ReferralUseCase
type Service struct {
	uow           persistence.UnitOfWork
	settings      usecase.SettingsUseCase
	notifications usecase.NotificationUseCase
	codeCache     cache.ReferralCodeCache
	codeGenerator coreport.CodeGenerator
	idGenerator   coreport.IDGenerator
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	options       Options
}

// NewService creates a referral service
func NewService(
	uow persistence.UnitOfWork,
	settings usecase.SettingsUseCase,
	notifications usecase.NotificationUseCase,
	codeCache cache.ReferralCodeCache,
	codeGenerator coreport.CodeGenerator,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	options Options,
) *Service {
	if options.CodeLength <= 0 {
		options.CodeLength = entity.DefaultReferralCodeLength
	}
	if options.MaxCodeAttempts <= 0 {
		options.MaxCodeAttempts = defaultMaxCodeAttempts
	}

	return &Service{
		uow:           uow,
		settings:      settings,
		notifications: notifications,
		codeCache:     codeCache,
		codeGenerator: codeGenerator,
		idGenerator:   idGenerator,
		timeProvider:  timeProvider,
		logger:        logger,
		options:       options,
	}
}

var _ usecase.ReferralUseCase = (*Service)(nil)

// Earnings returns the sum of the user's completed referral bonuses
func (s *Service) Earnings(ctx context.Context, userID uint64) (int64, error) {
	byLevel, err := s.uow.GetTransactionRepository(ctx).SumReferralBonusesByLevel(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, amount := range byLevel {
		total += amount
	}
	return total, nil
}

package user

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/security"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// UserUseCase implements the user business logic
type UserUseCase struct {
	uow           persistence.UnitOfWork
	referrals     usecase.ReferralUseCase
	notifications usecase.NotificationUseCase
	hasher        security.PasswordHasher
	tokens        security.TokenIssuer
	timeProvider  coreport.TimeProvider
	metrics       coreport.Metrics
	logger        coreport.Logger
}

// NewUserUseCase creates a new user use case instance
func NewUserUseCase(
	uow persistence.UnitOfWork,
	referrals usecase.ReferralUseCase,
	notifications usecase.NotificationUseCase,
	hasher security.PasswordHasher,
	tokens security.TokenIssuer,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		uow:           uow,
		referrals:     referrals,
		notifications: notifications,
		hasher:        hasher,
		tokens:        tokens,
		timeProvider:  timeProvider,
		metrics:       metrics,
		logger:        logger,
	}
}

var _ usecase.UserUseCase = (*UserUseCase)(nil)

// GetProfile returns the user record
func (u *UserUseCase) GetProfile(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return u.uow.GetUserRepository(ctx).GetByID(ctx, userID)
}

// UserExists checks if a user exists with the given ID
func (u *UserUseCase) UserExists(ctx context.Context, userID uint64) (bool, error) {
	if userID == 0 {
		return false, errs.ErrInvalidUserID
	}

	_, err := u.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// IsAdmin checks the stored role, so a revoked admin loses access even while
// holding an unexpired token
func (u *UserUseCase) IsAdmin(ctx context.Context, userID uint64) (bool, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin() && user.IsActive(), nil
}

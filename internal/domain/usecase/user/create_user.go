package user

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// Register creates a new account. An optional referral code links the new
// user to its referrer; every user receives a fresh code of its own.
func (u *UserUseCase) Register(ctx context.Context, req usecase.RegisterRequest) (*entity.User, error) {
	email, err := entity.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := entity.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	repo := u.uow.GetUserRepository(ctx)

	// Check if user already exists
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, errs.ErrDuplicateUser
	} else if !errs.IsUserNotFoundError(err) {
		return nil, err
	}

	var referrerID *uint64
	if strings.TrimSpace(req.ReferralCode) != "" {
		owner, err := u.referrals.ResolveCode(ctx, req.ReferralCode)
		if err != nil {
			u.logger.Warn("Registration with unknown referral code", map[string]any{
				"email":         email,
				"referral_code": req.ReferralCode,
			})
			return nil, err
		}
		referrerID = &owner.UserID
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.createWithFreshCode(ctx, email, req.Phone, hash, referrerID)
	if err != nil {
		return nil, err
	}

	u.metrics.UserRegistered(referrerID != nil)

	fields := map[string]any{
		"user_id":       user.ID,
		"referral_code": user.ReferralCode,
	}
	if referrerID != nil {
		fields["referrer_id"] = *referrerID
	}
	u.logger.Info("User registered", fields)

	return user, nil
}

// createWithFreshCode inserts the user under a newly drawn referral code. A
// code claimed by a concurrent registration between the draw and the insert
// is replaced and the insert retried.
func (u *UserUseCase) createWithFreshCode(ctx context.Context, email, phone, hash string, referrerID *uint64) (*entity.User, error) {
	repo := u.uow.GetUserRepository(ctx)

	for attempt := 1; attempt <= entity.MaxReferralCodeAttempts; attempt++ {
		code, err := u.referrals.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}

		user, err := entity.NewUser(email, phone, hash, code, referrerID, u.timeProvider)
		if err != nil {
			return nil, err
		}

		err = repo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, errs.ErrReferralCodeTaken) {
			return nil, err
		}

		u.logger.Warn("Referral code claimed concurrently, drawing another", map[string]any{
			"attempt": attempt,
			"code":    code,
		})
	}

	u.logger.Error("Exhausted referral code attempts at registration", map[string]any{
		"attempts": entity.MaxReferralCodeAttempts,
	})
	return nil, errs.ErrReferralCodeUnavailable
}

// CreateDefaultAdmin makes sure the bootstrap admin account exists and holds
// the admin role. An empty email disables the bootstrap.
func (u *UserUseCase) CreateDefaultAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}

	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return err
	}

	repo := u.uow.GetUserRepository(ctx)
	user, err := repo.GetByEmail(ctx, normalized)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return nil
		}
	case errs.IsUserNotFoundError(err):
		user, err = u.Register(ctx, usecase.RegisterRequest{Email: normalized, Password: password})
		if err != nil {
			return err
		}
	default:
		return err
	}

	user.Role = entity.RoleAdmin
	user.UpdatedAt = u.timeProvider.Now()
	if err := repo.Update(ctx, user); err != nil {
		return err
	}

	u.logger.Info("Default admin ensured", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

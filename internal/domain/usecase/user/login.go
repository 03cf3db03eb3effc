package user

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error.
func (u *UserUseCase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := u.uow.GetUserRepository(ctx).GetByEmail(ctx, normalized)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		u.logger.Warn("Failed login attempt", map[string]any{
			"user_id": user.ID,
		})
		return nil, errs.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, errs.ErrUserDisabled
	}

	token, expiresAt, err := u.tokens.Issue(user)
	if err != nil {
		u.logger.Error("Failed to issue token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	u.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return &usecase.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

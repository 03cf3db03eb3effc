package user

import (
	"context"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// GetFormattedUserBalance retrieves a user's balance and returns it in the standardized format
func (u *UserUseCase) GetFormattedUserBalance(ctx context.Context, userID uint64) (*usecase.UserBalanceResponse, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := u.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		u.logger.Error("Failed to get user", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	response := &usecase.UserBalanceResponse{
		UserID:  user.ID,
		Balance: user.GetBalance(),
	}

	u.logger.Debug("User balance retrieved", map[string]any{
		"user_id": userID,
		"balance": response.Balance,
	})

	return response, nil
}

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// ListUsers returns one page of users for the back office
func (u *UserUseCase) ListUsers(ctx context.Context, filter entity.UserFilter) (*entity.Page[*entity.User], error) {
	if filter.Status != "" && !entity.IsValidUserStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidRequest, filter.Status)
	}
	filter.Page, filter.PageSize = entity.NormalizePage(filter.Page, filter.PageSize)
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := u.uow.GetUserRepository(ctx).List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.Page[*entity.User]{
		Items:    users,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// SetStatus enables or disables an account and tells the user about it
func (u *UserUseCase) SetStatus(ctx context.Context, userID uint64, status entity.UserStatus) (*entity.User, error) {
	if !entity.IsValidUserStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidRequest, status)
	}

	var user *entity.User
	err := u.uow.Execute(ctx, func(txCtx context.Context) error {
		repo := u.uow.GetUserRepository(txCtx)

		var err error
		user, err = repo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user.Status == status {
			return nil
		}

		user.Status = status
		user.UpdatedAt = u.timeProvider.Now()
		if err := repo.Update(txCtx, user); err != nil {
			return err
		}

		return u.notifications.Notify(txCtx, user.ID, entity.NotifyAccountStatus,
			"Account status changed",
			fmt.Sprintf("Your account is now %s.", strings.ToLower(string(status))))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("User status changed", map[string]any{
		"user_id": userID,
		"status":  status,
	})
	return user, nil
}

// SetRole grants or revokes the admin role
func (u *UserUseCase) SetRole(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrInvalidRequest, role)
	}

	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	repo := u.uow.GetUserRepository(ctx)
	user, err := repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if user.Role != role {
		user.Role = role
		user.UpdatedAt = u.timeProvider.Now()
		if err := repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	u.logger.Info("User role set", map[string]any{
		"user_id": user.ID,
		"role":    role,
	})
	return user, nil
}

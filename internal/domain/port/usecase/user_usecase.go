package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// RegisterRequest carries sign-up data
type RegisterRequest struct {
	Email        string
	Phone        string
	Password     string
	ReferralCode string // optional
}

// AuthResult is returned by a successful login
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// UserBalanceResponse represents the standardized balance response
type UserBalanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"` // Formatted with 2 decimal places
}

// UserUseCase defines methods for user-related business operations
type UserUseCase interface {
	// Register creates an account, resolving the optional referral code and
	// assigning a fresh code to the new user
	Register(ctx context.Context, req RegisterRequest) (*entity.User, error)

	// Login verifies credentials and issues an access token
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	GetProfile(ctx context.Context, userID uint64) (*entity.User, error)

	// GetFormattedUserBalance retrieves user balance with properly formatted response
	GetFormattedUserBalance(ctx context.Context, userID uint64) (*UserBalanceResponse, error)

	// UserExists checks if a user exists with the given ID
	UserExists(ctx context.Context, userID uint64) (bool, error)

	// IsAdmin re-reads the role from storage
	IsAdmin(ctx context.Context, userID uint64) (bool, error)

	ListUsers(ctx context.Context, filter entity.UserFilter) (*entity.Page[*entity.User], error)

	// SetStatus enables or disables an account and notifies the user
	SetStatus(ctx context.Context, userID uint64, status entity.UserStatus) (*entity.User, error)

	// SetRole grants or revokes admin by email
	SetRole(ctx context.Context, email string, role entity.Role) (*entity.User, error)

	// CreateDefaultAdmin makes sure the configured bootstrap admin exists
	CreateDefaultAdmin(ctx context.Context, email, password string) error
}

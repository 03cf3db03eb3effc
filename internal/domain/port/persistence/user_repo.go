package persistence

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// UserRepository defines methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by normalized email
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this email
	// - ErrDatabaseConnection: If database connection fails
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByReferralCode retrieves the owner of a normalized referral code
	//
	// Possible errors:
	// - ErrReferralCodeNotFound: If no user owns the code
	// - ErrDatabaseConnection: If database connection fails
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// ReferralCodeExists checks whether a code is already taken
	ReferralCodeExists(ctx context.Context, code string) (bool, error)

	// Create inserts a new user and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateUser: If the email or referral code is taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update persists profile, status, role and referral code changes.
	// Balance columns are only changed through the balance methods below.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDuplicateUser: If the new referral code is taken
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, user *entity.User) error

	// ProcessBalanceChange locks the user row and applies a signed change in cents
	// Returns the updated user on success
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientBalance: If balance would become negative
	// - ErrUserLocked: If user is locked by another operation
	// - ErrDatabaseConnection: If database connection fails
	ProcessBalanceChange(ctx context.Context, userID uint64, balanceChange int64) (*entity.User, error)

	// ApplyDeposit locks the user row, credits a completed deposit and updates
	// the deposit history. The bool result is true on the user's first deposit.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrUserLocked: If user is locked by another operation
	// - ErrDatabaseConnection: If database connection fails
	ApplyDeposit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, bool, error)

	// ListByReferrers returns every user whose referrer is one of the given IDs
	ListByReferrers(ctx context.Context, referrerIDs []uint64) ([]*entity.User, error)

	// CountByReferrer returns the number of direct referrals of a user
	CountByReferrer(ctx context.Context, referrerID uint64) (int64, error)

	// List returns one page of users matching the filter and the total match count
	List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, int64, error)

	// ListMissingReferralCode returns up to limit users without a referral code
	ListMissingReferralCode(ctx context.Context, limit int) ([]*entity.User, error)

	// Summary aggregates user counts and balances for the admin dashboard
	Summary(ctx context.Context) (*entity.UserSummary, error)
}

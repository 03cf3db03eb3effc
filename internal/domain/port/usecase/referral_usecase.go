package usecase

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// ReferralUseCase defines the referral program operations
type ReferralUseCase interface {
	// GenerateCode returns an unused referral code
	GenerateCode(ctx context.Context) (string, error)

	// ResolveCode finds the owner of a referral code, case-insensitively
	ResolveCode(ctx context.Context, code string) (*entity.ReferralOwner, error)

	DirectReferrals(ctx context.Context, userID uint64) ([]entity.ReferralMember, error)

	// Team walks three levels of referrals
	Team(ctx context.Context, userID uint64) (*entity.ReferralTeam, error)

	Stats(ctx context.Context, userID uint64) (*entity.ReferralStats, error)

	// Earnings returns the user's completed referral bonuses in cents
	Earnings(ctx context.Context, userID uint64) (int64, error)

	// PayFirstDepositBonuses credits the depositor's ancestors. It must run
	// with the context of the unit of work that approves the deposit.
	PayFirstDepositBonuses(ctx context.Context, depositor *entity.User, amountInCents int64) ([]*entity.Transaction, error)

	Debug(ctx context.Context, userID uint64) (*entity.ReferralDebugReport, error)

	// BackfillCodes assigns codes to users that have none and returns the count
	BackfillCodes(ctx context.Context) (int, error)
}

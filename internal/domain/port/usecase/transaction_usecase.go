package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// TransactionRequest is a user-initiated money movement
type TransactionRequest struct {
	UserID      uint64
	Amount      string
	Description string
}

// AdjustmentRequest is an admin balance correction
type AdjustmentRequest struct {
	UserID      uint64
	AdminID     uint64
	Amount      string
	Add         bool // false deducts
	Description string
}

// TransactionUseCase defines methods for transaction-related business operations
type TransactionUseCase interface {
	// RequestDeposit records a pending deposit within the configured limits
	RequestDeposit(ctx context.Context, req TransactionRequest) (*entity.Transaction, error)

	// RequestWithdrawal holds the amount from the balance and records a pending withdrawal
	RequestWithdrawal(ctx context.Context, req TransactionRequest) (*entity.Transaction, error)

	// Invest debits the balance immediately
	Invest(ctx context.Context, req TransactionRequest) (*entity.Transaction, error)

	// ApproveTransaction completes a pending deposit or withdrawal. Approving a
	// user's first deposit pays referral bonuses to up to three ancestors.
	ApproveTransaction(ctx context.Context, transactionID string, adminID uint64) (*entity.Transaction, error)

	// RejectTransaction fails a pending deposit or withdrawal; withdrawals are refunded
	RejectTransaction(ctx context.Context, transactionID string, adminID uint64, reason string) (*entity.Transaction, error)

	// AdjustBalance records a completed Admin_Add or Admin_Deduct
	AdjustBalance(ctx context.Context, req AdjustmentRequest) (*entity.Transaction, error)

	ListUserTransactions(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.Page[*entity.Transaction], error)

	ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*entity.Page[*entity.Transaction], error)

	// ExpireStaleDeposits fails deposits left pending longer than olderThan
	ExpireStaleDeposits(ctx context.Context, olderThan time.Duration) (int64, error)
}

package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// TransactionRepository defines methods to interact with transaction data
type TransactionRepository interface {
	// Create saves a new transaction and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If transaction with the same ID already exists
	// - ErrUserNotFound: If referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update updates status, result balance and processing fields by transaction ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByTransactionID retrieves a transaction by its external transaction ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// GetForUpdate retrieves a transaction and locks its row until the surrounding
	// unit of work ends
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrUserLocked: If the row is locked by another operation
	// - ErrDatabaseConnection: If database connection fails
	GetForUpdate(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// TransactionExists checks if a transaction with the given ID already exists
	TransactionExists(ctx context.Context, transactionID string) (bool, error)

	// List returns one page of transactions matching the filter and the total match count
	List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, int64, error)

	// SumReferralBonusesByLevel returns completed referral bonus totals in cents
	// keyed by referral level for the beneficiary
	SumReferralBonusesByLevel(ctx context.Context, userID uint64) (map[int]int64, error)

	// Summary aggregates pending and completed totals for the admin dashboard
	Summary(ctx context.Context) (*entity.TransactionSummary, error)

	// FailStalePending marks pending transactions created before cutoff as failed
	// and returns how many were changed. Pending withdrawals are excluded because
	// their held amount must be refunded through a rejection.
	FailStalePending(ctx context.Context, txType entity.TransactionType, cutoff time.Time, reason string) (int64, error)
}

package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	tport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// TransactionType represents what a transaction does to a balance
type TransactionType string

// Transaction types
const (
	TypeDeposit       TransactionType = "Deposit"
	TypeWithdrawal    TransactionType = "Withdrawal"
	TypeInvestment    TransactionType = "Investment"
	TypeAdminAdd      TransactionType = "Admin_Add"
	TypeAdminDeduct   TransactionType = "Admin_Deduct"
	TypeReferralBonus TransactionType = "Referral_Bonus"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
)

// Transaction represents a money movement on a user's balance
type Transaction struct {
	ID            uint64            // Database identifier
	TransactionID string            // Unique external transaction identifier
	UserID        uint64            // Owner of the transaction
	Type          TransactionType   // What the transaction does
	Status        TransactionStatus // Lifecycle status
	Amount        string            // Amount as a string with 2 decimal places
	AmountInCents int64             // Amount converted to cents for precise calculations
	ResultBalance string            // Balance after this transaction was applied
	Description   string            // Optional free text
	FailureReason string            // Why the transaction failed or was rejected
	SourceUserID  *uint64           // Depositor who triggered a referral bonus
	ReferralLevel int               // 1..3 for referral bonuses, 0 otherwise
	ProcessedBy   *uint64           // Admin who approved or rejected
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

// NewTransaction creates a pending transaction with basic validation
func NewTransaction(
	userID uint64,
	transactionID string,
	txType TransactionType,
	amountInCents int64,
	description string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if transactionID == "" {
		return nil, errs.ErrInvalidTransactionID
	}
	if !IsValidTransactionType(string(txType)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}
	if amountInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}
	if amountInCents == 0 {
		return nil, errs.ErrZeroAmount
	}

	return &Transaction{
		UserID:        userID,
		TransactionID: transactionID,
		Type:          txType,
		Status:        StatusPending,
		Amount:        AmountInCentsToString(amountInCents),
		AmountInCents: amountInCents,
		Description:   description,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// NewReferralBonus creates a pending referral bonus credited to beneficiaryID
// for a deposit made by sourceUserID at the given level.
func NewReferralBonus(
	beneficiaryID uint64,
	sourceUserID uint64,
	level int,
	transactionID string,
	amountInCents int64,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	description := fmt.Sprintf("Level %d referral bonus from user %d", level, sourceUserID)
	tx, err := NewTransaction(beneficiaryID, transactionID, TypeReferralBonus, amountInCents, description, timeProvider)
	if err != nil {
		return nil, err
	}
	tx.SourceUserID = &sourceUserID
	tx.ReferralLevel = level
	return tx, nil
}

// MarkAsCompleted marks the transaction as applied with the resulting balance
func (t *Transaction) MarkAsCompleted(timeProvider tport.TimeProvider, resultBalance string, processedBy *uint64) {
	now := timeProvider.Now()
	t.ProcessedAt = &now
	t.ResultBalance = EnsureTwoDecimalPlaces(resultBalance)
	t.ProcessedBy = processedBy
	t.Status = StatusCompleted
}

// MarkAsFailed marks the transaction as failed or rejected
func (t *Transaction) MarkAsFailed(timeProvider tport.TimeProvider, reason string, processedBy *uint64) {
	now := timeProvider.Now()
	t.ProcessedAt = &now
	t.Status = StatusFailed
	t.FailureReason = reason
	t.ProcessedBy = processedBy
}

// IsPending reports whether the transaction awaits admin review
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// IsCredit returns true if this transaction increases the user's balance
func (t *Transaction) IsCredit() bool {
	return t.Type.IsCredit()
}

// IsDebit returns true if this transaction decreases the user's balance
func (t *Transaction) IsDebit() bool {
	return !t.Type.IsCredit()
}

// BalanceChange returns the signed change in cents this transaction applies
func (t *Transaction) BalanceChange() int64 {
	if t.IsCredit() {
		return t.AmountInCents
	}
	return -t.AmountInCents
}

// IsCredit reports whether transactions of this type add money
func (tt TransactionType) IsCredit() bool {
	return tt == TypeDeposit || tt == TypeAdminAdd || tt == TypeReferralBonus
}

// RequiresApproval reports whether transactions of this type start Pending
// and wait for an admin decision
func (tt TransactionType) RequiresApproval() bool {
	return tt == TypeDeposit || tt == TypeWithdrawal
}

// IsValidTransactionType validates if the type is one of the known values
func IsValidTransactionType(txType string) bool {
	switch TransactionType(txType) {
	case TypeDeposit, TypeWithdrawal, TypeInvestment, TypeAdminAdd, TypeAdminDeduct, TypeReferralBonus:
		return true
	default:
		return false
	}
}

// IsValidTransactionStatus validates if the status is one of the known values
func IsValidTransactionStatus(status string) bool {
	switch TransactionStatus(status) {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	UserID   uint64
	Type     TransactionType
	Status   TransactionStatus
	Page     int
	PageSize int
}

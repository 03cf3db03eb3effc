package transaction

import (
	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// IdempotencyHandler makes admin decisions apply at most once. A transaction
// that already left Pending cannot be approved or rejected again.
type IdempotencyHandler struct{}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler() *IdempotencyHandler {
	return &IdempotencyHandler{}
}

// CheckReviewable returns an error unless tx is a pending deposit or withdrawal
func (h *IdempotencyHandler) CheckReviewable(tx *entity.Transaction) error {
	if !tx.Type.RequiresApproval() {
		return errs.NewTransactionError(tx.TransactionID, tx.UserID, string(tx.Type), string(tx.Status), tx.Amount,
			"only deposits and withdrawals are reviewed", errs.ErrInvalidTransactionType)
	}
	if !tx.IsPending() {
		return errs.NewTransactionError(tx.TransactionID, tx.UserID, string(tx.Type), string(tx.Status), tx.Amount,
			"transaction was already "+string(tx.Status), errs.ErrInvalidState)
	}
	return nil
}

package transaction

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// maxDescriptionLength bounds free-text descriptions and rejection reasons
const maxDescriptionLength = 500

// TransactionValidator validates transaction requests before any storage access
type TransactionValidator struct{}

// NewTransactionValidator creates a new TransactionValidator
func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// ValidateRequest checks a user request and returns the amount in cents
func (v *TransactionValidator) ValidateRequest(req usecase.TransactionRequest) (int64, error) {
	if req.UserID == 0 {
		return 0, errs.ErrInvalidUserID
	}
	if err := v.validateText(req.Description); err != nil {
		return 0, err
	}
	return entity.ValidatePositiveAmount(req.Amount)
}

// ValidateAdjustment checks an admin adjustment and returns the amount in cents
func (v *TransactionValidator) ValidateAdjustment(req usecase.AdjustmentRequest) (int64, error) {
	if req.UserID == 0 || req.AdminID == 0 {
		return 0, errs.ErrInvalidUserID
	}
	if err := v.validateText(req.Description); err != nil {
		return 0, err
	}
	return entity.ValidatePositiveAmount(req.Amount)
}

// ValidateDecision checks the input of an approve or reject call
func (v *TransactionValidator) ValidateDecision(transactionID string, adminID uint64, reason string) error {
	if strings.TrimSpace(transactionID) == "" {
		return errs.ErrInvalidTransactionID
	}
	if adminID == 0 {
		return errs.ErrInvalidUserID
	}
	return v.validateText(reason)
}

// ValidateFilter checks the enum fields of a listing filter
func (v *TransactionValidator) ValidateFilter(filter entity.TransactionFilter) error {
	if filter.Type != "" && !entity.IsValidTransactionType(string(filter.Type)) {
		return fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, filter.Type)
	}
	if filter.Status != "" && !entity.IsValidTransactionStatus(string(filter.Status)) {
		return fmt.Errorf("%w: unknown status %s", errs.ErrInvalidRequest, filter.Status)
	}
	return nil
}

func (v *TransactionValidator) validateText(text string) error {
	if len(text) > maxDescriptionLength {
		return fmt.Errorf("%w: text exceeds %d characters", errs.ErrInvalidRequest, maxDescriptionLength)
	}
	return nil
}

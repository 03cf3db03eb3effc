package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest          = 4000
	CodeInsufficientBalance     = 4001
	CodeInvalidAmount           = 4002
	CodeInvalidUserID           = 4003
	CodeDuplicateTransaction    = 4004
	CodeConstraintViolation     = 4005
	CodeAmountOverflow          = 4006
	CodeAmountOutOfLimits       = 4007
	CodeInvalidEmail            = 4008
	CodeWeakPassword            = 4009
	CodeInvalidTransactionState = 4011
	CodeInvalidSettings         = 4012
	CodeInvalidCredentials      = 4010
	CodeUnauthorized            = 4013
	CodeForbidden               = 4030
	CodeUserDisabled            = 4031
	CodeUserNotFound            = 4040
	CodeTransactionNotFound     = 4041
	CodeReferralCodeNotFound    = 4042
	CodeAnnouncementNotFound    = 4043
	CodeNotificationNotFound    = 4044
	CodeNotFound                = 4049
	CodeDuplicateUser           = 4090
	CodeUserLocked              = 4230
	CodeRateLimited             = 4290

	// 5xxx - Server errors
	CodeInternalServer          = 5000
	CodeReferralCodeUnavailable = 5030
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a user has insufficient funds for a transaction
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when the transaction amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrNegativeAmount is returned when the transaction amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrZeroAmount is returned when a money movement of zero is requested
	ErrZeroAmount = errors.New("amount must be greater than zero")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrAmountOutOfLimits is returned when an amount is outside configured min/max limits
	ErrAmountOutOfLimits = errors.New("amount is outside the allowed limits")

	// ErrInvalidTransactionID is returned when the transaction ID is empty or invalid
	ErrInvalidTransactionID = errors.New("transaction ID cannot be empty")

	// ErrInvalidTransactionType is returned for an unknown transaction type
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidState is returned when a transaction is not in a state that allows the operation
	ErrInvalidState = errors.New("invalid transaction state")

	// ErrDuplicateTransaction is returned when a transaction with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrUserLocked is returned when a user is locked by another operation
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidEmail is returned when an email address is malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when a password does not meet the minimum length
	ErrWeakPassword = errors.New("password is too short")

	// ErrInvalidCredentials is returned when email or password do not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is returned when a request carries no valid token
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when a user lacks the role for an operation
	ErrForbidden = errors.New("insufficient permissions")

	// ErrUserDisabled is returned when a disabled account tries to log in or transact
	ErrUserDisabled = errors.New("user account is disabled")

	// ErrReferralCodeNotFound is returned when a referral code resolves to no user
	ErrReferralCodeNotFound = errors.New("referral code not found")

	// ErrReferralCodeTaken is returned when a stored referral code already belongs to another user
	ErrReferralCodeTaken = errors.New("referral code already taken")

	// ErrReferralCodeUnavailable is returned when no unique code could be generated
	ErrReferralCodeUnavailable = errors.New("could not generate a unique referral code")

	// ErrInvalidSettings is returned when settings fail validation
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrAnnouncementNotFound is returned when the requested announcement doesn't exist
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrNotificationNotFound is returned when the requested notification doesn't exist
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrRateLimited is returned when a client exceeds its request budget
	ErrRateLimited = errors.New("too many requests")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrZeroAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrAmountOutOfLimits):
		return CodeAmountOutOfLimits
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidTransactionType):
		return CodeInvalidTransactionState
	case errors.Is(err, ErrInvalidSettings):
		return CodeInvalidSettings
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserDisabled):
		return CodeUserDisabled
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrReferralCodeNotFound):
		return CodeReferralCodeNotFound
	case errors.Is(err, ErrAnnouncementNotFound):
		return CodeAnnouncementNotFound
	case errors.Is(err, ErrNotificationNotFound):
		return CodeNotificationNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrReferralCodeUnavailable), errors.Is(err, ErrReferralCodeTaken):
		return CodeReferralCodeUnavailable
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidTransactionID):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// TransactionError represents an error related to transaction processing
type TransactionError struct {
	TransactionID string
	UserID        uint64
	Type          string
	Status        string
	Amount        string
	Reason        string
	Err           error
}

// Error implements the error interface for TransactionError
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error for ID %s (user: %d, type: %s, amount: %s): %s - %v",
		e.TransactionID, e.UserID, e.Type, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transaction_error",
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"type":           e.Type,
		"status":         e.Status,
		"amount":         e.Amount,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewTransactionError creates a detailed transaction error
func NewTransactionError(transactionID string, userID uint64, txType, status, amount, reason string, err error) error {
	return &TransactionError{
		TransactionID: transactionID,
		UserID:        userID,
		Type:          txType,
		Status:        status,
		Amount:        amount,
		Reason:        reason,
		Err:           err,
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// LimitError reports an amount outside the configured min/max for an operation
type LimitError struct {
	Operation string
	Amount    string
	Min       string
	Max       string
}

// Error implements the error interface
func (e *LimitError) Error() string {
	return fmt.Sprintf("%s amount %s is outside the allowed range %s - %s",
		e.Operation, e.Amount, e.Min, e.Max)
}

// Is checks if the target error is an ErrAmountOutOfLimits
func (e *LimitError) Is(target error) bool {
	return target == ErrAmountOutOfLimits
}

// LogFields returns a map of fields for structured logging
func (e *LimitError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "amount_out_of_limits",
		"operation":  e.Operation,
		"amount":     e.Amount,
		"min":        e.Min,
		"max":        e.Max,
		"error_code": CodeAmountOutOfLimits,
	}
}

// NewLimitError creates a new limit error for the given operation
func NewLimitError(operation, amount, minAmount, maxAmount string) error {
	return &LimitError{
		Operation: operation,
		Amount:    amount,
		Min:       minAmount,
		Max:       maxAmount,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrReferralCodeNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsUserLockedError checks if the error is related to a locked user
func IsUserLockedError(err error) bool {
	return errors.Is(err, ErrUserLocked)
}

// IsValidationError checks if the error was caused by client input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrZeroAmount) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrAmountOutOfLimits) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidTransactionID) ||
		errors.Is(err, ErrInvalidTransactionType)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// PostgreSQL error codes the repositories react to
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
)

// ErrorClassifier provides methods to classify database errors. It prefers the
// SQLSTATE of a *pgconn.PgError and falls back to message matching for errors
// that lost their type on the way up.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsConnectionError(err):
		return ConnectionError
	}
	return ""
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func containsAny(err error, needles ...string) bool {
	msg := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || pgCode(err) == pgUniqueViolation {
		return true
	}
	return containsAny(err, "duplicate key", "unique constraint")
}

// ViolatesUniqueIndex checks if err is a duplicate key error raised by the named index
func (c *ErrorClassifier) ViolatesUniqueIndex(err error, index string) bool {
	if !c.IsDuplicateKeyError(err) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName == index
	}
	return strings.Contains(err.Error(), index)
}

// IsLockError checks if the error is due to locking
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	switch pgCode(err) {
	case pgDeadlockDetected, pgSerializationFailure, pgLockNotAvailable:
		return true
	}
	return containsAny(err, "deadlock", "lock wait timeout", "could not serialize access",
		"could not obtain lock")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if pgCode(err) == pgQueryCanceled {
		return true
	}
	return containsAny(err, "connection reset", "connection refused", "broken pipe",
		"server closed", "unexpected eof", "too many connections")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	return c.IsTransientError(err) || containsAny(err, "dial", "no connection", "network")
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	switch pgCode(err) {
	case pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
		return true
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// isContextError checks if an error is related to context timeout or cancellation
func isContextError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// isDomainError reports errors the repositories produced themselves; they are
// returned unchanged instead of being classified again
func isDomainError(err error) bool {
	return errs.ErrorCode(err) != errs.CodeInternalServer
}

// dbErrorMapping says which domain error a repository reports for a missing
// row and for a duplicate key
type dbErrorMapping struct {
	notFound  error
	duplicate error
}

// translate maps a database error to a domain error and logs it
func (c *ErrorClassifier) translate(logger coreport.Logger, operation string, err error, m dbErrorMapping, fields map[string]any) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	fields["operation"] = operation
	fields["error"] = err.Error()

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.Debug("Record not found", fields)
		if m.notFound != nil {
			return m.notFound
		}
		return errs.ErrNotFound
	case c.IsDuplicateKeyError(err):
		logger.Warn("Duplicate key", fields)
		if m.duplicate != nil {
			return m.duplicate
		}
		return errs.ErrConstraintViolation
	case c.IsLockError(err):
		logger.Warn("Row is locked by another transaction", fields)
		return errs.ErrUserLocked
	case c.IsConstraintError(err):
		logger.Warn("Constraint violation", fields)
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	case isContextError(err):
		logger.Warn("Database operation canceled", fields)
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

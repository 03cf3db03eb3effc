package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

func TestErrorClassifier_Classify(t *testing.T) {
	c := NewErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"unique violation", &pgconn.PgError{Code: "23505"}, DuplicateKeyError},
		{"gorm duplicate", gorm.ErrDuplicatedKey, DuplicateKeyError},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, LockError},
		{"serialization", fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40001"}), LockError},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, LockError},
		{"canceled statement", &pgconn.PgError{Code: "57014"}, TransientError},
		{"reset", errors.New("read: connection reset by peer"), TransientError},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ConstraintError},
		{"check", &pgconn.PgError{Code: "23514"}, ConstraintError},
		{"dial", errors.New("dial tcp 10.0.0.1:5432: i/o timeout"), ConnectionError},
		{"other", errors.New("syntax error"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestErrorClassifier_Translate(t *testing.T) {
	c := NewErrorClassifier()
	mapping := dbErrorMapping{notFound: errs.ErrUserNotFound, duplicate: errs.ErrDuplicateUser}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, errs.ErrUserNotFound},
		{"duplicate", &pgconn.PgError{Code: "23505"}, errs.ErrDuplicateUser},
		{"lock", &pgconn.PgError{Code: "55P03"}, errs.ErrUserLocked},
		{"constraint", &pgconn.PgError{Code: "23514"}, errs.ErrConstraintViolation},
		{"context", context.DeadlineExceeded, errs.ErrDatabaseConnection},
		{"unknown", errors.New("boom"), errs.ErrDatabaseConnection},
		{"domain error passes through", errs.ErrInsufficientBalance, errs.ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.translate(quietLogger(), "testing", tt.err, mapping, nil), tt.want)
		})
	}

	t.Run("Defaults without mapping", func(t *testing.T) {
		assert.ErrorIs(t, c.translate(quietLogger(), "testing", gorm.ErrRecordNotFound, dbErrorMapping{}, nil), errs.ErrNotFound)
		assert.ErrorIs(t, c.translate(quietLogger(), "testing", gorm.ErrDuplicatedKey, dbErrorMapping{}, nil), errs.ErrConstraintViolation)
	})
}

func TestErrorClassifier_ViolatesUniqueIndex(t *testing.T) {
	c := NewErrorClassifier()

	assert.True(t, c.ViolatesUniqueIndex(
		&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_referral_code"}, "idx_users_referral_code"))
	assert.False(t, c.ViolatesUniqueIndex(
		&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}, "idx_users_referral_code"))
	assert.True(t, c.ViolatesUniqueIndex(
		errors.New(`duplicate key value violates unique constraint "idx_users_referral_code"`), "idx_users_referral_code"))
	assert.False(t, c.ViolatesUniqueIndex(
		&pgconn.PgError{Code: "23503", ConstraintName: "idx_users_referral_code"}, "idx_users_referral_code"))
	assert.False(t, c.ViolatesUniqueIndex(nil, "idx_users_referral_code"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}

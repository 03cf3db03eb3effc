package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

var testClock = mockcore.FixedClock{At: testNow}

// newMockDB opens gorm on top of sqlmock and fails the test on unmet expectations
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return db, mock
}

var userColumns = []string{
	"id", "email", "phone", "password_hash", "balance", "status", "role", "referral_code",
	"referrer_id", "has_deposited", "first_deposit_at", "total_deposited", "transaction_count",
	"created_at", "updated_at",
}

func userRow(rows *sqlmock.Rows, id uint64, email string, balance int64, referrerID any, hasDeposited bool) *sqlmock.Rows {
	return rows.AddRow(id, email, "", "hash", balance, "Active", "user", "ABCD2345",
		referrerID, hasDeposited, nil, int64(0), uint64(0), testNow, testNow)
}

var transactionColumns = []string{
	"id", "transaction_id", "user_id", "type", "status", "amount", "amount_in_cents", "result_balance",
	"description", "failure_reason", "source_user_id", "referral_level", "processed_by", "created_at", "processed_at",
}

func quietLogger() coreport.Logger {
	return logger.NewNoopLogger()
}

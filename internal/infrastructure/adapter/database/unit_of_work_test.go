package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
)

var testClock = mockcore.FixedClock{At: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}

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

func TestUnitOfWork_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "user_locks"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := uow.Execute(ctx, func(txCtx context.Context) error {
			_, ok := txFromContext(txCtx)
			assert.True(t, ok)
			return uow.getDB(txCtx).Exec(`DELETE FROM "user_locks" WHERE user_id = ?`, 1).Error
		})
		assert.NoError(t, err)
	})

	t.Run("Rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := uow.Execute(ctx, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Rolls back and repanics", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "kaboom", func() {
			_ = uow.Execute(ctx, func(context.Context) error { panic("kaboom") })
		})
	})

	t.Run("Nested call joins the outer transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := uow.Execute(ctx, func(outer context.Context) error {
			return uow.Execute(outer, func(inner context.Context) error {
				assert.Equal(t, outer, inner)
				return nil
			})
		})
		assert.NoError(t, err)
	})

	t.Run("Begin failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err := uow.Execute(ctx, func(context.Context) error { called = true; return nil })
		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.False(t, called)
	})
}

func TestUnitOfWork_CommitWithoutTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)

	assert.Error(t, uow.Commit(context.Background()))
	assert.Error(t, uow.Rollback(context.Background()))
}

func TestUnitOfWork_RepositoriesShareTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db, logger.NewNoopLogger(), testClock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	err := uow.Execute(context.Background(), func(txCtx context.Context) error {
		exists, err := uow.GetTransactionRepository(txCtx).TransactionExists(txCtx, "dep-1")
		require.NoError(t, err)
		assert.False(t, exists)

		unread, err := uow.GetNotificationRepository(txCtx).CountUnread(txCtx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), unread)

		assert.NotNil(t, uow.GetUserRepository(txCtx))
		return nil
	})
	assert.NoError(t, err)
}

package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/referral-platform/mocks/port/persistence"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*DashboardService, *mockpersistence.MockUserRepository, *mockpersistence.MockTransactionRepository) {
		users := mockpersistence.NewMockUserRepository(t)
		txs := mockpersistence.NewMockTransactionRepository(t)
		uow := mockpersistence.NewMockUnitOfWork(t)
		uow.EXPECT().GetUserRepository(mock.Anything).Return(users).Maybe()
		uow.EXPECT().GetTransactionRepository(mock.Anything).Return(txs).Maybe()
		logger := mockcore.NewMockLogger(t)
		logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
		return NewDashboardService(uow, logger), users, txs
	}

	t.Run("Combines both summaries", func(t *testing.T) {
		svc, users, txs := setup(t)
		users.EXPECT().Summary(mock.Anything).Return(&entity.UserSummary{TotalUsers: 10, ActiveUsers: 9, DisabledUsers: 1}, nil)
		txs.EXPECT().Summary(mock.Anything).Return(&entity.TransactionSummary{PendingDeposits: 2, PendingDepositAmount: 7000}, nil)

		d, err := svc.Dashboard(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(10), d.Users.TotalUsers)
		assert.Equal(t, int64(2), d.Transactions.PendingDeposits)
		assert.Equal(t, int64(7000), d.Transactions.PendingDepositAmount)
	})

	t.Run("Storage failure", func(t *testing.T) {
		svc, users, _ := setup(t)
		users.EXPECT().Summary(mock.Anything).Return(nil, errs.ErrDatabaseConnection)

		_, err := svc.Dashboard(ctx)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/referral-platform/mocks/port/persistence"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mockpersistence.MockNotificationRepository) {
	repo := mockpersistence.NewMockNotificationRepository(t)
	uow := mockpersistence.NewMockUnitOfWork(t)
	uow.EXPECT().GetNotificationRepository(mock.Anything).Return(repo).Maybe()

	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	return NewService(uow, mockcore.FixedClock{At: testNow}, logger), repo
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores an unread notification", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.UserID == 4 &&
				n.Kind == entity.NotifyDepositApproved &&
				n.Title == "Deposit approved" &&
				!n.Read &&
				n.CreatedAt.Equal(testNow)
		})).Return(nil)

		err := svc.Notify(ctx, 4, entity.NotifyDepositApproved, "Deposit approved", "Your deposit was approved.")
		assert.NoError(t, err)
	})

	t.Run("Storage failure is returned", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection)

		err := svc.Notify(ctx, 4, entity.NotifyReferralBonus, "t", "m")
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.EXPECT().ListByUser(mock.Anything, uint64(4), true, ListLimit).
		Return([]*entity.Notification{{ID: 1, UserID: 4}}, nil)
	repo.EXPECT().MarkRead(mock.Anything, uint64(4), uint64(1)).Return(nil)
	repo.EXPECT().MarkRead(mock.Anything, uint64(4), uint64(2)).Return(errs.ErrNotificationNotFound)
	repo.EXPECT().MarkAllRead(mock.Anything, uint64(4)).Return(int64(3), nil)
	repo.EXPECT().CountUnread(mock.Anything, uint64(4)).Return(int64(0), nil)

	items, err := svc.List(ctx, 4, true)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.NoError(t, svc.MarkRead(ctx, 4, 1))
	assert.ErrorIs(t, svc.MarkRead(ctx, 4, 2), errs.ErrNotificationNotFound)

	n, err := svc.MarkAllRead(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	unread, err := svc.UnreadCount(ctx, 4)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestPurgeRead(t *testing.T) {
	svc, repo := newTestService(t)
	repo.EXPECT().DeleteReadBefore(mock.Anything, testNow.Add(-30*24*time.Hour)).Return(int64(12), nil)

	removed, err := svc.PurgeRead(context.Background(), 30*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(12), removed)
}

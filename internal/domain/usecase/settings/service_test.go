package settings

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

func newTestService(t *testing.T) (*Service, *mockpersistence.MockSettingsRepository) {
	repo := mockpersistence.NewMockSettingsRepository(t)
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	return NewService(repo, mockcore.FixedClock{At: testNow}, logger), repo
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored settings", func(t *testing.T) {
		svc, repo := newTestService(t)
		stored := entity.DefaultSettings()
		stored.MinDeposit = 5000
		repo.EXPECT().Get(mock.Anything).Return(stored, nil)

		got, err := svc.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(5000), got.MinDeposit)
	})

	t.Run("Defaults when nothing was saved", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Get(mock.Anything).Return(nil, errs.ErrNotFound)

		got, err := svc.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.DefaultSettings(), got)
	})

	t.Run("Storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Get(mock.Anything).Return(nil, errs.ErrDatabaseConnection)

		_, err := svc.Get(ctx)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stamps and saves valid settings", func(t *testing.T) {
		svc, repo := newTestService(t)
		s := entity.DefaultSettings()
		s.BankAccounts = nil
		s.ReferralRates = [entity.MaxReferralDepth]int{1500, 700, 300}
		repo.EXPECT().Save(mock.Anything, s).Return(nil)

		got, err := svc.Update(ctx, s, 9)

		require.NoError(t, err)
		assert.Equal(t, testNow, got.UpdatedAt)
		require.NotNil(t, got.UpdatedBy)
		assert.Equal(t, uint64(9), *got.UpdatedBy)
		assert.NotNil(t, got.BankAccounts)
	})

	t.Run("Invalid settings are not saved", func(t *testing.T) {
		svc, _ := newTestService(t)
		s := entity.DefaultSettings()
		s.MinWithdrawal = s.MaxWithdrawal + 1

		_, err := svc.Update(ctx, s, 9)
		assert.ErrorIs(t, err, errs.ErrInvalidSettings)
	})
}

package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/referral-platform/mocks/port/persistence"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mockpersistence.MockAnnouncementRepository) {
	repo := mockpersistence.NewMockAnnouncementRepository(t)
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	return NewService(repo, mockcore.FixedClock{At: testNow}, logger), repo
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Date defaults to now", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)

		a, err := svc.Create(ctx, usecase.AnnouncementInput{Title: " Launch ", Content: "We are live", Active: true})

		require.NoError(t, err)
		assert.Equal(t, "Launch", a.Title)
		assert.Equal(t, testNow, a.Date)
		assert.True(t, a.Active)
	})

	t.Run("Explicit date", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
		date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		a, err := svc.Create(ctx, usecase.AnnouncementInput{Title: "New year", Content: "Hi", Date: &date})

		require.NoError(t, err)
		assert.Equal(t, date, a.Date)
	})

	t.Run("Title is required", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, usecase.AnnouncementInput{Title: "  ", Content: "x"})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps the original date", func(t *testing.T) {
		svc, repo := newTestService(t)
		original := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
		repo.EXPECT().GetByID(mock.Anything, uint64(3)).Return(&entity.Announcement{
			ID: 3, Title: "Old", Content: "Old", Date: original, Active: true, CreatedAt: original,
		}, nil)
		repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil)

		a, err := svc.Update(ctx, 3, usecase.AnnouncementInput{Title: "New", Content: "Body"})

		require.NoError(t, err)
		assert.Equal(t, "New", a.Title)
		assert.False(t, a.Active)
		assert.Equal(t, original, a.Date)
		assert.Equal(t, testNow, a.UpdatedAt)
	})

	t.Run("Unknown announcement", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().GetByID(mock.Anything, uint64(3)).Return(nil, errs.ErrAnnouncementNotFound)

		_, err := svc.Update(ctx, 3, usecase.AnnouncementInput{Title: "New", Content: "Body"})
		assert.ErrorIs(t, err, errs.ErrAnnouncementNotFound)
	})
}

func TestDeleteAndList(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.EXPECT().Delete(mock.Anything, uint64(3)).Return(nil)
	repo.EXPECT().List(mock.Anything, true).Return([]*entity.Announcement{{ID: 1}}, nil)
	repo.EXPECT().List(mock.Anything, false).Return([]*entity.Announcement{{ID: 1}, {ID: 2}}, nil)

	require.NoError(t, svc.Delete(ctx, 3))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

var settingsColumns = []string{
	"id", "min_deposit", "max_deposit", "min_withdrawal", "max_withdrawal", "bank_accounts",
	"banner", "popup", "level1_rate_bps", "level2_rate_bps", "level3_rate_bps", "updated_at", "updated_by",
}

func TestSettingsRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes JSON columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSettingsRepository(db, quietLogger())

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE "settings"."id" = \$1`).
			WillReturnRows(sqlmock.NewRows(settingsColumns).AddRow(
				1, 1000, 500000, 2000, 100000,
				[]byte(`[{"bankName":"Acme","accountName":"Platform","accountNumber":"0011"}]`),
				[]byte(`{"enabled":true,"text":"Welcome"}`),
				[]byte(`{"enabled":false}`),
				700, 200, 100, testNow, uint64(1)))

		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), settings.MinDeposit)
		require.Len(t, settings.BankAccounts, 1)
		assert.Equal(t, "Acme", settings.BankAccounts[0].BankName)
		assert.True(t, settings.Banner.Enabled)
		assert.Equal(t, "Welcome", settings.Banner.Text)
		assert.Equal(t, [entity.MaxReferralDepth]int{700, 200, 100}, settings.ReferralRates)
	})

	t.Run("Missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSettingsRepository(db, quietLogger())

		mock.ExpectQuery(`SELECT \* FROM "settings"`).WillReturnRows(sqlmock.NewRows(settingsColumns))

		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestSettingsRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, quietLogger())

	mock.ExpectQuery(`INSERT INTO "settings" .* ON CONFLICT \("id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	settings := entity.DefaultSettings()
	settings.UpdatedAt = testNow
	assert.NoError(t, repo.Save(context.Background(), settings))
}

func TestAnnouncementRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create sets ID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnnouncementRepository(db, quietLogger())

		mock.ExpectQuery(`INSERT INTO "announcements"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		a := &entity.Announcement{Title: "Maintenance", Content: "Sunday", Date: testNow, Active: true}
		require.NoError(t, repo.Create(ctx, a))
		assert.Equal(t, uint64(3), a.ID)
	})

	t.Run("Update missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnnouncementRepository(db, quietLogger())

		mock.ExpectExec(`UPDATE "announcements" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &entity.Announcement{ID: 9, Title: "x", Content: "y"})
		assert.ErrorIs(t, err, errs.ErrAnnouncementNotFound)
	})

	t.Run("Delete missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnnouncementRepository(db, quietLogger())

		mock.ExpectExec(`DELETE FROM "announcements"`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 9), errs.ErrAnnouncementNotFound)
	})

	t.Run("List active only", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnnouncementRepository(db, quietLogger())

		mock.ExpectQuery(`SELECT \* FROM "announcements" WHERE active = \$1 ORDER BY date DESC, id DESC`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "date", "active", "created_at", "updated_at"}).
				AddRow(2, "New", "Body", testNow, true, testNow, testNow))

		list, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "New", list[0].Title)
	})
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("List unread", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db, quietLogger())

		mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE user_id = \$1 AND is_read = \$2 ORDER BY created_at DESC, id DESC LIMIT`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "title", "message", "is_read", "created_at"}).
				AddRow(5, 1, "deposit_approved", "Deposit approved", "50.00 credited", false, testNow))

		list, err := repo.ListByUser(ctx, 1, true, 20)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.False(t, list[0].Read)
		assert.Equal(t, entity.NotificationKind("deposit_approved"), list[0].Kind)
	})

	t.Run("MarkRead of someone else's notification", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db, quietLogger())

		mock.ExpectExec(`UPDATE "notifications" SET "is_read"=\$1 WHERE id = \$2 AND user_id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkRead(ctx, 1, 5), errs.ErrNotificationNotFound)
	})

	t.Run("MarkAllRead", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db, quietLogger())

		mock.ExpectExec(`UPDATE "notifications" SET "is_read"=\$1 WHERE user_id = \$2 AND is_read = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 6))

		n, err := repo.MarkAllRead(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(6), n)
	})

	t.Run("DeleteReadBefore", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db, quietLogger())

		mock.ExpectExec(`DELETE FROM "notifications" WHERE is_read = \$1 AND created_at < \$2`).
			WithArgs(true, testNow).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.DeleteReadBefore(ctx, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

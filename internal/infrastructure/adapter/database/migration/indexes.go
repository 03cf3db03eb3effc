package migration

import (
	"context"

	"gorm.io/gorm"
)

// Indexes the model tags cannot express: partial, descending and BRIN indexes
var queryIndexes = []string{
	// admin queue of pending deposits and withdrawals, oldest first
	`CREATE INDEX IF NOT EXISTS idx_transactions_pending
		ON transactions (type, created_at) WHERE status = 'Pending'`,
	// a user's history, newest first
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_created
		ON transactions (user_id, created_at DESC, id DESC)`,
	// referral earnings per level
	`CREATE INDEX IF NOT EXISTS idx_transactions_referral_bonus
		ON transactions (user_id, referral_level) WHERE type = 'Referral_Bonus' AND status = 'Completed'`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
		ON transactions USING BRIN (created_at) WITH (pages_per_range = 32)`,
	// backfill scan for users without a code
	`CREATE INDEX IF NOT EXISTS idx_users_missing_referral_code
		ON users (id) WHERE referral_code IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_announcements_active_date
		ON announcements (date DESC) WHERE active`,
}

func createIndexes(ctx context.Context, tx *gorm.DB) error {
	for _, stmt := range queryIndexes {
		if err := tx.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	// balance rows are updated in place on every transaction
	return tx.WithContext(ctx).Exec(`ALTER TABLE users SET (fillfactor = 90)`).Error
}

// lowerCaseEmails normalizes addresses written before emails were lower-cased
// at registration. Rows whose lower-case form is already taken are left alone.
func lowerCaseEmails(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Exec(`
		UPDATE users u SET email = lower(u.email)
		WHERE u.email <> lower(u.email)
		  AND NOT EXISTS (SELECT 1 FROM users o WHERE o.email = lower(u.email))`).Error
}

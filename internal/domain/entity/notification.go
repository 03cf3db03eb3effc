package entity

import "time"

// NotificationKind classifies a user notification
type NotificationKind string

const (
	NotifyDepositApproved    NotificationKind = "deposit_approved"
	NotifyDepositRejected    NotificationKind = "deposit_rejected"
	NotifyWithdrawalApproved NotificationKind = "withdrawal_approved"
	NotifyWithdrawalRejected NotificationKind = "withdrawal_rejected"
	NotifyReferralBonus      NotificationKind = "referral_bonus"
	NotifyAdminAdjustment    NotificationKind = "admin_adjustment"
	NotifyAccountStatus      NotificationKind = "account_status"
)

// Notification is a message in a user's feed
type Notification struct {
	ID        uint64
	UserID    uint64
	Kind      NotificationKind
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

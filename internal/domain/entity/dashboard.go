package entity

// UserFilter narrows admin user listings
type UserFilter struct {
	Status   UserStatus
	Search   string // matched against email, phone and referral code
	Page     int
	PageSize int
}

// UserSummary aggregates the users table for the dashboard
type UserSummary struct {
	TotalUsers     int64
	ActiveUsers    int64
	DisabledUsers  int64
	DepositedUsers int64
	TotalBalance   int64
}

// TransactionSummary aggregates the transactions table for the dashboard
type TransactionSummary struct {
	PendingDeposits           int64
	PendingDepositAmount      int64
	PendingWithdrawals        int64
	PendingWithdrawalAmount   int64
	CompletedDepositAmount    int64
	CompletedWithdrawalAmount int64
	ReferralBonusesPaid       int64
}

// Dashboard is the admin overview
type Dashboard struct {
	Users        UserSummary
	Transactions TransactionSummary
}

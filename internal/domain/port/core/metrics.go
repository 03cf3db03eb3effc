package core

// Metrics records business events. The Prometheus adapter exports them,
// tests use a no-op implementation.
type Metrics interface {
	UserRegistered(referred bool)
	TransactionRequested(txType string)
	TransactionSettled(txType string, status string, amountInCents int64)
	ReferralBonusPaid(level int, amountInCents int64)
}

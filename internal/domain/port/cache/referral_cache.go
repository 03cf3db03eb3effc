package cache

import "context"

// ReferralCodeCache maps normalized referral codes to owner user IDs.
// A miss is reported with found == false and a nil error.
type ReferralCodeCache interface {
	Get(ctx context.Context, code string) (userID uint64, found bool, err error)
	Set(ctx context.Context, code string, userID uint64) error
	Delete(ctx context.Context, code string) error
	Close() error
}

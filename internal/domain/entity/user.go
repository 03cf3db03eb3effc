package entity

import (
	"math"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// UserStatus is the account status of a user
type UserStatus string

// Role is the authorization role of a user
type Role string

const (
	UserActive   UserStatus = "Active"
	UserDisabled UserStatus = "Disabled"

	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// User represents a registered account with its balance and referral data
type User struct {
	ID               uint64
	Email            string
	Phone            string
	PasswordHash     string
	balance          int64 // cents, never negative
	Status           UserStatus
	Role             Role
	ReferralCode     string
	ReferrerID       *uint64
	HasDeposited     bool
	FirstDepositAt   *time.Time
	TotalDeposited   int64 // cents
	TransactionCount uint64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates an active user with a zero balance. The email is normalized
// and validated; the password hash must already be computed.
func NewUser(email, phone, passwordHash, referralCode string, referrerID *uint64, timeProvider coreport.TimeProvider) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		Email:        normalized,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		Status:       UserActive,
		Role:         RoleUser,
		ReferralCode: NormalizeReferralCode(referralCode),
		ReferrerID:   referrerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail lower-cases and validates an email address
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.ErrInvalidEmail
	}
	return email, nil
}

// ValidatePassword checks the password policy
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errs.ErrWeakPassword
	}
	return nil
}

// IsValidUserStatus reports whether s names a known status
func IsValidUserStatus(s UserStatus) bool {
	return s == UserActive || s == UserDisabled
}

// IsValidRole reports whether r names a known role
func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// Balance returns the current balance in cents (for internal use)
func (u *User) Balance() int64 {
	return u.balance
}

// GetBalance returns the balance as a string with 2 decimal places
func (u *User) GetBalance() string {
	return AmountInCentsToString(u.balance)
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetBalance(balanceInCents int64, timeProvider coreport.TimeProvider) {
	u.balance = balanceInCents
	u.UpdatedAt = timeProvider.Now()
}

// RestoreBalance sets the balance without touching timestamps, for rehydration
func (u *User) RestoreBalance(balanceInCents int64) {
	u.balance = balanceInCents
}

// IsActive reports whether the account may log in and transact
func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanDeduct checks if the user has enough balance for a deduction
func (u *User) CanDeduct(amountInCents int64) bool {
	return u.balance >= amountInCents
}

// Credit adds the amount to the balance. A credit the balance cannot hold
// returns ErrAmountOverflow and leaves the user unchanged.
func (u *User) Credit(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if amountInCents < 0 {
		return errs.ErrInvalidAmount
	}
	if amountInCents > math.MaxInt64-u.balance {
		return errs.ErrAmountOverflow
	}

	u.balance += amountInCents
	u.UpdatedAt = timeProvider.Now()
	u.TransactionCount++
	return nil
}

// Debit subtracts the amount from the balance if sufficient balance exists
func (u *User) Debit(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if !u.CanDeduct(amountInCents) {
		return errs.NewInsufficientBalanceError(u.ID, AmountInCentsToString(amountInCents), u.GetBalance())
	}

	u.balance -= amountInCents
	u.UpdatedAt = timeProvider.Now()
	u.TransactionCount++
	return nil
}

// RecordDeposit credits a completed deposit and updates the deposit history.
// It reports whether this is the user's first completed deposit.
func (u *User) RecordDeposit(amountInCents int64, timeProvider coreport.TimeProvider) (bool, error) {
	if amountInCents > math.MaxInt64-u.TotalDeposited {
		return false, errs.ErrAmountOverflow
	}
	if err := u.Credit(amountInCents, timeProvider); err != nil {
		return false, err
	}
	u.TotalDeposited += amountInCents

	if u.HasDeposited {
		return false, nil
	}
	now := u.UpdatedAt
	u.HasDeposited = true
	u.FirstDepositAt = &now
	return true, nil
}

// MaskedEmail hides most of the local part: "alice@example.com" becomes "a***e@example.com"
func (u *User) MaskedEmail() string {
	return MaskEmail(u.Email)
}

// MaskEmail hides most of the local part of an email address
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found {
		return "***"
	}
	first, _ := utf8.DecodeRuneInString(local)
	switch utf8.RuneCountInString(local) {
	case 0:
		return "***@" + domain
	case 1, 2:
		return string(first) + "***@" + domain
	default:
		last, _ := utf8.DecodeLastRuneInString(local)
		return string(first) + "***" + string(last) + "@" + domain
	}
}

package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// SettingsID is the primary key of the single settings row
const SettingsID = 1

// BankAccount is a destination users can wire deposits to
type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// Banner is the notification strip shown on every page
type Banner struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

// Popup is the modal shown once per session
type Popup struct {
	Enabled  bool   `json:"enabled"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// Settings is the platform-wide configuration editable by admins
type Settings struct {
	MinDeposit    int64 // cents
	MaxDeposit    int64
	MinWithdrawal int64
	MaxWithdrawal int64
	BankAccounts  []BankAccount
	Banner        Banner
	Popup         Popup
	ReferralRates [MaxReferralDepth]int // basis points per level
	UpdatedAt     time.Time
	UpdatedBy     *uint64
}

// DefaultSettings returns the settings used until an admin saves their own
func DefaultSettings() *Settings {
	return &Settings{
		MinDeposit:    1000,
		MaxDeposit:    100000000,
		MinWithdrawal: 1000,
		MaxWithdrawal: 10000000,
		BankAccounts:  []BankAccount{},
		ReferralRates: [MaxReferralDepth]int{1000, 500, 200},
	}
}

// Validate checks limits and referral rates
func (s *Settings) Validate() error {
	if s.MinDeposit <= 0 || s.MaxDeposit <= 0 {
		return fmt.Errorf("%w: deposit limits must be positive", errs.ErrInvalidSettings)
	}
	if s.MinDeposit > s.MaxDeposit {
		return fmt.Errorf("%w: minimum deposit exceeds maximum", errs.ErrInvalidSettings)
	}
	if s.MinWithdrawal <= 0 || s.MaxWithdrawal <= 0 {
		return fmt.Errorf("%w: withdrawal limits must be positive", errs.ErrInvalidSettings)
	}
	if s.MinWithdrawal > s.MaxWithdrawal {
		return fmt.Errorf("%w: minimum withdrawal exceeds maximum", errs.ErrInvalidSettings)
	}
	for i, rate := range s.ReferralRates {
		if rate < 0 || rate > BasisPointsDivisor {
			return fmt.Errorf("%w: level %d referral rate must be between 0 and %d bps",
				errs.ErrInvalidSettings, i+1, BasisPointsDivisor)
		}
	}
	for i, account := range s.BankAccounts {
		if strings.TrimSpace(account.BankName) == "" || strings.TrimSpace(account.AccountNumber) == "" {
			return fmt.Errorf("%w: bank account %d needs a bank name and account number",
				errs.ErrInvalidSettings, i+1)
		}
	}
	if s.Popup.Enabled && strings.TrimSpace(s.Popup.Title) == "" {
		return fmt.Errorf("%w: enabled popup needs a title", errs.ErrInvalidSettings)
	}
	return nil
}

// CheckDepositAmount verifies a deposit is within limits
func (s *Settings) CheckDepositAmount(amountInCents int64) error {
	return checkLimits("deposit", amountInCents, s.MinDeposit, s.MaxDeposit)
}

// CheckWithdrawalAmount verifies a withdrawal is within limits
func (s *Settings) CheckWithdrawalAmount(amountInCents int64) error {
	return checkLimits("withdrawal", amountInCents, s.MinWithdrawal, s.MaxWithdrawal)
}

// RateForLevel returns the bonus rate in basis points for levels 1..MaxReferralDepth
func (s *Settings) RateForLevel(level int) int {
	if level < 1 || level > MaxReferralDepth {
		return 0
	}
	return s.ReferralRates[level-1]
}

func checkLimits(operation string, amount, minAmount, maxAmount int64) error {
	if amount < minAmount || amount > maxAmount {
		return errs.NewLimitError(operation,
			AmountInCentsToString(amount),
			AmountInCentsToString(minAmount),
			AmountInCentsToString(maxAmount))
	}
	return nil
}

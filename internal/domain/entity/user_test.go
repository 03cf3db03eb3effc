package entity

import (
	"errors"
	"math"
	"testing"
	"unicode/utf8"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := coremocks.FixedClock{At: fixedTime}

	t.Run("Valid user creation", func(t *testing.T) {
		referrer := uint64(4)
		user, err := NewUser(" Bob@Example.COM ", " +1555 ", "hash", "abcd2345", &referrer, clock)

		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", user.Email)
		assert.Equal(t, "+1555", user.Phone)
		assert.Equal(t, "ABCD2345", user.ReferralCode)
		assert.Equal(t, &referrer, user.ReferrerID)
		assert.Equal(t, UserActive, user.Status)
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, int64(0), user.Balance())
		assert.False(t, user.HasDeposited)
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Invalid email", func(t *testing.T) {
		for _, email := range []string{"", "plain", "a@", "Name <a@b.com>"} {
			user, err := NewUser(email, "", "hash", "", nil, clock)
			assert.ErrorIs(t, err, errs.ErrInvalidEmail, email)
			assert.Nil(t, user)
		}
	})
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), errs.ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))
}

func TestUserBalanceOperations(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := coremocks.FixedClock{At: fixedTime}

	t.Run("Credit", func(t *testing.T) {
		user := &User{ID: 1}
		require.NoError(t, user.Credit(1050, clock))

		assert.Equal(t, "10.50", user.GetBalance())
		assert.Equal(t, uint64(1), user.TransactionCount)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Debit", func(t *testing.T) {
		user := &User{ID: 1}
		user.RestoreBalance(5000)

		require.NoError(t, user.Debit(2000, clock))
		assert.Equal(t, int64(3000), user.Balance())

		err := user.Debit(5000, clock)
		assert.True(t, errs.IsInsufficientBalanceError(err))
		var balanceErr *errs.InsufficientBalanceError
		require.True(t, errors.As(err, &balanceErr))
		assert.Equal(t, "50.00", balanceErr.Amount)
		assert.Equal(t, "30.00", balanceErr.CurrBalance)
		assert.Equal(t, int64(3000), user.Balance())
	})

	t.Run("CanDeduct boundary", func(t *testing.T) {
		user := &User{}
		user.RestoreBalance(100)

		assert.True(t, user.CanDeduct(100))
		assert.False(t, user.CanDeduct(101))
	})

	t.Run("RecordDeposit reports only the first deposit", func(t *testing.T) {
		user := &User{ID: 1}

		first, err := user.RecordDeposit(1000, clock)
		require.NoError(t, err)
		assert.True(t, first)

		first, err = user.RecordDeposit(500, clock)
		require.NoError(t, err)
		assert.False(t, first)

		assert.True(t, user.HasDeposited)
		require.NotNil(t, user.FirstDepositAt)
		assert.Equal(t, fixedTime, *user.FirstDepositAt)
		assert.Equal(t, int64(1500), user.TotalDeposited)
		assert.Equal(t, "15.00", user.GetBalance())
	})

	t.Run("Credit past the int64 range is rejected", func(t *testing.T) {
		user := &User{ID: 1}
		user.RestoreBalance(1)

		err := user.Credit(math.MaxInt64, clock)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
		assert.Equal(t, int64(1), user.Balance())
		assert.Equal(t, uint64(0), user.TransactionCount)
		assert.True(t, user.UpdatedAt.IsZero())

		require.NoError(t, user.Credit(math.MaxInt64-1, clock))
		assert.Equal(t, int64(math.MaxInt64), user.Balance())
	})

	t.Run("Credit rejects negative amounts", func(t *testing.T) {
		user := &User{ID: 1}
		assert.ErrorIs(t, user.Credit(-1, clock), errs.ErrInvalidAmount)
		assert.Equal(t, int64(0), user.Balance())
	})

	t.Run("RecordDeposit overflow leaves the history untouched", func(t *testing.T) {
		user := &User{ID: 1, TotalDeposited: math.MaxInt64 - 10}

		first, err := user.RecordDeposit(11, clock)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
		assert.False(t, first)
		assert.False(t, user.HasDeposited)
		assert.Nil(t, user.FirstDepositAt)
		assert.Equal(t, int64(0), user.Balance())

		user = &User{ID: 1}
		user.RestoreBalance(math.MaxInt64)
		_, err = user.RecordDeposit(1, clock)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
		assert.Equal(t, int64(0), user.TotalDeposited)
	})

	t.Run("SetBalance touches UpdatedAt, RestoreBalance does not", func(t *testing.T) {
		user := &User{}
		user.RestoreBalance(10)
		assert.True(t, user.UpdatedAt.IsZero())

		user.SetBalance(20, clock)
		assert.Equal(t, int64(20), user.Balance())
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})
}

func TestUserRoleAndStatus(t *testing.T) {
	user := &User{Status: UserActive, Role: RoleAdmin}
	assert.True(t, user.IsActive())
	assert.True(t, user.IsAdmin())

	user.Status = UserDisabled
	assert.False(t, user.IsActive())

	assert.True(t, IsValidUserStatus(UserDisabled))
	assert.False(t, IsValidUserStatus("Suspended"))
	assert.True(t, IsValidRole(RoleUser))
	assert.False(t, IsValidRole("owner"))
}

func TestMaskEmail(t *testing.T) {
	tests := map[string]string{
		"alice@example.com":  "a***e@example.com",
		"al@example.com":     "a***@example.com",
		"a@example.com":      "a***@example.com",
		"@example.com":       "***@example.com",
		"broken":             "***",
		"élodie@example.com": "é***e@example.com",
		"zoë@example.com":    "z***ë@example.com",
		"日本@example.com":     "日***@example.com",
	}
	for in, want := range tests {
		got := MaskEmail(in)
		assert.Equal(t, want, got, in)
		assert.True(t, utf8.ValidString(got), in)
	}
}

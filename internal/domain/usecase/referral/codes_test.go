package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

func TestNewServiceDefaults(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, entity.DefaultReferralCodeLength, f.service.options.CodeLength)
	assert.Equal(t, defaultMaxCodeAttempts, f.service.options.MaxCodeAttempts)
}

func TestGenerateCode(t *testing.T) {
	ctx := context.Background()

	t.Run("First unused code wins", func(t *testing.T) {
		f := newFixture(t)
		f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("TAKEN222", nil).Once()
		f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("FRESH333", nil).Once()
		f.users.EXPECT().ReferralCodeExists(mock.Anything, "TAKEN222").Return(true, nil)
		f.users.EXPECT().ReferralCodeExists(mock.Anything, "FRESH333").Return(false, nil)

		code, err := f.service.GenerateCode(ctx)

		require.NoError(t, err)
		assert.Equal(t, "FRESH333", code)
	})

	t.Run("Gives up after the configured attempts", func(t *testing.T) {
		f := newFixture(t)
		f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("TAKEN222", nil).Times(defaultMaxCodeAttempts)
		f.users.EXPECT().ReferralCodeExists(mock.Anything, "TAKEN222").Return(true, nil).Times(defaultMaxCodeAttempts)

		_, err := f.service.GenerateCode(ctx)
		assert.ErrorIs(t, err, errs.ErrReferralCodeUnavailable)
	})

	t.Run("Generator failure", func(t *testing.T) {
		f := newFixture(t)
		f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("", errors.New("entropy")).Once()

		_, err := f.service.GenerateCode(ctx)
		assert.ErrorContains(t, err, "entropy")
	})
}

func TestResolveCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid codes never hit storage", func(t *testing.T) {
		f := newFixture(t)

		for _, code := range []string{"", "  ", "bad-code", "OOOO0000"} {
			_, err := f.service.ResolveCode(ctx, code)
			assert.ErrorIs(t, err, errs.ErrReferralCodeNotFound, code)
		}
	})

	t.Run("Cache miss reads storage and fills the cache", func(t *testing.T) {
		f := newFixture(t)
		owner := member(5, 0)
		owner.Email = "owner@example.com"
		owner.ReferralCode = "ABCD2345"
		f.codeCache.EXPECT().Get(mock.Anything, "ABCD2345").Return(uint64(0), false, nil)
		f.users.EXPECT().GetByReferralCode(mock.Anything, "ABCD2345").Return(owner, nil)
		f.codeCache.EXPECT().Set(mock.Anything, "ABCD2345", uint64(5)).Return(nil)

		got, err := f.service.ResolveCode(ctx, " abcd2345 ")

		require.NoError(t, err)
		assert.Equal(t, uint64(5), got.UserID)
		assert.Equal(t, "o***r@example.com", got.MaskedEmail)
		assert.Equal(t, "ABCD2345", got.ReferralCode)
	})

	t.Run("Cache hit is verified against storage", func(t *testing.T) {
		f := newFixture(t)
		owner := member(5, 0)
		owner.ReferralCode = "ABCD2345"
		f.codeCache.EXPECT().Get(mock.Anything, "ABCD2345").Return(uint64(5), true, nil)
		f.users.EXPECT().GetByID(mock.Anything, uint64(5)).Return(owner, nil)

		got, err := f.service.ResolveCode(ctx, "ABCD2345")

		require.NoError(t, err)
		assert.Equal(t, uint64(5), got.UserID)
	})

	t.Run("Stale cache entry is dropped", func(t *testing.T) {
		f := newFixture(t)
		moved := member(5, 0)
		moved.ReferralCode = "ZZZZ2345"
		current := member(6, 0)
		current.ReferralCode = "ABCD2345"
		f.codeCache.EXPECT().Get(mock.Anything, "ABCD2345").Return(uint64(5), true, nil)
		f.users.EXPECT().GetByID(mock.Anything, uint64(5)).Return(moved, nil)
		f.codeCache.EXPECT().Delete(mock.Anything, "ABCD2345").Return(nil)
		f.users.EXPECT().GetByReferralCode(mock.Anything, "ABCD2345").Return(current, nil)
		f.codeCache.EXPECT().Set(mock.Anything, "ABCD2345", uint64(6)).Return(nil)

		got, err := f.service.ResolveCode(ctx, "ABCD2345")

		require.NoError(t, err)
		assert.Equal(t, uint64(6), got.UserID)
	})

	t.Run("Cache errors fall back to storage", func(t *testing.T) {
		f := newFixture(t)
		owner := member(5, 0)
		owner.ReferralCode = "ABCD2345"
		f.codeCache.EXPECT().Get(mock.Anything, "ABCD2345").Return(uint64(0), false, errors.New("redis down"))
		f.users.EXPECT().GetByReferralCode(mock.Anything, "ABCD2345").Return(owner, nil)
		f.codeCache.EXPECT().Set(mock.Anything, "ABCD2345", uint64(5)).Return(errors.New("redis down"))

		got, err := f.service.ResolveCode(ctx, "ABCD2345")

		require.NoError(t, err)
		assert.Equal(t, uint64(5), got.UserID)
	})

	t.Run("Unknown code", func(t *testing.T) {
		f := newFixture(t)
		f.codeCache.EXPECT().Get(mock.Anything, "ABCD2345").Return(uint64(0), false, nil)
		f.users.EXPECT().GetByReferralCode(mock.Anything, "ABCD2345").Return(nil, errs.ErrReferralCodeNotFound)

		_, err := f.service.ResolveCode(ctx, "ABCD2345")
		assert.ErrorIs(t, err, errs.ErrReferralCodeNotFound)
	})
}

func TestBackfillCodes(t *testing.T) {
	f := newFixture(t)
	a, b := member(1, 0), member(2, 0)
	a.ReferralCode, b.ReferralCode = "", ""

	f.users.EXPECT().ListMissingReferralCode(mock.Anything, backfillBatchSize).Return([]*entity.User{a, b}, nil).Once()
	f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("AAAA2222", nil).Once()
	f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("BBBB3333", nil).Once()
	f.users.EXPECT().ReferralCodeExists(mock.Anything, mock.Anything).Return(false, nil).Twice()
	f.users.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Twice()

	assigned, err := f.service.BackfillCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, assigned)
	assert.Equal(t, "AAAA2222", a.ReferralCode)
	assert.Equal(t, "BBBB3333", b.ReferralCode)
}

func TestBackfillCodes_RedrawsClaimedCode(t *testing.T) {
	f := newFixture(t)
	a := member(1, 0)
	a.ReferralCode = ""

	f.users.EXPECT().ListMissingReferralCode(mock.Anything, backfillBatchSize).Return([]*entity.User{a}, nil).Once()
	f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("AAAA2222", nil).Once()
	f.codes.On("Generate", entity.ReferralCodeAlphabet, 8).Return("CCCC4444", nil).Once()
	f.users.EXPECT().ReferralCodeExists(mock.Anything, mock.Anything).Return(false, nil).Twice()
	f.users.EXPECT().Update(mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ReferralCode == "AAAA2222"
	})).Return(errs.ErrReferralCodeTaken).Once()
	f.users.EXPECT().Update(mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ReferralCode == "CCCC4444"
	})).Return(nil).Once()

	assigned, err := f.service.BackfillCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	assert.Equal(t, "CCCC4444", a.ReferralCode)
}

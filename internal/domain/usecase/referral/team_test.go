package referral

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// tree: 1 -> {2, 3}; 2 -> {4}; 4 -> {5}; 5 -> {6} (level 4, never loaded)
func expectTree(f *fixture) {
	two, three, four, five := member(2, 1), member(3, 1), member(4, 2), member(5, 4)
	two.HasDeposited, two.TotalDeposited = true, 5000
	four.HasDeposited, four.TotalDeposited = true, 1000

	f.users.EXPECT().GetByID(mock.Anything, uint64(1)).Return(member(1, 0), nil)
	f.users.EXPECT().ListByReferrers(mock.Anything, []uint64{1}).Return([]*entity.User{two, three}, nil)
	f.users.EXPECT().ListByReferrers(mock.Anything, []uint64{2, 3}).Return([]*entity.User{four}, nil)
	f.users.EXPECT().ListByReferrers(mock.Anything, []uint64{4}).Return([]*entity.User{five}, nil)
}

func TestDirectReferrals(t *testing.T) {
	ctx := context.Background()

	t.Run("Lists level one and skips self references", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(mock.Anything, uint64(1)).Return(member(1, 1), nil)
		f.users.EXPECT().ListByReferrers(mock.Anything, []uint64{1}).
			Return([]*entity.User{member(1, 1), member(2, 1)}, nil)

		members, err := f.service.DirectReferrals(ctx, 1)

		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, uint64(2), members[0].UserID)
		assert.Equal(t, 1, members[0].Level)
	})

	t.Run("Unknown user", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(mock.Anything, uint64(9)).Return(nil, errs.ErrUserNotFound)

		_, err := f.service.DirectReferrals(ctx, 9)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestTeam(t *testing.T) {
	f := newFixture(t)
	expectTree(f)

	team, err := f.service.Team(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 4, team.Size())
	assert.Len(t, team.Levels[0], 2)
	assert.Len(t, team.Levels[1], 1)
	assert.Len(t, team.Levels[2], 1)
	assert.Equal(t, uint64(5), team.Levels[2][0].UserID)
	assert.Equal(t, 3, team.Levels[2][0].Level)
}

func TestTeamSkipsBackEdges(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().GetByID(mock.Anything, uint64(1)).Return(member(1, 2), nil)
	f.users.EXPECT().ListByReferrers(mock.Anything, []uint64{1}).Return([]*entity.User{member(2, 1)}, nil)
	// corrupted data: user 1 claims 2 as referrer, closing a loop
	f.users.EXPECT().ListByReferrers(mock.Anything, []uint64{2}).Return([]*entity.User{member(1, 2)}, nil)

	team, err := f.service.Team(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, team.Size())
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	expectTree(f)
	f.settings.EXPECT().Get(mock.Anything).Return(entity.DefaultSettings(), nil)
	f.txs.EXPECT().SumReferralBonusesByLevel(mock.Anything, uint64(1)).
		Return(map[int]int64{1: 500, 2: 100}, nil)

	stats, err := f.service.Stats(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalMembers)
	assert.Equal(t, int64(6000), stats.TotalDeposited)
	assert.Equal(t, int64(600), stats.TotalEarnings)

	level1 := stats.Levels[0]
	assert.Equal(t, 1, level1.Level)
	assert.Equal(t, 2, level1.Members)
	assert.Equal(t, 1, level1.Deposited)
	assert.Equal(t, 1, level1.NotDeposited)
	assert.Equal(t, int64(5000), level1.TotalDeposited)
	assert.Equal(t, int64(500), level1.Earnings)
	assert.Equal(t, 1000, level1.RateBps)

	assert.Equal(t, 200, stats.Levels[2].RateBps)
	assert.Equal(t, int64(0), stats.Levels[2].Earnings)
}

func TestEarnings(t *testing.T) {
	f := newFixture(t)
	f.txs.EXPECT().SumReferralBonusesByLevel(mock.Anything, uint64(1)).
		Return(map[int]int64{1: 500, 2: 100, 3: 25}, nil)

	total, err := f.service.Earnings(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(625), total)
}

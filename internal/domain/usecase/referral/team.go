package referral

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
)

// DirectReferrals returns the users who registered with the user's code
func (s *Service) DirectReferrals(ctx context.Context, userID uint64) ([]entity.ReferralMember, error) {
	repo := s.uow.GetUserRepository(ctx)
	if _, err := repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	users, err := repo.ListByReferrers(ctx, []uint64{userID})
	if err != nil {
		return nil, err
	}

	members := make([]entity.ReferralMember, 0, len(users))
	for _, u := range users {
		if u.ID == userID {
			continue
		}
		members = append(members, entity.NewReferralMember(u, 1))
	}
	return members, nil
}

// Team walks the referral tree breadth first for three levels, one query per level
func (s *Service) Team(ctx context.Context, userID uint64) (*entity.ReferralTeam, error) {
	repo := s.uow.GetUserRepository(ctx)
	if _, err := repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.walkTeam(ctx, repo, userID)
}

func (s *Service) walkTeam(ctx context.Context, repo persistence.UserRepository, rootID uint64) (*entity.ReferralTeam, error) {
	team := &entity.ReferralTeam{RootUserID: rootID}
	visited := map[uint64]bool{rootID: true}
	frontier := []uint64{rootID}

	for level := 1; level <= entity.MaxReferralDepth && len(frontier) > 0; level++ {
		users, err := repo.ListByReferrers(ctx, frontier)
		if err != nil {
			return nil, err
		}

		members := make([]entity.ReferralMember, 0, len(users))
		next := make([]uint64, 0, len(users))
		for _, u := range users {
			if visited[u.ID] {
				s.logger.Warn("Referral back-edge skipped", map[string]any{
					"root_user_id": rootID,
					"user_id":      u.ID,
					"level":        level,
				})
				continue
			}
			visited[u.ID] = true
			members = append(members, entity.NewReferralMember(u, level))
			next = append(next, u.ID)
		}

		team.Levels[level-1] = members
		frontier = next
	}

	s.logger.Debug("Referral team loaded", map[string]any{
		"root_user_id": rootID,
		"members":      team.Size(),
	})
	return team, nil
}

// Stats aggregates membership, deposits and earned bonuses per level
func (s *Service) Stats(ctx context.Context, userID uint64) (*entity.ReferralStats, error) {
	repo := s.uow.GetUserRepository(ctx)
	root, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	team, err := s.walkTeam(ctx, repo, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	earnings, err := s.uow.GetTransactionRepository(ctx).SumReferralBonusesByLevel(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &entity.ReferralStats{
		UserID:       userID,
		ReferralCode: root.ReferralCode,
	}
	for i, members := range team.Levels {
		level := i + 1
		ls := entity.ReferralLevelStats{
			Level:    level,
			Members:  len(members),
			Earnings: earnings[level],
			RateBps:  settings.RateForLevel(level),
		}
		for _, m := range members {
			if m.HasDeposited {
				ls.Deposited++
			} else {
				ls.NotDeposited++
			}
			ls.TotalDeposited += m.TotalDeposited
		}

		stats.Levels[i] = ls
		stats.TotalMembers += ls.Members
		stats.TotalDeposited += ls.TotalDeposited
		stats.TotalEarnings += ls.Earnings
	}

	return stats, nil
}

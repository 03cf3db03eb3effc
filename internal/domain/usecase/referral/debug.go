package referral

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// Debug reports a user's position in the referral graph and any integrity
// problems around it.
func (s *Service) Debug(ctx context.Context, userID uint64) (*entity.ReferralDebugReport, error) {
	repo := s.uow.GetUserRepository(ctx)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &entity.ReferralDebugReport{
		UserID:       user.ID,
		Email:        user.Email,
		ReferralCode: user.ReferralCode,
		ReferrerID:   user.ReferrerID,
		HasDeposited: user.HasDeposited,
		Ancestors:    []entity.ReferralMember{},
		Issues:       []entity.ReferralIssue{},
	}

	if user.ReferralCode == "" {
		report.Issues = append(report.Issues, entity.IssueMissingCode)
	}

	if user.ReferrerID != nil && *user.ReferrerID == user.ID {
		report.Issues = append(report.Issues, entity.IssueSelfReferral)
	} else if err := s.walkAncestors(ctx, user, report); err != nil {
		return nil, err
	}

	if report.DirectReferrals, err = s.countDirect(ctx, user.ID); err != nil {
		return nil, err
	}
	if report.Earnings, err = s.Earnings(ctx, user.ID); err != nil {
		return nil, err
	}

	if len(report.Issues) > 0 {
		s.logger.Warn("Referral issues detected", map[string]any{
			"user_id": user.ID,
			"issues":  report.Issues,
		})
	}
	return report, nil
}

func (s *Service) walkAncestors(ctx context.Context, user *entity.User, report *entity.ReferralDebugReport) error {
	repo := s.uow.GetUserRepository(ctx)
	visited := map[uint64]bool{user.ID: true}
	current := user

	for depth := 1; current.ReferrerID != nil && depth <= maxAncestorWalk; depth++ {
		ancestorID := *current.ReferrerID
		if visited[ancestorID] {
			report.Issues = append(report.Issues, entity.IssueCycleDetected)
			return nil
		}
		visited[ancestorID] = true

		ancestor, err := repo.GetByID(ctx, ancestorID)
		if err != nil {
			if errs.IsUserNotFoundError(err) {
				report.Issues = append(report.Issues, entity.IssueDanglingReferrer)
				return nil
			}
			return err
		}

		report.Ancestors = append(report.Ancestors, entity.NewReferralMember(ancestor, depth))
		current = ancestor
	}
	return nil
}

func (s *Service) countDirect(ctx context.Context, userID uint64) (int, error) {
	count, err := s.uow.GetUserRepository(ctx).CountByReferrer(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

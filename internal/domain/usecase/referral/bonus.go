package referral

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// PayFirstDepositBonuses credits up to three ancestors of the depositor with
// their level's share of the deposit. The walk stops at a missing referrer, a
// dangling reference or a cycle; disabled ancestors earn nothing but the walk
// continues past them. Zero bonuses are not recorded.
func (s *Service) PayFirstDepositBonuses(ctx context.Context, depositor *entity.User, amountInCents int64) ([]*entity.Transaction, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	userRepo := s.uow.GetUserRepository(ctx)
	txRepo := s.uow.GetTransactionRepository(ctx)

	visited := map[uint64]bool{depositor.ID: true}
	current := depositor
	var paid []*entity.Transaction

	for level := 1; level <= entity.MaxReferralDepth; level++ {
		if current.ReferrerID == nil {
			break
		}

		ancestorID := *current.ReferrerID
		if visited[ancestorID] {
			s.logger.Warn("Referral cycle detected while paying bonuses", map[string]any{
				"depositor_id": depositor.ID,
				"ancestor_id":  ancestorID,
				"level":        level,
			})
			break
		}
		visited[ancestorID] = true

		ancestor, err := userRepo.GetByID(ctx, ancestorID)
		if err != nil {
			if errs.IsUserNotFoundError(err) {
				s.logger.Warn("Dangling referrer while paying bonuses", map[string]any{
					"depositor_id": depositor.ID,
					"ancestor_id":  ancestorID,
					"level":        level,
				})
				break
			}
			return nil, err
		}
		current = ancestor

		if !ancestor.IsActive() {
			s.logger.Info("Skipping bonus for disabled ancestor", map[string]any{
				"ancestor_id": ancestorID,
				"level":       level,
			})
			continue
		}

		bonus := entity.ApplyBasisPoints(amountInCents, settings.RateForLevel(level))
		if bonus == 0 {
			continue
		}

		tx, err := entity.NewReferralBonus(ancestor.ID, depositor.ID, level, s.idGenerator.NewID(), bonus, s.timeProvider)
		if err != nil {
			return nil, err
		}

		updated, err := userRepo.ProcessBalanceChange(ctx, ancestor.ID, bonus)
		if err != nil {
			return nil, fmt.Errorf("crediting level %d bonus to user %d: %w", level, ancestor.ID, err)
		}

		tx.MarkAsCompleted(s.timeProvider, updated.GetBalance(), nil)
		if err := txRepo.Create(ctx, tx); err != nil {
			return nil, err
		}

		if err := s.notifications.Notify(ctx, ancestor.ID, entity.NotifyReferralBonus,
			"Referral bonus received",
			fmt.Sprintf("You earned %s from a level %d referral's first deposit.", tx.Amount, level),
		); err != nil {
			return nil, err
		}

		s.logger.Info("Referral bonus paid", map[string]any{
			"beneficiary_id": ancestor.ID,
			"depositor_id":   depositor.ID,
			"level":          level,
			"amount":         tx.Amount,
			"transaction_id": tx.TransactionID,
		})
		paid = append(paid, tx)
	}

	return paid, nil
}

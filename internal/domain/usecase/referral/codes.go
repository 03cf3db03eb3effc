package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// GenerateCode draws random codes until one is unused, up to MaxCodeAttempts times
func (s *Service) GenerateCode(ctx context.Context) (string, error) {
	repo := s.uow.GetUserRepository(ctx)

	for attempt := 1; attempt <= s.options.MaxCodeAttempts; attempt++ {
		code, err := s.codeGenerator.Generate(entity.ReferralCodeAlphabet, s.options.CodeLength)
		if err != nil {
			return "", fmt.Errorf("generating referral code: %w", err)
		}

		exists, err := repo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		s.logger.Warn("Referral code collision", map[string]any{
			"attempt": attempt,
			"code":    code,
		})
	}

	s.logger.Error("Exhausted referral code attempts", map[string]any{
		"attempts": s.options.MaxCodeAttempts,
	})
	return "", errs.ErrReferralCodeUnavailable
}

// ResolveCode returns the owner of a referral code. Codes are matched
// case-insensitively; positive lookups are cached.
func (s *Service) ResolveCode(ctx context.Context, code string) (*entity.ReferralOwner, error) {
	code = entity.NormalizeReferralCode(code)
	if !entity.IsValidReferralCode(code) {
		return nil, errs.ErrReferralCodeNotFound
	}

	repo := s.uow.GetUserRepository(ctx)

	if userID, found, err := s.codeCache.Get(ctx, code); err != nil {
		s.logger.Warn("Referral code cache read failed", map[string]any{
			"code":  code,
			"error": err.Error(),
		})
	} else if found {
		user, err := repo.GetByID(ctx, userID)
		if err == nil && user.ReferralCode == code {
			return toOwner(user), nil
		}
		// stale entry
		_ = s.codeCache.Delete(ctx, code)
	}

	user, err := repo.GetByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.codeCache.Set(ctx, code, user.ID); err != nil {
		s.logger.Warn("Referral code cache write failed", map[string]any{
			"code":  code,
			"error": err.Error(),
		})
	}

	return toOwner(user), nil
}

// BackfillCodes assigns a fresh code to every user that has none
func (s *Service) BackfillCodes(ctx context.Context) (int, error) {
	repo := s.uow.GetUserRepository(ctx)
	assigned := 0

	for {
		users, err := repo.ListMissingReferralCode(ctx, backfillBatchSize)
		if err != nil {
			return assigned, err
		}

		for _, user := range users {
			if err := s.assignCode(ctx, user); err != nil {
				return assigned, fmt.Errorf("assigning referral code to user %d: %w", user.ID, err)
			}
			assigned++
		}

		if len(users) < backfillBatchSize {
			break
		}
	}

	s.logger.Info("Referral codes backfilled", map[string]any{
		"assigned": assigned,
	})
	return assigned, nil
}

// assignCode stores a fresh code on user, drawing again when another user
// claimed the code before the update landed
func (s *Service) assignCode(ctx context.Context, user *entity.User) error {
	repo := s.uow.GetUserRepository(ctx)

	for attempt := 1; attempt <= s.options.MaxCodeAttempts; attempt++ {
		code, err := s.GenerateCode(ctx)
		if err != nil {
			return err
		}
		user.ReferralCode = code

		err = repo.Update(ctx, user)
		if !errors.Is(err, errs.ErrReferralCodeTaken) {
			return err
		}
		s.logger.Warn("Referral code claimed concurrently, drawing another", map[string]any{
			"user_id": user.ID,
			"attempt": attempt,
			"code":    code,
		})
	}
	return errs.ErrReferralCodeUnavailable
}

func toOwner(user *entity.User) *entity.ReferralOwner {
	return &entity.ReferralOwner{
		UserID:       user.ID,
		MaskedEmail:  user.MaskedEmail(),
		ReferralCode: user.ReferralCode,
	}
}

package announcement

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// Service implements usecase.AnnouncementUseCase
type Service struct {
	repo         persistence.AnnouncementRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates an announcement service
func NewService(repo persistence.AnnouncementRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.AnnouncementUseCase = (*Service)(nil)

func (s *Service) Create(ctx context.Context, input usecase.AnnouncementInput) (*entity.Announcement, error) {
	now := s.timeProvider.Now()
	a := &entity.Announcement{
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(a, input)

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Announcement created", map[string]any{
		"announcement_id": a.ID,
		"active":          a.Active,
	})
	return a, nil
}

func (s *Service) Update(ctx context.Context, id uint64, input usecase.AnnouncementInput) (*entity.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(a, input)
	a.UpdatedAt = s.timeProvider.Now()

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Announcement updated", map[string]any{
		"announcement_id": a.ID,
		"active":          a.Active,
	})
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Announcement deleted", map[string]any{"announcement_id": id})
	return nil
}

func (s *Service) ListAll(ctx context.Context) ([]*entity.Announcement, error) {
	return s.repo.List(ctx, false)
}

// ListActive returns the active announcements, newest first
func (s *Service) ListActive(ctx context.Context) ([]*entity.Announcement, error) {
	return s.repo.List(ctx, true)
}

// apply copies input onto a; a missing date keeps the current one, or the creation time
func apply(a *entity.Announcement, input usecase.AnnouncementInput) {
	a.Title = strings.TrimSpace(input.Title)
	a.Content = strings.TrimSpace(input.Content)
	a.Active = input.Active
	if input.Date != nil {
		a.Date = *input.Date
	} else if a.Date.IsZero() {
		a.Date = a.CreatedAt
	}
}

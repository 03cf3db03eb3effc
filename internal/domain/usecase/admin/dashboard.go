package admin

import (
	"context"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// DashboardService implements usecase.AdminUseCase
type DashboardService struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

// NewDashboardService creates the admin overview service
func NewDashboardService(uow persistence.UnitOfWork, logger coreport.Logger) *DashboardService {
	return &DashboardService{uow: uow, logger: logger}
}

var _ usecase.AdminUseCase = (*DashboardService)(nil)

// Dashboard aggregates user and transaction totals
func (s *DashboardService) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	users, err := s.uow.GetUserRepository(ctx).Summary(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.uow.GetTransactionRepository(ctx).Summary(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Dashboard computed", map[string]any{
		"total_users":         users.TotalUsers,
		"pending_deposits":    transactions.PendingDeposits,
		"pending_withdrawals": transactions.PendingWithdrawals,
	})

	return &entity.Dashboard{
		Users:        *users,
		Transactions: *transactions,
	}, nil
}

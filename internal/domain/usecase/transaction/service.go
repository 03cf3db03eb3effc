package transaction

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// staleDepositReason is recorded on deposits expired by ExpireStaleDeposits
const staleDepositReason = "expired without review"

// Service ties together validation, per-user ordering and processing
type Service struct {
	uow          persistence.UnitOfWork
	settings     usecase.SettingsUseCase
	manager      *TransactionManager
	processor    *TransactionProcessor
	validator    *TransactionValidator
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	metrics      coreport.Metrics
	logger       coreport.Logger
}

// Dependencies groups what NewTransactionService needs
type Dependencies struct {
	UnitOfWork    persistence.UnitOfWork
	UserLockRepo  persistence.UserLockRepository
	Settings      usecase.SettingsUseCase
	Referrals     usecase.ReferralUseCase
	Notifications usecase.NotificationUseCase
	IDGenerator   coreport.IDGenerator
	TimeProvider  coreport.TimeProvider
	Metrics       coreport.Metrics
	Logger        coreport.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(deps Dependencies, lockTimeout time.Duration, queueSize int) *Service {
	manager := NewTransactionManager(deps.UserLockRepo, deps.TimeProvider, deps.Logger).
		WithLockTimeout(lockTimeout).
		WithQueueSize(queueSize)

	processor := NewTransactionProcessor(
		deps.UnitOfWork,
		deps.Referrals,
		deps.Notifications,
		NewIdempotencyHandler(),
		deps.IDGenerator,
		deps.TimeProvider,
		deps.Logger,
	)

	return &Service{
		uow:          deps.UnitOfWork,
		settings:     deps.Settings,
		manager:      manager,
		processor:    processor,
		validator:    NewTransactionValidator(),
		idGenerator:  deps.IDGenerator,
		timeProvider: deps.TimeProvider,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
	}
}

// RequestDeposit records a pending deposit. Balances change only on approval.
func (s *Service) RequestDeposit(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error) {
	amountInCents, err := s.validator.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := settings.CheckDepositAmount(amountInCents); err != nil {
		return nil, err
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, errs.ErrUserDisabled
	}

	txn, err := entity.NewTransaction(req.UserID, s.idGenerator.NewID(), entity.TypeDeposit, amountInCents, req.Description, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetTransactionRepository(ctx).Create(ctx, txn); err != nil {
		return nil, err
	}

	s.metrics.TransactionRequested(string(entity.TypeDeposit))
	s.logger.Info("Deposit requested", map[string]any{
		"user_id":        req.UserID,
		"transaction_id": txn.TransactionID,
		"amount":         txn.Amount,
	})
	return txn, nil
}

// RequestWithdrawal holds the amount and records a pending withdrawal
func (s *Service) RequestWithdrawal(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error) {
	amountInCents, err := s.validator.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := settings.CheckWithdrawalAmount(amountInCents); err != nil {
		return nil, err
	}

	txn, err := s.manager.Enqueue(ctx, req.UserID, func(ctx context.Context) (*entity.Transaction, error) {
		return s.processor.Withdraw(ctx, req.UserID, amountInCents, req.Description)
	})
	if err != nil {
		s.logFailure("Withdrawal request failed", req.UserID, "", err)
		return nil, err
	}

	s.metrics.TransactionRequested(string(entity.TypeWithdrawal))
	s.logger.Info("Withdrawal requested", map[string]any{
		"user_id":        req.UserID,
		"transaction_id": txn.TransactionID,
		"amount":         txn.Amount,
	})
	return txn, nil
}

// Invest debits the balance immediately
func (s *Service) Invest(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error) {
	amountInCents, err := s.validator.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	txn, err := s.manager.Enqueue(ctx, req.UserID, func(ctx context.Context) (*entity.Transaction, error) {
		return s.processor.Invest(ctx, req.UserID, amountInCents, req.Description)
	})
	if err != nil {
		s.logFailure("Investment failed", req.UserID, "", err)
		return nil, err
	}

	s.metrics.TransactionRequested(string(entity.TypeInvestment))
	s.metrics.TransactionSettled(string(txn.Type), string(txn.Status), txn.AmountInCents)
	s.logger.Info("Investment completed", map[string]any{
		"user_id":        req.UserID,
		"transaction_id": txn.TransactionID,
		"amount":         txn.Amount,
		"balance":        txn.ResultBalance,
	})
	return txn, nil
}

// ApproveTransaction completes a pending deposit or withdrawal
func (s *Service) ApproveTransaction(ctx context.Context, transactionID string, adminID uint64) (*entity.Transaction, error) {
	if err := s.validator.ValidateDecision(transactionID, adminID, ""); err != nil {
		return nil, err
	}

	userID, err := s.ownerOf(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var decision *Decision
	txn, err := s.manager.Enqueue(ctx, userID, func(ctx context.Context) (*entity.Transaction, error) {
		d, err := s.processor.Approve(ctx, transactionID, adminID)
		if err != nil {
			return nil, err
		}
		decision = d
		return d.Transaction, nil
	})
	if err != nil {
		s.logFailure("Approval failed", userID, transactionID, err)
		return nil, err
	}

	s.metrics.TransactionSettled(string(txn.Type), string(txn.Status), txn.AmountInCents)
	for _, bonus := range decision.Bonuses {
		s.metrics.ReferralBonusPaid(bonus.ReferralLevel, bonus.AmountInCents)
	}

	s.logger.Info("Transaction approved", map[string]any{
		"user_id":        userID,
		"admin_id":       adminID,
		"transaction_id": transactionID,
		"type":           txn.Type,
		"amount":         txn.Amount,
		"bonuses":        len(decision.Bonuses),
	})
	return txn, nil
}

// RejectTransaction fails a pending deposit or withdrawal
func (s *Service) RejectTransaction(ctx context.Context, transactionID string, adminID uint64, reason string) (*entity.Transaction, error) {
	if err := s.validator.ValidateDecision(transactionID, adminID, reason); err != nil {
		return nil, err
	}

	userID, err := s.ownerOf(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	txn, err := s.manager.Enqueue(ctx, userID, func(ctx context.Context) (*entity.Transaction, error) {
		return s.processor.Reject(ctx, transactionID, adminID, reason)
	})
	if err != nil {
		s.logFailure("Rejection failed", userID, transactionID, err)
		return nil, err
	}

	s.metrics.TransactionSettled(string(txn.Type), string(txn.Status), txn.AmountInCents)
	s.logger.Info("Transaction rejected", map[string]any{
		"user_id":        userID,
		"admin_id":       adminID,
		"transaction_id": transactionID,
		"type":           txn.Type,
		"reason":         reason,
	})
	return txn, nil
}

// AdjustBalance records a completed admin credit or debit
func (s *Service) AdjustBalance(ctx context.Context, req usecase.AdjustmentRequest) (*entity.Transaction, error) {
	amountInCents, err := s.validator.ValidateAdjustment(req)
	if err != nil {
		return nil, err
	}

	txn, err := s.manager.Enqueue(ctx, req.UserID, func(ctx context.Context) (*entity.Transaction, error) {
		return s.processor.Adjust(ctx, req, amountInCents)
	})
	if err != nil {
		s.logFailure("Balance adjustment failed", req.UserID, "", err)
		return nil, err
	}

	s.metrics.TransactionSettled(string(txn.Type), string(txn.Status), txn.AmountInCents)
	s.logger.Info("Balance adjusted", map[string]any{
		"user_id":        req.UserID,
		"admin_id":       req.AdminID,
		"transaction_id": txn.TransactionID,
		"type":           txn.Type,
		"amount":         txn.Amount,
		"balance":        txn.ResultBalance,
	})
	return txn, nil
}

// ListUserTransactions returns one page of a user's own history
func (s *Service) ListUserTransactions(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.Page[*entity.Transaction], error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	filter.UserID = userID
	return s.ListTransactions(ctx, filter)
}

// ListTransactions returns one page of transactions across all users
func (s *Service) ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*entity.Page[*entity.Transaction], error) {
	if err := s.validator.ValidateFilter(filter); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = entity.NormalizePage(filter.Page, filter.PageSize)

	items, total, err := s.uow.GetTransactionRepository(ctx).List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.Page[*entity.Transaction]{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ExpireStaleDeposits fails deposits left pending longer than olderThan.
// Deposits never touched the balance, so no refund is needed.
func (s *Service) ExpireStaleDeposits(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, nil
	}

	cutoff := s.timeProvider.Now().Add(-olderThan)
	expired, err := s.uow.GetTransactionRepository(ctx).FailStalePending(ctx, entity.TypeDeposit, cutoff, staleDepositReason)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.logger.Info("Expired stale deposits", map[string]any{
			"count":  expired,
			"cutoff": cutoff,
		})
	}
	return expired, nil
}

// Shutdown drains the per-user queues
func (s *Service) Shutdown() {
	s.manager.Shutdown()
}

// ownerOf finds which user's queue a decision belongs in
func (s *Service) ownerOf(ctx context.Context, transactionID string) (uint64, error) {
	txn, err := s.uow.GetTransactionRepository(ctx).GetByTransactionID(ctx, transactionID)
	if err != nil {
		return 0, err
	}
	return txn.UserID, nil
}

func (s *Service) logFailure(msg string, userID uint64, transactionID string, err error) {
	fields := map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	}
	if transactionID != "" {
		fields["transaction_id"] = transactionID
	}

	// business rejections are expected; anything else is worth an error line
	if errs.IsValidationError(err) || errs.IsInsufficientBalanceError(err) || errs.IsNotFoundError(err) {
		s.logger.Warn(msg, fields)
		return
	}
	s.logger.Error(msg, fields)
}

package transaction

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

// TransactionProcessor moves balances. Every method runs inside a single
// database transaction, so a failure anywhere leaves no partial effects.
type TransactionProcessor struct {
	uow                persistence.UnitOfWork
	referrals          usecase.ReferralUseCase
	notifications      usecase.NotificationUseCase
	idempotencyHandler *IdempotencyHandler
	idGenerator        coreport.IDGenerator
	timeProvider       coreport.TimeProvider
	logger             coreport.Logger
}

// NewTransactionProcessor creates a new TransactionProcessor
func NewTransactionProcessor(
	uow persistence.UnitOfWork,
	referrals usecase.ReferralUseCase,
	notifications usecase.NotificationUseCase,
	idempotencyHandler *IdempotencyHandler,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionProcessor {
	return &TransactionProcessor{
		uow:                uow,
		referrals:          referrals,
		notifications:      notifications,
		idempotencyHandler: idempotencyHandler,
		idGenerator:        idGenerator,
		timeProvider:       timeProvider,
		logger:             logger,
	}
}

// Decision is the outcome of approving a transaction
type Decision struct {
	Transaction *entity.Transaction
	Bonuses     []*entity.Transaction
}

// Withdraw holds the amount and records a pending withdrawal
func (p *TransactionProcessor) Withdraw(ctx context.Context, userID uint64, amountInCents int64, description string) (*entity.Transaction, error) {
	var txn *entity.Transaction
	err := p.uow.Execute(ctx, func(txCtx context.Context) error {
		if _, err := p.debit(txCtx, userID, amountInCents, entity.TypeWithdrawal); err != nil {
			return err
		}

		var err error
		txn, err = entity.NewTransaction(userID, p.idGenerator.NewID(), entity.TypeWithdrawal, amountInCents, description, p.timeProvider)
		if err != nil {
			return err
		}
		return p.uow.GetTransactionRepository(txCtx).Create(txCtx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Invest debits the balance and records a completed investment
func (p *TransactionProcessor) Invest(ctx context.Context, userID uint64, amountInCents int64, description string) (*entity.Transaction, error) {
	var txn *entity.Transaction
	err := p.uow.Execute(ctx, func(txCtx context.Context) error {
		updated, err := p.debit(txCtx, userID, amountInCents, entity.TypeInvestment)
		if err != nil {
			return err
		}

		txn, err = entity.NewTransaction(userID, p.idGenerator.NewID(), entity.TypeInvestment, amountInCents, description, p.timeProvider)
		if err != nil {
			return err
		}
		txn.MarkAsCompleted(p.timeProvider, updated.GetBalance(), nil)
		return p.uow.GetTransactionRepository(txCtx).Create(txCtx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Approve completes a pending deposit or withdrawal
func (p *TransactionProcessor) Approve(ctx context.Context, transactionID string, adminID uint64) (*Decision, error) {
	decision := &Decision{}
	err := p.uow.Execute(ctx, func(txCtx context.Context) error {
		txRepo := p.uow.GetTransactionRepository(txCtx)
		userRepo := p.uow.GetUserRepository(txCtx)

		txn, err := txRepo.GetForUpdate(txCtx, transactionID)
		if err != nil {
			return err
		}
		if err := p.idempotencyHandler.CheckReviewable(txn); err != nil {
			return err
		}

		var user *entity.User
		firstDeposit := false
		switch txn.Type {
		case entity.TypeDeposit:
			user, firstDeposit, err = userRepo.ApplyDeposit(txCtx, txn.UserID, txn.AmountInCents)
		default:
			// withdrawal funds were held at request time
			user, err = userRepo.GetByID(txCtx, txn.UserID)
		}
		if err != nil {
			return err
		}

		txn.MarkAsCompleted(p.timeProvider, user.GetBalance(), &adminID)
		if err := txRepo.Update(txCtx, txn); err != nil {
			return err
		}
		decision.Transaction = txn

		if firstDeposit {
			bonuses, err := p.referrals.PayFirstDepositBonuses(txCtx, user, txn.AmountInCents)
			if err != nil {
				return fmt.Errorf("failed to pay referral bonuses: %w", err)
			}
			decision.Bonuses = bonuses
		}

		kind, title := entity.NotifyDepositApproved, "Deposit approved"
		if txn.Type == entity.TypeWithdrawal {
			kind, title = entity.NotifyWithdrawalApproved, "Withdrawal approved"
		}
		return p.notifications.Notify(txCtx, txn.UserID, kind, title,
			fmt.Sprintf("Your %s of %s was approved.", lowerType(txn.Type), txn.Amount))
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}

// Reject fails a pending deposit or withdrawal, refunding withdrawals
func (p *TransactionProcessor) Reject(ctx context.Context, transactionID string, adminID uint64, reason string) (*entity.Transaction, error) {
	var txn *entity.Transaction
	err := p.uow.Execute(ctx, func(txCtx context.Context) error {
		txRepo := p.uow.GetTransactionRepository(txCtx)

		var err error
		txn, err = txRepo.GetForUpdate(txCtx, transactionID)
		if err != nil {
			return err
		}
		if err := p.idempotencyHandler.CheckReviewable(txn); err != nil {
			return err
		}

		txn.MarkAsFailed(p.timeProvider, reason, &adminID)
		if txn.Type == entity.TypeWithdrawal {
			refunded, err := p.uow.GetUserRepository(txCtx).ProcessBalanceChange(txCtx, txn.UserID, txn.AmountInCents)
			if err != nil {
				return err
			}
			txn.ResultBalance = refunded.GetBalance()
		}
		if err := txRepo.Update(txCtx, txn); err != nil {
			return err
		}

		kind, title := entity.NotifyDepositRejected, "Deposit rejected"
		if txn.Type == entity.TypeWithdrawal {
			kind, title = entity.NotifyWithdrawalRejected, "Withdrawal rejected"
		}
		message := fmt.Sprintf("Your %s of %s was rejected.", lowerType(txn.Type), txn.Amount)
		if reason != "" {
			message += " Reason: " + reason
		}
		return p.notifications.Notify(txCtx, txn.UserID, kind, title, message)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Adjust applies an admin credit or debit as a completed transaction
func (p *TransactionProcessor) Adjust(ctx context.Context, req usecase.AdjustmentRequest, amountInCents int64) (*entity.Transaction, error) {
	txType := entity.TypeAdminAdd
	if !req.Add {
		txType = entity.TypeAdminDeduct
	}

	var txn *entity.Transaction
	err := p.uow.Execute(ctx, func(txCtx context.Context) error {
		var updated *entity.User
		var err error
		if req.Add {
			updated, err = p.uow.GetUserRepository(txCtx).ProcessBalanceChange(txCtx, req.UserID, amountInCents)
		} else {
			updated, err = p.debit(txCtx, req.UserID, amountInCents, txType)
		}
		if err != nil {
			return err
		}

		txn, err = entity.NewTransaction(req.UserID, p.idGenerator.NewID(), txType, amountInCents, req.Description, p.timeProvider)
		if err != nil {
			return err
		}
		txn.MarkAsCompleted(p.timeProvider, updated.GetBalance(), &req.AdminID)
		if err := p.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
			return err
		}

		verb := "credited to"
		if !req.Add {
			verb = "deducted from"
		}
		return p.notifications.Notify(txCtx, req.UserID, entity.NotifyAdminAdjustment, "Balance adjusted",
			fmt.Sprintf("%s was %s your balance.", txn.Amount, verb))
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// debit removes funds after checking the account can cover them
func (p *TransactionProcessor) debit(ctx context.Context, userID uint64, amountInCents int64, txType entity.TransactionType) (*entity.User, error) {
	repo := p.uow.GetUserRepository(ctx)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if txType != entity.TypeAdminDeduct && !user.IsActive() {
		return nil, errs.ErrUserDisabled
	}
	if !user.CanDeduct(amountInCents) {
		p.logger.Warn("Insufficient balance", map[string]any{
			"user_id":   userID,
			"type":      txType,
			"balance":   user.GetBalance(),
			"requested": entity.AmountInCentsToString(amountInCents),
		})
		return nil, errs.NewInsufficientBalanceError(userID, entity.AmountInCentsToString(amountInCents), user.GetBalance())
	}

	return repo.ProcessBalanceChange(ctx, userID, -amountInCents)
}

func lowerType(t entity.TransactionType) string {
	switch t {
	case entity.TypeDeposit:
		return "deposit"
	case entity.TypeWithdrawal:
		return "withdrawal"
	default:
		return string(t)
	}
}

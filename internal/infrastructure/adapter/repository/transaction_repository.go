package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/model"
)

var transactionErrors = dbErrorMapping{notFound: errs.ErrTransactionNotFound, duplicate: errs.ErrDuplicateTransaction}

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

func (r *TransactionRepository) entityToModel(t *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:            t.ID,
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Amount:        t.Amount,
		AmountInCents: t.AmountInCents,
		ResultBalance: t.ResultBalance,
		Description:   t.Description,
		FailureReason: t.FailureReason,
		SourceUserID:  t.SourceUserID,
		ReferralLevel: t.ReferralLevel,
		ProcessedBy:   t.ProcessedBy,
		CreatedAt:     t.CreatedAt,
		ProcessedAt:   t.ProcessedAt,
	}
}

func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Type:          entity.TransactionType(m.Type),
		Status:        entity.TransactionStatus(m.Status),
		Amount:        m.Amount,
		AmountInCents: m.AmountInCents,
		ResultBalance: m.ResultBalance,
		Description:   m.Description,
		FailureReason: m.FailureReason,
		SourceUserID:  m.SourceUserID,
		ReferralLevel: m.ReferralLevel,
		ProcessedBy:   m.ProcessedBy,
		CreatedAt:     m.CreatedAt,
		ProcessedAt:   m.ProcessedAt,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, transactionID string) error {
	var fields map[string]any
	if transactionID != "" {
		fields = map[string]any{"transaction_id": transactionID}
	}
	return r.errorClassifier.translate(r.logger, operation, err, transactionErrors, fields)
}

// Create saves a new transaction and sets its ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	row := r.entityToModel(transaction)
	if err := r.db.WithContext(ctx).Omit("User").Create(row).Error; err != nil {
		if r.errorClassifier.IsConstraintError(err) {
			// the only foreign key on transactions points at users
			r.logger.Warn("Transaction references a missing user", map[string]any{
				"transaction_id": transaction.TransactionID,
				"user_id":        transaction.UserID,
			})
			return errs.ErrUserNotFound
		}
		return r.handleDatabaseError("creating transaction", err, transaction.TransactionID)
	}
	transaction.ID = row.ID

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": transaction.TransactionID,
		"user_id":        transaction.UserID,
		"type":           transaction.Type,
		"status":         transaction.Status,
	})
	return nil
}

// Update updates status, result balance and processing fields by transaction ID
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transaction_id = ?", transaction.TransactionID).
		Updates(map[string]any{
			"status":         string(transaction.Status),
			"result_balance": transaction.ResultBalance,
			"failure_reason": transaction.FailureReason,
			"processed_by":   transaction.ProcessedBy,
			"processed_at":   transaction.ProcessedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.TransactionID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"transaction_id": transaction.TransactionID,
		})
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByTransactionID retrieves a transaction by its external transaction ID
func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting transaction", err, transactionID)
	}
	return r.modelToEntity(&row), nil
}

// GetForUpdate retrieves a transaction with a row lock held until the unit of work ends
func (r *TransactionRepository) GetForUpdate(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transaction_id = ?", transactionID).
		First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("locking transaction", err, transactionID)
	}
	return r.modelToEntity(&row), nil
}

// TransactionExists checks if a transaction with the given ID already exists
func (r *TransactionRepository) TransactionExists(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking transaction existence", err, transactionID)
	}
	return count > 0, nil
}

// List returns one page of transactions matching the filter, newest first
func (r *TransactionRepository) List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, int64, error) {
	page, pageSize := entity.NormalizePage(filter.Page, filter.PageSize)

	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	// reusable session: Count and Find each get their own statement
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting transactions", err, "")
	}

	var rows []model.Transaction
	err := query.Order("created_at DESC, id DESC").
		Offset(entity.Offset(page, pageSize)).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing transactions", err, "")
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, r.modelToEntity(&rows[i]))
	}
	return transactions, total, nil
}

// SumReferralBonusesByLevel returns completed referral bonus totals keyed by level
func (r *TransactionRepository) SumReferralBonusesByLevel(ctx context.Context, userID uint64) (map[int]int64, error) {
	var rows []struct {
		ReferralLevel int
		Total         int64
	}
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("referral_level, COALESCE(SUM(amount_in_cents), 0) AS total").
		Where("user_id = ? AND type = ? AND status = ?", userID, string(entity.TypeReferralBonus), string(entity.StatusCompleted)).
		Group("referral_level").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("summing referral bonuses", err, "")
	}

	totals := make(map[int]int64, len(rows))
	for _, row := range rows {
		totals[row.ReferralLevel] = row.Total
	}
	return totals, nil
}

// Summary aggregates pending and completed totals for the admin dashboard
func (r *TransactionRepository) Summary(ctx context.Context) (*entity.TransactionSummary, error) {
	var summary entity.TransactionSummary
	deposit, withdrawal, bonus := string(entity.TypeDeposit), string(entity.TypeWithdrawal), string(entity.TypeReferralBonus)
	pending, completed := string(entity.StatusPending), string(entity.StatusCompleted)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE type = ? AND status = ?) AS pending_deposits,
			COALESCE(SUM(amount_in_cents) FILTER (WHERE type = ? AND status = ?), 0) AS pending_deposit_amount,
			COUNT(*) FILTER (WHERE type = ? AND status = ?) AS pending_withdrawals,
			COALESCE(SUM(amount_in_cents) FILTER (WHERE type = ? AND status = ?), 0) AS pending_withdrawal_amount,
			COALESCE(SUM(amount_in_cents) FILTER (WHERE type = ? AND status = ?), 0) AS completed_deposit_amount,
			COALESCE(SUM(amount_in_cents) FILTER (WHERE type = ? AND status = ?), 0) AS completed_withdrawal_amount,
			COALESCE(SUM(amount_in_cents) FILTER (WHERE type = ? AND status = ?), 0) AS referral_bonuses_paid
		FROM transactions`,
		deposit, pending,
		deposit, pending,
		withdrawal, pending,
		withdrawal, pending,
		deposit, completed,
		withdrawal, completed,
		bonus, completed,
	).Scan(&summary).Error
	if err != nil {
		return nil, r.handleDatabaseError("summarizing transactions", err, "")
	}
	return &summary, nil
}

// FailStalePending marks pending transactions of txType created before cutoff as failed
func (r *TransactionRepository) FailStalePending(ctx context.Context, txType entity.TransactionType, cutoff time.Time, reason string) (int64, error) {
	if txType == entity.TypeWithdrawal {
		return 0, fmt.Errorf("%w: pending withdrawals hold funds and must be rejected", errs.ErrInvalidTransactionType)
	}

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type = ? AND status = ? AND created_at < ?", string(txType), string(entity.StatusPending), cutoff).
		Updates(map[string]any{
			"status":         string(entity.StatusFailed),
			"failure_reason": reason,
			"processed_at":   r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.handleDatabaseError("failing stale transactions", result.Error, "")
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Stale pending transactions failed", map[string]any{
			"type":   txType,
			"count":  result.RowsAffected,
			"cutoff": cutoff,
		})
	}
	return result.RowsAffected, nil
}

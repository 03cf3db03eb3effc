package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/model"
)

// getOperationType returns "credit" for positive or zero changes and "debit" for negative changes
func getOperationType(balanceChange int64) string {
	if balanceChange >= 0 {
		return "credit"
	}
	return "debit"
}

var userErrors = dbErrorMapping{notFound: errs.ErrUserNotFound, duplicate: errs.ErrDuplicateUser}

// referralCodeIndex is the unique index GORM derives from model.User.ReferralCode
const referralCodeIndex = "idx_users_referral_code"

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	user := &entity.User{
		ID:               m.ID,
		Email:            m.Email,
		Phone:            m.Phone,
		PasswordHash:     m.PasswordHash,
		Status:           entity.UserStatus(m.Status),
		Role:             entity.Role(m.Role),
		ReferrerID:       m.ReferrerID,
		HasDeposited:     m.HasDeposited,
		FirstDepositAt:   m.FirstDepositAt,
		TotalDeposited:   m.TotalDeposited,
		TransactionCount: m.TransactionCount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.ReferralCode != nil {
		user.ReferralCode = *m.ReferralCode
	}
	user.RestoreBalance(m.Balance)
	return user
}

func (r *UserRepository) entityToModel(user *entity.User) *model.User {
	return &model.User{
		ID:               user.ID,
		Email:            user.Email,
		Phone:            user.Phone,
		PasswordHash:     user.PasswordHash,
		Balance:          user.Balance(),
		Status:           string(user.Status),
		Role:             string(user.Role),
		ReferralCode:     nullableCode(user.ReferralCode),
		ReferrerID:       user.ReferrerID,
		HasDeposited:     user.HasDeposited,
		FirstDepositAt:   user.FirstDepositAt,
		TotalDeposited:   user.TotalDeposited,
		TransactionCount: user.TransactionCount,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// nullableCode stores a missing referral code as NULL so the unique index ignores it
func nullableCode(code string) *string {
	if code == "" {
		return nil
	}
	return &code
}

func (r *UserRepository) modelsToEntities(rows []model.User) []*entity.User {
	users := make([]*entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, r.modelToEntity(&rows[i]))
	}
	return users
}

func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	return r.errorClassifier.translate(r.logger, operation, err, userErrors, fields)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var row model.User
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, map[string]any{"user_id": id})
	}
	return r.modelToEntity(&row), nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, r.handleDatabaseError("getting user by email", err, nil)
	}
	return r.modelToEntity(&row), nil
}

// GetByReferralCode retrieves the owner of a normalized referral code
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var row model.User
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&row).Error
	if err != nil {
		return nil, r.errorClassifier.translate(r.logger, "getting user by referral code", err,
			dbErrorMapping{notFound: errs.ErrReferralCodeNotFound}, map[string]any{"referral_code": code})
	}
	return r.modelToEntity(&row), nil
}

// ReferralCodeExists checks whether a code is already taken
func (r *UserRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("referral_code = ?", code).Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking referral code", err, map[string]any{"referral_code": code})
	}
	return count > 0, nil
}

// Create inserts a new user and sets its ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	row := r.entityToModel(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if r.errorClassifier.ViolatesUniqueIndex(err, referralCodeIndex) {
			return errs.ErrReferralCodeTaken
		}
		return r.handleDatabaseError("creating user", err, map[string]any{"email": entity.MaskEmail(user.Email)})
	}
	user.ID = row.ID

	r.logger.Info("User created successfully", map[string]any{
		"user_id":  user.ID,
		"referred": user.ReferrerID != nil,
	})
	return nil
}

// Update persists profile, status, role and referral code changes
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":         user.Email,
			"phone":         user.Phone,
			"password_hash": user.PasswordHash,
			"status":        string(user.Status),
			"role":          string(user.Role),
			"referral_code": nullableCode(user.ReferralCode),
			"updated_at":    user.UpdatedAt,
		})
	if result.Error != nil {
		if r.errorClassifier.ViolatesUniqueIndex(result.Error, referralCodeIndex) {
			return errs.ErrReferralCodeTaken
		}
		return r.handleDatabaseError("updating user", result.Error, map[string]any{"user_id": user.ID})
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// lockUser reads the user row with FOR UPDATE inside tx
func (r *UserRepository) lockUser(tx *gorm.DB, userID uint64) (*entity.User, error) {
	var row model.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, userID).Error; err != nil {
		return nil, err
	}
	return r.modelToEntity(&row), nil
}

// saveBalance writes the balance columns back after a locked change
func (r *UserRepository) saveBalance(tx *gorm.DB, user *entity.User) error {
	return tx.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"balance":           user.Balance(),
			"total_deposited":   user.TotalDeposited,
			"has_deposited":     user.HasDeposited,
			"first_deposit_at":  user.FirstDepositAt,
			"transaction_count": user.TransactionCount,
			"updated_at":        user.UpdatedAt,
		}).Error
}

// ProcessBalanceChange locks the user row and applies a signed change in cents
func (r *UserRepository) ProcessBalanceChange(ctx context.Context, userID uint64, balanceChange int64) (*entity.User, error) {
	r.logger.Debug("Processing balance change", map[string]any{
		"user_id":        userID,
		"operation_type": getOperationType(balanceChange),
		"change_amount":  entity.AmountInCentsToString(balanceChange),
	})

	var user *entity.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := r.lockUser(tx, userID)
		if err != nil {
			return err
		}

		if balanceChange >= 0 {
			err = locked.Credit(balanceChange, r.timeProvider)
		} else {
			err = locked.Debit(-balanceChange, r.timeProvider)
		}
		if err != nil {
			return err
		}

		if err := r.saveBalance(tx, locked); err != nil {
			return err
		}
		user = locked
		return nil
	})
	if err != nil {
		return nil, r.handleDatabaseError("processing balance change", err, map[string]any{
			"user_id":        userID,
			"balance_change": balanceChange,
		})
	}

	r.logger.Info("Balance change applied", map[string]any{
		"user_id":        userID,
		"operation_type": getOperationType(balanceChange),
		"change_amount":  entity.AmountInCentsToString(balanceChange),
		"new_balance":    user.GetBalance(),
	})
	return user, nil
}

// ApplyDeposit locks the user row, credits a deposit and updates the deposit history
func (r *UserRepository) ApplyDeposit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, bool, error) {
	var user *entity.User
	var first bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := r.lockUser(tx, userID)
		if err != nil {
			return err
		}
		if first, err = locked.RecordDeposit(amountInCents, r.timeProvider); err != nil {
			return err
		}
		if err := r.saveBalance(tx, locked); err != nil {
			return err
		}
		user = locked
		return nil
	})
	if err != nil {
		return nil, false, r.handleDatabaseError("applying deposit", err, map[string]any{
			"user_id": userID,
			"amount":  entity.AmountInCentsToString(amountInCents),
		})
	}

	r.logger.Info("Deposit credited", map[string]any{
		"user_id":       userID,
		"amount":        entity.AmountInCentsToString(amountInCents),
		"new_balance":   user.GetBalance(),
		"first_deposit": first,
	})
	return user, first, nil
}

// ListByReferrers returns every user whose referrer is one of the given IDs
func (r *UserRepository) ListByReferrers(ctx context.Context, referrerIDs []uint64) ([]*entity.User, error) {
	if len(referrerIDs) == 0 {
		return []*entity.User{}, nil
	}
	var rows []model.User
	err := r.db.WithContext(ctx).
		Where("referrer_id IN ?", referrerIDs).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing referrals", err, map[string]any{"referrers": len(referrerIDs)})
	}
	return r.modelsToEntities(rows), nil
}

// CountByReferrer returns the number of direct referrals of a user
func (r *UserRepository) CountByReferrer(ctx context.Context, referrerID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("referrer_id = ?", referrerID).Count(&count).Error
	if err != nil {
		return 0, r.handleDatabaseError("counting referrals", err, map[string]any{"user_id": referrerID})
	}
	return count, nil
}

// List returns one page of users matching the filter and the total match count
func (r *UserRepository) List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, int64, error) {
	page, pageSize := entity.NormalizePage(filter.Page, filter.PageSize)

	query := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		query = query.Where("email ILIKE ? OR phone ILIKE ? OR referral_code ILIKE ?", like, like, like)
	}

	// reusable session: Count and Find each get their own statement
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting users", err, nil)
	}

	var rows []model.User
	err := query.Order("id DESC").
		Offset(entity.Offset(page, pageSize)).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing users", err, nil)
	}
	return r.modelsToEntities(rows), total, nil
}

// ListMissingReferralCode returns up to limit users without a referral code
func (r *UserRepository) ListMissingReferralCode(ctx context.Context, limit int) ([]*entity.User, error) {
	var rows []model.User
	err := r.db.WithContext(ctx).
		Where("referral_code IS NULL OR referral_code = ''").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing users without referral code", err, nil)
	}
	return r.modelsToEntities(rows), nil
}

// Summary aggregates user counts and balances for the admin dashboard
func (r *UserRepository) Summary(ctx context.Context) (*entity.UserSummary, error) {
	var summary entity.UserSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_users,
			COUNT(*) FILTER (WHERE status = ?) AS active_users,
			COUNT(*) FILTER (WHERE status = ?) AS disabled_users,
			COUNT(*) FILTER (WHERE has_deposited) AS deposited_users,
			COALESCE(SUM(balance), 0) AS total_balance
		FROM users`,
		string(entity.UserActive), string(entity.UserDisabled),
	).Scan(&summary).Error
	if err != nil {
		return nil, r.handleDatabaseError("summarizing users", err, nil)
	}
	return &summary, nil
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

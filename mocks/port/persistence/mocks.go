package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/persistence"
)

// T is what mock constructors need from *testing.T
type T interface {
	mock.TestingT
	Cleanup(func())
}

// get returns the i-th configured return value, tolerating untyped nil
func get[R any](args mock.Arguments, i int) R {
	var zero R
	if v := args.Get(i); v != nil {
		return v.(R)
	}
	return zero
}

// MockUserRepository is a testify mock of persistence.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// MockUserRepository_Expecter records expectations on MockUserRepository
type MockUserRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockUserRepository creates a MockUserRepository that asserts its expectations on cleanup
func NewMockUserRepository(t T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockUserRepository) EXPECT() *MockUserRepository_Expecter {
	return &MockUserRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	ret := _m.Called(ctx, id)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) GetByID(ctx, id any) *mock.Call {
	return _e.mock.On("GetByID", ctx, id)
}

func (_m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ret := _m.Called(ctx, email)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) GetByEmail(ctx, email any) *mock.Call {
	return _e.mock.On("GetByEmail", ctx, email)
}

func (_m *MockUserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	ret := _m.Called(ctx, code)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) GetByReferralCode(ctx, code any) *mock.Call {
	return _e.mock.On("GetByReferralCode", ctx, code)
}

func (_m *MockUserRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	ret := _m.Called(ctx, code)
	return get[bool](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) ReferralCodeExists(ctx, code any) *mock.Call {
	return _e.mock.On("ReferralCodeExists", ctx, code)
}

func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_e *MockUserRepository_Expecter) Create(ctx, user any) *mock.Call {
	return _e.mock.On("Create", ctx, user)
}

func (_m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_e *MockUserRepository_Expecter) Update(ctx, user any) *mock.Call {
	return _e.mock.On("Update", ctx, user)
}

func (_m *MockUserRepository) ProcessBalanceChange(ctx context.Context, userID uint64, balanceChange int64) (*entity.User, error) {
	ret := _m.Called(ctx, userID, balanceChange)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) ProcessBalanceChange(ctx, userID, balanceChange any) *mock.Call {
	return _e.mock.On("ProcessBalanceChange", ctx, userID, balanceChange)
}

func (_m *MockUserRepository) ApplyDeposit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, bool, error) {
	ret := _m.Called(ctx, userID, amountInCents)
	return get[*entity.User](ret, 0), get[bool](ret, 1), ret.Error(2)
}

func (_e *MockUserRepository_Expecter) ApplyDeposit(ctx, userID, amountInCents any) *mock.Call {
	return _e.mock.On("ApplyDeposit", ctx, userID, amountInCents)
}

func (_m *MockUserRepository) ListByReferrers(ctx context.Context, referrerIDs []uint64) ([]*entity.User, error) {
	ret := _m.Called(ctx, referrerIDs)
	return get[[]*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) ListByReferrers(ctx, referrerIDs any) *mock.Call {
	return _e.mock.On("ListByReferrers", ctx, referrerIDs)
}

func (_m *MockUserRepository) CountByReferrer(ctx context.Context, referrerID uint64) (int64, error) {
	ret := _m.Called(ctx, referrerID)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) CountByReferrer(ctx, referrerID any) *mock.Call {
	return _e.mock.On("CountByReferrer", ctx, referrerID)
}

func (_m *MockUserRepository) List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, int64, error) {
	ret := _m.Called(ctx, filter)
	return get[[]*entity.User](ret, 0), get[int64](ret, 1), ret.Error(2)
}

func (_e *MockUserRepository_Expecter) List(ctx, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

func (_m *MockUserRepository) ListMissingReferralCode(ctx context.Context, limit int) ([]*entity.User, error) {
	ret := _m.Called(ctx, limit)
	return get[[]*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) ListMissingReferralCode(ctx, limit any) *mock.Call {
	return _e.mock.On("ListMissingReferralCode", ctx, limit)
}

func (_m *MockUserRepository) Summary(ctx context.Context) (*entity.UserSummary, error) {
	ret := _m.Called(ctx)
	return get[*entity.UserSummary](ret, 0), ret.Error(1)
}

func (_e *MockUserRepository_Expecter) Summary(ctx any) *mock.Call {
	return _e.mock.On("Summary", ctx)
}

// MockTransactionRepository is a testify mock of persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

// MockTransactionRepository_Expecter records expectations on MockTransactionRepository
type MockTransactionRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockTransactionRepository creates a MockTransactionRepository that asserts its expectations on cleanup
func NewMockTransactionRepository(t T) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockTransactionRepository) EXPECT() *MockTransactionRepository_Expecter {
	return &MockTransactionRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	ret := _m.Called(ctx, transaction)
	return ret.Error(0)
}

func (_e *MockTransactionRepository_Expecter) Create(ctx, transaction any) *mock.Call {
	return _e.mock.On("Create", ctx, transaction)
}

func (_m *MockTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	ret := _m.Called(ctx, transaction)
	return ret.Error(0)
}

func (_e *MockTransactionRepository_Expecter) Update(ctx, transaction any) *mock.Call {
	return _e.mock.On("Update", ctx, transaction)
}

func (_m *MockTransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, transactionID)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionRepository_Expecter) GetByTransactionID(ctx, transactionID any) *mock.Call {
	return _e.mock.On("GetByTransactionID", ctx, transactionID)
}

func (_m *MockTransactionRepository) GetForUpdate(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, transactionID)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionRepository_Expecter) GetForUpdate(ctx, transactionID any) *mock.Call {
	return _e.mock.On("GetForUpdate", ctx, transactionID)
}

func (_m *MockTransactionRepository) TransactionExists(ctx context.Context, transactionID string) (bool, error) {
	ret := _m.Called(ctx, transactionID)
	return get[bool](ret, 0), ret.Error(1)
}

func (_e *MockTransactionRepository_Expecter) TransactionExists(ctx, transactionID any) *mock.Call {
	return _e.mock.On("TransactionExists", ctx, transactionID)
}

func (_m *MockTransactionRepository) List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, int64, error) {
	ret := _m.Called(ctx, filter)
	return get[[]*entity.Transaction](ret, 0), get[int64](ret, 1), ret.Error(2)
}

func (_e *MockTransactionRepository_Expecter) List(ctx, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

func (_m *MockTransactionRepository) SumReferralBonusesByLevel(ctx context.Context, userID uint64) (map[int]int64, error) {
	ret := _m.Called(ctx, userID)
	return get[map[int]int64](ret, 0), ret.Error(1)
}

func (_e *MockTransactionRepository_Expecter) SumReferralBonusesByLevel(ctx, userID any) *mock.Call {
	return _e.mock.On("SumReferralBonusesByLevel", ctx, userID)
}

func (_m *MockTransactionRepository) Summary(ctx context.Context) (*entity.TransactionSummary, error) {
	ret := _m.Called(ctx)
	return get[*entity.TransactionSummary](ret, 0), ret.Error(1)
}

func (_e *MockTransactionRepository_Expecter) Summary(ctx any) *mock.Call {
	return _e.mock.On("Summary", ctx)
}

func (_m *MockTransactionRepository) FailStalePending(ctx context.Context, txType entity.TransactionType, cutoff time.Time, reason string) (int64, error) {
	ret := _m.Called(ctx, txType, cutoff, reason)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockTransactionRepository_Expecter) FailStalePending(ctx, txType, cutoff, reason any) *mock.Call {
	return _e.mock.On("FailStalePending", ctx, txType, cutoff, reason)
}

// MockUserLockRepository is a testify mock of persistence.UserLockRepository
type MockUserLockRepository struct {
	mock.Mock
}

// MockUserLockRepository_Expecter records expectations on MockUserLockRepository
type MockUserLockRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockUserLockRepository creates a MockUserLockRepository that asserts its expectations on cleanup
func NewMockUserLockRepository(t T) *MockUserLockRepository {
	m := &MockUserLockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockUserLockRepository) EXPECT() *MockUserLockRepository_Expecter {
	return &MockUserLockRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockUserLockRepository) AcquireLock(ctx context.Context, userID uint64, duration time.Duration) error {
	ret := _m.Called(ctx, userID, duration)
	return ret.Error(0)
}

func (_e *MockUserLockRepository_Expecter) AcquireLock(ctx, userID, duration any) *mock.Call {
	return _e.mock.On("AcquireLock", ctx, userID, duration)
}

func (_m *MockUserLockRepository) ReleaseLock(ctx context.Context, userID uint64) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func (_e *MockUserLockRepository_Expecter) ReleaseLock(ctx, userID any) *mock.Call {
	return _e.mock.On("ReleaseLock", ctx, userID)
}

func (_m *MockUserLockRepository) CleanupExpiredLocks(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockUserLockRepository_Expecter) CleanupExpiredLocks(ctx any) *mock.Call {
	return _e.mock.On("CleanupExpiredLocks", ctx)
}

// MockSettingsRepository is a testify mock of persistence.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

// MockSettingsRepository_Expecter records expectations on MockSettingsRepository
type MockSettingsRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockSettingsRepository creates a MockSettingsRepository that asserts its expectations on cleanup
func NewMockSettingsRepository(t T) *MockSettingsRepository {
	m := &MockSettingsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockSettingsRepository) EXPECT() *MockSettingsRepository_Expecter {
	return &MockSettingsRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockSettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	ret := _m.Called(ctx)
	return get[*entity.Settings](ret, 0), ret.Error(1)
}

func (_e *MockSettingsRepository_Expecter) Get(ctx any) *mock.Call {
	return _e.mock.On("Get", ctx)
}

func (_m *MockSettingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	ret := _m.Called(ctx, settings)
	return ret.Error(0)
}

func (_e *MockSettingsRepository_Expecter) Save(ctx, settings any) *mock.Call {
	return _e.mock.On("Save", ctx, settings)
}

// MockAnnouncementRepository is a testify mock of persistence.AnnouncementRepository
type MockAnnouncementRepository struct {
	mock.Mock
}

// MockAnnouncementRepository_Expecter records expectations on MockAnnouncementRepository
type MockAnnouncementRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockAnnouncementRepository creates a MockAnnouncementRepository that asserts its expectations on cleanup
func NewMockAnnouncementRepository(t T) *MockAnnouncementRepository {
	m := &MockAnnouncementRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockAnnouncementRepository) EXPECT() *MockAnnouncementRepository_Expecter {
	return &MockAnnouncementRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockAnnouncementRepository) Create(ctx context.Context, announcement *entity.Announcement) error {
	ret := _m.Called(ctx, announcement)
	return ret.Error(0)
}

func (_e *MockAnnouncementRepository_Expecter) Create(ctx, announcement any) *mock.Call {
	return _e.mock.On("Create", ctx, announcement)
}

func (_m *MockAnnouncementRepository) Update(ctx context.Context, announcement *entity.Announcement) error {
	ret := _m.Called(ctx, announcement)
	return ret.Error(0)
}

func (_e *MockAnnouncementRepository_Expecter) Update(ctx, announcement any) *mock.Call {
	return _e.mock.On("Update", ctx, announcement)
}

func (_m *MockAnnouncementRepository) Delete(ctx context.Context, id uint64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_e *MockAnnouncementRepository_Expecter) Delete(ctx, id any) *mock.Call {
	return _e.mock.On("Delete", ctx, id)
}

func (_m *MockAnnouncementRepository) GetByID(ctx context.Context, id uint64) (*entity.Announcement, error) {
	ret := _m.Called(ctx, id)
	return get[*entity.Announcement](ret, 0), ret.Error(1)
}

func (_e *MockAnnouncementRepository_Expecter) GetByID(ctx, id any) *mock.Call {
	return _e.mock.On("GetByID", ctx, id)
}

func (_m *MockAnnouncementRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Announcement, error) {
	ret := _m.Called(ctx, activeOnly)
	return get[[]*entity.Announcement](ret, 0), ret.Error(1)
}

func (_e *MockAnnouncementRepository_Expecter) List(ctx, activeOnly any) *mock.Call {
	return _e.mock.On("List", ctx, activeOnly)
}

// MockNotificationRepository is a testify mock of persistence.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

// MockNotificationRepository_Expecter records expectations on MockNotificationRepository
type MockNotificationRepository_Expecter struct {
	mock *mock.Mock
}

// NewMockNotificationRepository creates a MockNotificationRepository that asserts its expectations on cleanup
func NewMockNotificationRepository(t T) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockNotificationRepository) EXPECT() *MockNotificationRepository_Expecter {
	return &MockNotificationRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	ret := _m.Called(ctx, notification)
	return ret.Error(0)
}

func (_e *MockNotificationRepository_Expecter) Create(ctx, notification any) *mock.Call {
	return _e.mock.On("Create", ctx, notification)
}

func (_m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint64, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	ret := _m.Called(ctx, userID, unreadOnly, limit)
	return get[[]*entity.Notification](ret, 0), ret.Error(1)
}

func (_e *MockNotificationRepository_Expecter) ListByUser(ctx, userID, unreadOnly, limit any) *mock.Call {
	return _e.mock.On("ListByUser", ctx, userID, unreadOnly, limit)
}

func (_m *MockNotificationRepository) MarkRead(ctx context.Context, userID uint64, notificationID uint64) error {
	ret := _m.Called(ctx, userID, notificationID)
	return ret.Error(0)
}

func (_e *MockNotificationRepository_Expecter) MarkRead(ctx, userID, notificationID any) *mock.Call {
	return _e.mock.On("MarkRead", ctx, userID, notificationID)
}

func (_m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	ret := _m.Called(ctx, userID)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockNotificationRepository_Expecter) MarkAllRead(ctx, userID any) *mock.Call {
	return _e.mock.On("MarkAllRead", ctx, userID)
}

func (_m *MockNotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	ret := _m.Called(ctx, userID)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockNotificationRepository_Expecter) CountUnread(ctx, userID any) *mock.Call {
	return _e.mock.On("CountUnread", ctx, userID)
}

func (_m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := _m.Called(ctx, cutoff)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockNotificationRepository_Expecter) DeleteReadBefore(ctx, cutoff any) *mock.Call {
	return _e.mock.On("DeleteReadBefore", ctx, cutoff)
}

// MockUnitOfWork is a testify mock of persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

// MockUnitOfWork_Expecter records expectations on MockUnitOfWork
type MockUnitOfWork_Expecter struct {
	mock *mock.Mock
}

// NewMockUnitOfWork creates a MockUnitOfWork that asserts its expectations on cleanup
func NewMockUnitOfWork(t T) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockUnitOfWork) EXPECT() *MockUnitOfWork_Expecter {
	return &MockUnitOfWork_Expecter{mock: &_m.Mock}
}

func (_m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	ret := _m.Called(ctx)
	return get[context.Context](ret, 0), ret.Error(1)
}

func (_e *MockUnitOfWork_Expecter) Begin(ctx any) *mock.Call {
	return _e.mock.On("Begin", ctx)
}

func (_m *MockUnitOfWork) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_e *MockUnitOfWork_Expecter) Commit(ctx any) *mock.Call {
	return _e.mock.On("Commit", ctx)
}

func (_m *MockUnitOfWork) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_e *MockUnitOfWork_Expecter) Rollback(ctx any) *mock.Call {
	return _e.mock.On("Rollback", ctx)
}

func (_m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	ret := _m.Called(ctx)
	return get[persistence.UserRepository](ret, 0)
}

func (_e *MockUnitOfWork_Expecter) GetUserRepository(ctx any) *mock.Call {
	return _e.mock.On("GetUserRepository", ctx)
}

func (_m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	ret := _m.Called(ctx)
	return get[persistence.TransactionRepository](ret, 0)
}

func (_e *MockUnitOfWork_Expecter) GetTransactionRepository(ctx any) *mock.Call {
	return _e.mock.On("GetTransactionRepository", ctx)
}

func (_m *MockUnitOfWork) GetNotificationRepository(ctx context.Context) persistence.NotificationRepository {
	ret := _m.Called(ctx)
	return get[persistence.NotificationRepository](ret, 0)
}

func (_e *MockUnitOfWork_Expecter) GetNotificationRepository(ctx any) *mock.Call {
	return _e.mock.On("GetNotificationRepository", ctx)
}

// Execute runs fn with the caller's context unless the expectation returns an error
func (_m *MockUnitOfWork) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	ret := _m.Called(ctx, fn)
	if err := ret.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func (_e *MockUnitOfWork_Expecter) Execute(ctx, fn any) *mock.Call {
	return _e.mock.On("Execute", ctx, fn)
}

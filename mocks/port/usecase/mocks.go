package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
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

// MockUserUseCase is a testify mock of usecase.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

// MockUserUseCase_Expecter records expectations on MockUserUseCase
type MockUserUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockUserUseCase creates a MockUserUseCase that asserts its expectations on cleanup
func NewMockUserUseCase(t T) *MockUserUseCase {
	m := &MockUserUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockUserUseCase) EXPECT() *MockUserUseCase_Expecter {
	return &MockUserUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockUserUseCase) Register(ctx context.Context, req usecase.RegisterRequest) (*entity.User, error) {
	ret := _m.Called(ctx, req)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) Register(ctx, req any) *mock.Call {
	return _e.mock.On("Register", ctx, req)
}

func (_m *MockUserUseCase) Login(ctx context.Context, email string, password string) (*usecase.AuthResult, error) {
	ret := _m.Called(ctx, email, password)
	return get[*usecase.AuthResult](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) Login(ctx, email, password any) *mock.Call {
	return _e.mock.On("Login", ctx, email, password)
}

func (_m *MockUserUseCase) GetProfile(ctx context.Context, userID uint64) (*entity.User, error) {
	ret := _m.Called(ctx, userID)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) GetProfile(ctx, userID any) *mock.Call {
	return _e.mock.On("GetProfile", ctx, userID)
}

func (_m *MockUserUseCase) GetFormattedUserBalance(ctx context.Context, userID uint64) (*usecase.UserBalanceResponse, error) {
	ret := _m.Called(ctx, userID)
	return get[*usecase.UserBalanceResponse](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) GetFormattedUserBalance(ctx, userID any) *mock.Call {
	return _e.mock.On("GetFormattedUserBalance", ctx, userID)
}

func (_m *MockUserUseCase) UserExists(ctx context.Context, userID uint64) (bool, error) {
	ret := _m.Called(ctx, userID)
	return get[bool](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) UserExists(ctx, userID any) *mock.Call {
	return _e.mock.On("UserExists", ctx, userID)
}

func (_m *MockUserUseCase) IsAdmin(ctx context.Context, userID uint64) (bool, error) {
	ret := _m.Called(ctx, userID)
	return get[bool](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) IsAdmin(ctx, userID any) *mock.Call {
	return _e.mock.On("IsAdmin", ctx, userID)
}

func (_m *MockUserUseCase) ListUsers(ctx context.Context, filter entity.UserFilter) (*entity.Page[*entity.User], error) {
	ret := _m.Called(ctx, filter)
	return get[*entity.Page[*entity.User]](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) ListUsers(ctx, filter any) *mock.Call {
	return _e.mock.On("ListUsers", ctx, filter)
}

func (_m *MockUserUseCase) SetStatus(ctx context.Context, userID uint64, status entity.UserStatus) (*entity.User, error) {
	ret := _m.Called(ctx, userID, status)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) SetStatus(ctx, userID, status any) *mock.Call {
	return _e.mock.On("SetStatus", ctx, userID, status)
}

func (_m *MockUserUseCase) SetRole(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	ret := _m.Called(ctx, email, role)
	return get[*entity.User](ret, 0), ret.Error(1)
}

func (_e *MockUserUseCase_Expecter) SetRole(ctx, email, role any) *mock.Call {
	return _e.mock.On("SetRole", ctx, email, role)
}

func (_m *MockUserUseCase) CreateDefaultAdmin(ctx context.Context, email string, password string) error {
	ret := _m.Called(ctx, email, password)
	return ret.Error(0)
}

func (_e *MockUserUseCase_Expecter) CreateDefaultAdmin(ctx, email, password any) *mock.Call {
	return _e.mock.On("CreateDefaultAdmin", ctx, email, password)
}

// MockTransactionUseCase is a testify mock of usecase.TransactionUseCase
type MockTransactionUseCase struct {
	mock.Mock
}

// MockTransactionUseCase_Expecter records expectations on MockTransactionUseCase
type MockTransactionUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockTransactionUseCase creates a MockTransactionUseCase that asserts its expectations on cleanup
func NewMockTransactionUseCase(t T) *MockTransactionUseCase {
	m := &MockTransactionUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockTransactionUseCase) EXPECT() *MockTransactionUseCase_Expecter {
	return &MockTransactionUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockTransactionUseCase) RequestDeposit(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error) {
	ret := _m.Called(ctx, req)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) RequestDeposit(ctx, req any) *mock.Call {
	return _e.mock.On("RequestDeposit", ctx, req)
}

func (_m *MockTransactionUseCase) RequestWithdrawal(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error) {
	ret := _m.Called(ctx, req)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) RequestWithdrawal(ctx, req any) *mock.Call {
	return _e.mock.On("RequestWithdrawal", ctx, req)
}

func (_m *MockTransactionUseCase) Invest(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error) {
	ret := _m.Called(ctx, req)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) Invest(ctx, req any) *mock.Call {
	return _e.mock.On("Invest", ctx, req)
}

func (_m *MockTransactionUseCase) ApproveTransaction(ctx context.Context, transactionID string, adminID uint64) (*entity.Transaction, error) {
	ret := _m.Called(ctx, transactionID, adminID)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) ApproveTransaction(ctx, transactionID, adminID any) *mock.Call {
	return _e.mock.On("ApproveTransaction", ctx, transactionID, adminID)
}

func (_m *MockTransactionUseCase) RejectTransaction(ctx context.Context, transactionID string, adminID uint64, reason string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, transactionID, adminID, reason)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) RejectTransaction(ctx, transactionID, adminID, reason any) *mock.Call {
	return _e.mock.On("RejectTransaction", ctx, transactionID, adminID, reason)
}

func (_m *MockTransactionUseCase) AdjustBalance(ctx context.Context, req usecase.AdjustmentRequest) (*entity.Transaction, error) {
	ret := _m.Called(ctx, req)
	return get[*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) AdjustBalance(ctx, req any) *mock.Call {
	return _e.mock.On("AdjustBalance", ctx, req)
}

func (_m *MockTransactionUseCase) ListUserTransactions(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.Page[*entity.Transaction], error) {
	ret := _m.Called(ctx, userID, filter)
	return get[*entity.Page[*entity.Transaction]](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) ListUserTransactions(ctx, userID, filter any) *mock.Call {
	return _e.mock.On("ListUserTransactions", ctx, userID, filter)
}

func (_m *MockTransactionUseCase) ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*entity.Page[*entity.Transaction], error) {
	ret := _m.Called(ctx, filter)
	return get[*entity.Page[*entity.Transaction]](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) ListTransactions(ctx, filter any) *mock.Call {
	return _e.mock.On("ListTransactions", ctx, filter)
}

func (_m *MockTransactionUseCase) ExpireStaleDeposits(ctx context.Context, olderThan time.Duration) (int64, error) {
	ret := _m.Called(ctx, olderThan)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockTransactionUseCase_Expecter) ExpireStaleDeposits(ctx, olderThan any) *mock.Call {
	return _e.mock.On("ExpireStaleDeposits", ctx, olderThan)
}

// MockReferralUseCase is a testify mock of usecase.ReferralUseCase
type MockReferralUseCase struct {
	mock.Mock
}

// MockReferralUseCase_Expecter records expectations on MockReferralUseCase
type MockReferralUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockReferralUseCase creates a MockReferralUseCase that asserts its expectations on cleanup
func NewMockReferralUseCase(t T) *MockReferralUseCase {
	m := &MockReferralUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockReferralUseCase) EXPECT() *MockReferralUseCase_Expecter {
	return &MockReferralUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockReferralUseCase) GenerateCode(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return get[string](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) GenerateCode(ctx any) *mock.Call {
	return _e.mock.On("GenerateCode", ctx)
}

func (_m *MockReferralUseCase) ResolveCode(ctx context.Context, code string) (*entity.ReferralOwner, error) {
	ret := _m.Called(ctx, code)
	return get[*entity.ReferralOwner](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) ResolveCode(ctx, code any) *mock.Call {
	return _e.mock.On("ResolveCode", ctx, code)
}

func (_m *MockReferralUseCase) DirectReferrals(ctx context.Context, userID uint64) ([]entity.ReferralMember, error) {
	ret := _m.Called(ctx, userID)
	return get[[]entity.ReferralMember](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) DirectReferrals(ctx, userID any) *mock.Call {
	return _e.mock.On("DirectReferrals", ctx, userID)
}

func (_m *MockReferralUseCase) Team(ctx context.Context, userID uint64) (*entity.ReferralTeam, error) {
	ret := _m.Called(ctx, userID)
	return get[*entity.ReferralTeam](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) Team(ctx, userID any) *mock.Call {
	return _e.mock.On("Team", ctx, userID)
}

func (_m *MockReferralUseCase) Stats(ctx context.Context, userID uint64) (*entity.ReferralStats, error) {
	ret := _m.Called(ctx, userID)
	return get[*entity.ReferralStats](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) Stats(ctx, userID any) *mock.Call {
	return _e.mock.On("Stats", ctx, userID)
}

func (_m *MockReferralUseCase) Earnings(ctx context.Context, userID uint64) (int64, error) {
	ret := _m.Called(ctx, userID)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) Earnings(ctx, userID any) *mock.Call {
	return _e.mock.On("Earnings", ctx, userID)
}

func (_m *MockReferralUseCase) PayFirstDepositBonuses(ctx context.Context, depositor *entity.User, amountInCents int64) ([]*entity.Transaction, error) {
	ret := _m.Called(ctx, depositor, amountInCents)
	return get[[]*entity.Transaction](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) PayFirstDepositBonuses(ctx, depositor, amountInCents any) *mock.Call {
	return _e.mock.On("PayFirstDepositBonuses", ctx, depositor, amountInCents)
}

func (_m *MockReferralUseCase) Debug(ctx context.Context, userID uint64) (*entity.ReferralDebugReport, error) {
	ret := _m.Called(ctx, userID)
	return get[*entity.ReferralDebugReport](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) Debug(ctx, userID any) *mock.Call {
	return _e.mock.On("Debug", ctx, userID)
}

func (_m *MockReferralUseCase) BackfillCodes(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return get[int](ret, 0), ret.Error(1)
}

func (_e *MockReferralUseCase_Expecter) BackfillCodes(ctx any) *mock.Call {
	return _e.mock.On("BackfillCodes", ctx)
}

// MockSettingsUseCase is a testify mock of usecase.SettingsUseCase
type MockSettingsUseCase struct {
	mock.Mock
}

// MockSettingsUseCase_Expecter records expectations on MockSettingsUseCase
type MockSettingsUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockSettingsUseCase creates a MockSettingsUseCase that asserts its expectations on cleanup
func NewMockSettingsUseCase(t T) *MockSettingsUseCase {
	m := &MockSettingsUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockSettingsUseCase) EXPECT() *MockSettingsUseCase_Expecter {
	return &MockSettingsUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockSettingsUseCase) Get(ctx context.Context) (*entity.Settings, error) {
	ret := _m.Called(ctx)
	return get[*entity.Settings](ret, 0), ret.Error(1)
}

func (_e *MockSettingsUseCase_Expecter) Get(ctx any) *mock.Call {
	return _e.mock.On("Get", ctx)
}

func (_m *MockSettingsUseCase) Update(ctx context.Context, settings *entity.Settings, adminID uint64) (*entity.Settings, error) {
	ret := _m.Called(ctx, settings, adminID)
	return get[*entity.Settings](ret, 0), ret.Error(1)
}

func (_e *MockSettingsUseCase_Expecter) Update(ctx, settings, adminID any) *mock.Call {
	return _e.mock.On("Update", ctx, settings, adminID)
}

// MockAnnouncementUseCase is a testify mock of usecase.AnnouncementUseCase
type MockAnnouncementUseCase struct {
	mock.Mock
}

// MockAnnouncementUseCase_Expecter records expectations on MockAnnouncementUseCase
type MockAnnouncementUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockAnnouncementUseCase creates a MockAnnouncementUseCase that asserts its expectations on cleanup
func NewMockAnnouncementUseCase(t T) *MockAnnouncementUseCase {
	m := &MockAnnouncementUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockAnnouncementUseCase) EXPECT() *MockAnnouncementUseCase_Expecter {
	return &MockAnnouncementUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockAnnouncementUseCase) Create(ctx context.Context, input usecase.AnnouncementInput) (*entity.Announcement, error) {
	ret := _m.Called(ctx, input)
	return get[*entity.Announcement](ret, 0), ret.Error(1)
}

func (_e *MockAnnouncementUseCase_Expecter) Create(ctx, input any) *mock.Call {
	return _e.mock.On("Create", ctx, input)
}

func (_m *MockAnnouncementUseCase) Update(ctx context.Context, id uint64, input usecase.AnnouncementInput) (*entity.Announcement, error) {
	ret := _m.Called(ctx, id, input)
	return get[*entity.Announcement](ret, 0), ret.Error(1)
}

func (_e *MockAnnouncementUseCase_Expecter) Update(ctx, id, input any) *mock.Call {
	return _e.mock.On("Update", ctx, id, input)
}

func (_m *MockAnnouncementUseCase) Delete(ctx context.Context, id uint64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_e *MockAnnouncementUseCase_Expecter) Delete(ctx, id any) *mock.Call {
	return _e.mock.On("Delete", ctx, id)
}

func (_m *MockAnnouncementUseCase) ListAll(ctx context.Context) ([]*entity.Announcement, error) {
	ret := _m.Called(ctx)
	return get[[]*entity.Announcement](ret, 0), ret.Error(1)
}

func (_e *MockAnnouncementUseCase_Expecter) ListAll(ctx any) *mock.Call {
	return _e.mock.On("ListAll", ctx)
}

func (_m *MockAnnouncementUseCase) ListActive(ctx context.Context) ([]*entity.Announcement, error) {
	ret := _m.Called(ctx)
	return get[[]*entity.Announcement](ret, 0), ret.Error(1)
}

func (_e *MockAnnouncementUseCase_Expecter) ListActive(ctx any) *mock.Call {
	return _e.mock.On("ListActive", ctx)
}

// MockNotificationUseCase is a testify mock of usecase.NotificationUseCase
type MockNotificationUseCase struct {
	mock.Mock
}

// MockNotificationUseCase_Expecter records expectations on MockNotificationUseCase
type MockNotificationUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockNotificationUseCase creates a MockNotificationUseCase that asserts its expectations on cleanup
func NewMockNotificationUseCase(t T) *MockNotificationUseCase {
	m := &MockNotificationUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockNotificationUseCase) EXPECT() *MockNotificationUseCase_Expecter {
	return &MockNotificationUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockNotificationUseCase) Notify(ctx context.Context, userID uint64, kind entity.NotificationKind, title string, message string) error {
	ret := _m.Called(ctx, userID, kind, title, message)
	return ret.Error(0)
}

func (_e *MockNotificationUseCase_Expecter) Notify(ctx, userID, kind, title, message any) *mock.Call {
	return _e.mock.On("Notify", ctx, userID, kind, title, message)
}

func (_m *MockNotificationUseCase) List(ctx context.Context, userID uint64, unreadOnly bool) ([]*entity.Notification, error) {
	ret := _m.Called(ctx, userID, unreadOnly)
	return get[[]*entity.Notification](ret, 0), ret.Error(1)
}

func (_e *MockNotificationUseCase_Expecter) List(ctx, userID, unreadOnly any) *mock.Call {
	return _e.mock.On("List", ctx, userID, unreadOnly)
}

func (_m *MockNotificationUseCase) MarkRead(ctx context.Context, userID uint64, notificationID uint64) error {
	ret := _m.Called(ctx, userID, notificationID)
	return ret.Error(0)
}

func (_e *MockNotificationUseCase_Expecter) MarkRead(ctx, userID, notificationID any) *mock.Call {
	return _e.mock.On("MarkRead", ctx, userID, notificationID)
}

func (_m *MockNotificationUseCase) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	ret := _m.Called(ctx, userID)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockNotificationUseCase_Expecter) MarkAllRead(ctx, userID any) *mock.Call {
	return _e.mock.On("MarkAllRead", ctx, userID)
}

func (_m *MockNotificationUseCase) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	ret := _m.Called(ctx, userID)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockNotificationUseCase_Expecter) UnreadCount(ctx, userID any) *mock.Call {
	return _e.mock.On("UnreadCount", ctx, userID)
}

func (_m *MockNotificationUseCase) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	ret := _m.Called(ctx, olderThan)
	return get[int64](ret, 0), ret.Error(1)
}

func (_e *MockNotificationUseCase_Expecter) PurgeRead(ctx, olderThan any) *mock.Call {
	return _e.mock.On("PurgeRead", ctx, olderThan)
}

// MockAdminUseCase is a testify mock of usecase.AdminUseCase
type MockAdminUseCase struct {
	mock.Mock
}

// MockAdminUseCase_Expecter records expectations on MockAdminUseCase
type MockAdminUseCase_Expecter struct {
	mock *mock.Mock
}

// NewMockAdminUseCase creates a MockAdminUseCase that asserts its expectations on cleanup
func NewMockAdminUseCase(t T) *MockAdminUseCase {
	m := &MockAdminUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockAdminUseCase) EXPECT() *MockAdminUseCase_Expecter {
	return &MockAdminUseCase_Expecter{mock: &_m.Mock}
}

func (_m *MockAdminUseCase) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	ret := _m.Called(ctx)
	return get[*entity.Dashboard](ret, 0), ret.Error(1)
}

func (_e *MockAdminUseCase_Expecter) Dashboard(ctx any) *mock.Call {
	return _e.mock.On("Dashboard", ctx)
}

package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// T is what mock constructors need from *testing.T
type T interface {
	mock.TestingT
	Cleanup(func())
}

// MockLogger is a testify mock of core.Logger
type MockLogger struct {
	mock.Mock
}

// MockLogger_Expecter records expectations on MockLogger
type MockLogger_Expecter struct {
	mock *mock.Mock
}

// NewMockLogger creates a MockLogger that asserts its expectations on cleanup
func NewMockLogger(t T) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockLogger) EXPECT() *MockLogger_Expecter {
	return &MockLogger_Expecter{mock: &_m.Mock}
}

func (_m *MockLogger) SetLevel(level coreport.LogLevel) {
	_m.Called(level)
}

func (_m *MockLogger) GetLevel() coreport.LogLevel {
	return _m.Called().Get(0).(coreport.LogLevel)
}

func (_m *MockLogger) Debug(message string, fields map[string]any) {
	_m.Called(message, fields)
}

func (_m *MockLogger) Info(message string, fields map[string]any) {
	_m.Called(message, fields)
}

func (_m *MockLogger) Warn(message string, fields map[string]any) {
	_m.Called(message, fields)
}

func (_m *MockLogger) Error(message string, fields map[string]any) {
	_m.Called(message, fields)
}

func (_m *MockLogger) Named(component string) coreport.Logger {
	ret := _m.Called(component)
	if l, ok := ret.Get(0).(coreport.Logger); ok {
		return l
	}
	return _m
}

func (_m *MockLogger) Flush() error {
	return _m.Called().Error(0)
}

func (_e *MockLogger_Expecter) Debug(message, fields any) *mock.Call {
	return _e.mock.On("Debug", message, fields)
}

func (_e *MockLogger_Expecter) Info(message, fields any) *mock.Call {
	return _e.mock.On("Info", message, fields)
}

func (_e *MockLogger_Expecter) Warn(message, fields any) *mock.Call {
	return _e.mock.On("Warn", message, fields)
}

func (_e *MockLogger_Expecter) Error(message, fields any) *mock.Call {
	return _e.mock.On("Error", message, fields)
}

func (_e *MockLogger_Expecter) Named(component any) *mock.Call {
	return _e.mock.On("Named", component)
}

func (_e *MockLogger_Expecter) Flush() *mock.Call {
	return _e.mock.On("Flush")
}

// MockTimeProvider is a testify mock of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// MockTimeProvider_Expecter records expectations on MockTimeProvider
type MockTimeProvider_Expecter struct {
	mock *mock.Mock
}

// NewMockTimeProvider creates a MockTimeProvider that asserts its expectations on cleanup
func NewMockTimeProvider(t T) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockTimeProvider) EXPECT() *MockTimeProvider_Expecter {
	return &MockTimeProvider_Expecter{mock: &_m.Mock}
}

func (_m *MockTimeProvider) Now() time.Time {
	return _m.Called().Get(0).(time.Time)
}

func (_m *MockTimeProvider) Since(t time.Time) time.Duration {
	return _m.Called(t).Get(0).(time.Duration)
}

func (_m *MockTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ret := _m.Called(ctx, timeout)
	return ret.Get(0).(context.Context), ret.Get(1).(context.CancelFunc)
}

func (_e *MockTimeProvider_Expecter) Now() *mock.Call {
	return _e.mock.On("Now")
}

func (_e *MockTimeProvider_Expecter) Since(t any) *mock.Call {
	return _e.mock.On("Since", t)
}

func (_e *MockTimeProvider_Expecter) WithTimeout(ctx, timeout any) *mock.Call {
	return _e.mock.On("WithTimeout", ctx, timeout)
}

// MockIDGenerator is a testify mock of core.IDGenerator
type MockIDGenerator struct {
	mock.Mock
}

// NewMockIDGenerator creates a MockIDGenerator that asserts its expectations on cleanup
func NewMockIDGenerator(t T) *MockIDGenerator {
	m := &MockIDGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockIDGenerator) NewID() string {
	return _m.Called().String(0)
}

// MockCodeGenerator is a testify mock of core.CodeGenerator
type MockCodeGenerator struct {
	mock.Mock
}

// NewMockCodeGenerator creates a MockCodeGenerator that asserts its expectations on cleanup
func NewMockCodeGenerator(t T) *MockCodeGenerator {
	m := &MockCodeGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockCodeGenerator) Generate(alphabet string, length int) (string, error) {
	ret := _m.Called(alphabet, length)
	return ret.String(0), ret.Error(1)
}

// MockMetrics is a testify mock of core.Metrics
type MockMetrics struct {
	mock.Mock
}

// NewMockMetrics creates a MockMetrics that asserts its expectations on cleanup
func NewMockMetrics(t T) *MockMetrics {
	m := &MockMetrics{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockMetrics) UserRegistered(referred bool) {
	_m.Called(referred)
}

func (_m *MockMetrics) TransactionRequested(txType string) {
	_m.Called(txType)
}

func (_m *MockMetrics) TransactionSettled(txType string, status string, amountInCents int64) {
	_m.Called(txType, status, amountInCents)
}

func (_m *MockMetrics) ReferralBonusPaid(level int, amountInCents int64) {
	_m.Called(level, amountInCents)
}

// SequenceIDGenerator answers "tx-1", "tx-2", ... in call order
type SequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *SequenceIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("tx-%d", g.n)
}

// FixedClock is a TimeProvider frozen at At
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Since(t time.Time) time.Duration {
	return c.At.Sub(t)
}

func (c FixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

package cache

import (
	"context"

	"github.com/stretchr/testify/mock"
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

// MockReferralCodeCache is a testify mock of cache.ReferralCodeCache
type MockReferralCodeCache struct {
	mock.Mock
}

// MockReferralCodeCache_Expecter records expectations on MockReferralCodeCache
type MockReferralCodeCache_Expecter struct {
	mock *mock.Mock
}

// NewMockReferralCodeCache creates a MockReferralCodeCache that asserts its expectations on cleanup
func NewMockReferralCodeCache(t T) *MockReferralCodeCache {
	m := &MockReferralCodeCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockReferralCodeCache) EXPECT() *MockReferralCodeCache_Expecter {
	return &MockReferralCodeCache_Expecter{mock: &_m.Mock}
}

func (_m *MockReferralCodeCache) Get(ctx context.Context, code string) (uint64, bool, error) {
	ret := _m.Called(ctx, code)
	return get[uint64](ret, 0), get[bool](ret, 1), ret.Error(2)
}

func (_e *MockReferralCodeCache_Expecter) Get(ctx, code any) *mock.Call {
	return _e.mock.On("Get", ctx, code)
}

func (_m *MockReferralCodeCache) Set(ctx context.Context, code string, userID uint64) error {
	ret := _m.Called(ctx, code, userID)
	return ret.Error(0)
}

func (_e *MockReferralCodeCache_Expecter) Set(ctx, code, userID any) *mock.Call {
	return _e.mock.On("Set", ctx, code, userID)
}

func (_m *MockReferralCodeCache) Delete(ctx context.Context, code string) error {
	ret := _m.Called(ctx, code)
	return ret.Error(0)
}

func (_e *MockReferralCodeCache_Expecter) Delete(ctx, code any) *mock.Call {
	return _e.mock.On("Delete", ctx, code)
}

func (_m *MockReferralCodeCache) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

func (_e *MockReferralCodeCache_Expecter) Close() *mock.Call {
	return _e.mock.On("Close")
}

package security

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/security"
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

// MockPasswordHasher is a testify mock of security.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

// MockPasswordHasher_Expecter records expectations on MockPasswordHasher
type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its expectations on cleanup
func NewMockPasswordHasher(t T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)
	return get[string](ret, 0), ret.Error(1)
}

func (_e *MockPasswordHasher_Expecter) Hash(password any) *mock.Call {
	return _e.mock.On("Hash", password)
}

func (_m *MockPasswordHasher) Compare(hash string, password string) error {
	ret := _m.Called(hash, password)
	return ret.Error(0)
}

func (_e *MockPasswordHasher_Expecter) Compare(hash, password any) *mock.Call {
	return _e.mock.On("Compare", hash, password)
}

// MockTokenIssuer is a testify mock of security.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

// MockTokenIssuer_Expecter records expectations on MockTokenIssuer
type MockTokenIssuer_Expecter struct {
	mock *mock.Mock
}

// NewMockTokenIssuer creates a MockTokenIssuer that asserts its expectations on cleanup
func NewMockTokenIssuer(t T) *MockTokenIssuer {
	m := &MockTokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockTokenIssuer) EXPECT() *MockTokenIssuer_Expecter {
	return &MockTokenIssuer_Expecter{mock: &_m.Mock}
}

func (_m *MockTokenIssuer) Issue(user *entity.User) (string, time.Time, error) {
	ret := _m.Called(user)
	return get[string](ret, 0), get[time.Time](ret, 1), ret.Error(2)
}

func (_e *MockTokenIssuer_Expecter) Issue(user any) *mock.Call {
	return _e.mock.On("Issue", user)
}

func (_m *MockTokenIssuer) Parse(token string) (*security.Claims, error) {
	ret := _m.Called(token)
	return get[*security.Claims](ret, 0), ret.Error(1)
}

func (_e *MockTokenIssuer_Expecter) Parse(token any) *mock.Call {
	return _e.mock.On("Parse", token)
}

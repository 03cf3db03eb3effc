package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/referral-platform/mocks/port/persistence"
	mocksecurity "github.com/amirhossein-jamali/referral-platform/mocks/port/security"
	mockusecase "github.com/amirhossein-jamali/referral-platform/mocks/port/usecase"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users         *mockpersistence.MockUserRepository
	referrals     *mockusecase.MockReferralUseCase
	notifications *mockusecase.MockNotificationUseCase
	hasher        *mocksecurity.MockPasswordHasher
	tokens        *mocksecurity.MockTokenIssuer
	metrics       *mockcore.MockMetrics
	useCase       *UserUseCase
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		users:         mockpersistence.NewMockUserRepository(t),
		referrals:     mockusecase.NewMockReferralUseCase(t),
		notifications: mockusecase.NewMockNotificationUseCase(t),
		hasher:        mocksecurity.NewMockPasswordHasher(t),
		tokens:        mocksecurity.NewMockTokenIssuer(t),
		metrics:       mockcore.NewMockMetrics(t),
	}

	uow := mockpersistence.NewMockUnitOfWork(t)
	uow.EXPECT().Execute(mock.Anything, mock.Anything).Return(nil).Maybe()
	uow.EXPECT().GetUserRepository(mock.Anything).Return(f.users).Maybe()

	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	f.useCase = NewUserUseCase(uow, f.referrals, f.notifications, f.hasher, f.tokens,
		mockcore.FixedClock{At: testNow}, f.metrics, logger)
	return f
}

func storedUser(id uint64, email string) *entity.User {
	u := &entity.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash:" + email,
		Status:       entity.UserActive,
		Role:         entity.RoleUser,
		ReferralCode: "ABCD2345",
		CreatedAt:    testNow.Add(-24 * time.Hour),
	}
	u.RestoreBalance(12345)
	return u
}

package referral

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	mockcache "github.com/amirhossein-jamali/referral-platform/mocks/port/cache"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/referral-platform/mocks/port/persistence"
	mockusecase "github.com/amirhossein-jamali/referral-platform/mocks/port/usecase"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users         *mockpersistence.MockUserRepository
	txs           *mockpersistence.MockTransactionRepository
	settings      *mockusecase.MockSettingsUseCase
	notifications *mockusecase.MockNotificationUseCase
	codeCache     *mockcache.MockReferralCodeCache
	codes         *mockcore.MockCodeGenerator
	service       *Service
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		users:         mockpersistence.NewMockUserRepository(t),
		txs:           mockpersistence.NewMockTransactionRepository(t),
		settings:      mockusecase.NewMockSettingsUseCase(t),
		notifications: mockusecase.NewMockNotificationUseCase(t),
		codeCache:     mockcache.NewMockReferralCodeCache(t),
		codes:         mockcore.NewMockCodeGenerator(t),
	}

	uow := mockpersistence.NewMockUnitOfWork(t)
	uow.EXPECT().GetUserRepository(mock.Anything).Return(f.users).Maybe()
	uow.EXPECT().GetTransactionRepository(mock.Anything).Return(f.txs).Maybe()

	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	f.service = NewService(uow, f.settings, f.notifications, f.codeCache, f.codes,
		&mockcore.SequenceIDGenerator{}, mockcore.FixedClock{At: testNow}, logger, Options{})
	return f
}

// member builds an active user referred by referrerID (0 for none)
func member(id, referrerID uint64) *entity.User {
	u := &entity.User{
		ID:           id,
		Email:        "member@example.com",
		Status:       entity.UserActive,
		Role:         entity.RoleUser,
		ReferralCode: "CODE" + string(rune('A'+id%26)) + "AAA",
		CreatedAt:    testNow.Add(-time.Duration(id) * time.Hour),
	}
	if referrerID != 0 {
		ref := referrerID
		u.ReferrerID = &ref
	}
	return u
}

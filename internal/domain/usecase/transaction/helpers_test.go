package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func quietLogger(t *testing.T) *mockcore.MockLogger {
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func testUser(id uint64, balanceInCents int64) *entity.User {
	u := &entity.User{
		ID:     id,
		Email:  "user@example.com",
		Status: entity.UserActive,
		Role:   entity.RoleUser,
	}
	u.RestoreBalance(balanceInCents)
	return u
}

func pendingTx(id string, userID uint64, txType entity.TransactionType, amountInCents int64) *entity.Transaction {
	return &entity.Transaction{
		ID:            1,
		TransactionID: id,
		UserID:        userID,
		Type:          txType,
		Status:        entity.StatusPending,
		Amount:        entity.AmountInCentsToString(amountInCents),
		AmountInCents: amountInCents,
		CreatedAt:     testNow.Add(-time.Hour),
	}
}

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	mockusecase "github.com/amirhossein-jamali/referral-platform/mocks/port/usecase"
)

func TestTransactionHandler_UserRequests(t *testing.T) {
	txUC := mockusecase.NewMockTransactionUseCase(t)
	h := NewTransactionHandler(txUC, logger.NewNoopLogger())
	router, authed := newTestRouter(t)
	authed.POST("/api/transactions/deposit", h.Deposit)
	authed.POST("/api/transactions/withdraw", h.Withdraw)
	authed.POST("/api/transactions/invest", h.Invest)

	t.Run("Deposit is accepted", func(t *testing.T) {
		txUC.EXPECT().RequestDeposit(mock.Anything, usecase.TransactionRequest{
			UserID: testUserID, Amount: "50.00", Description: "card",
		}).Return(testTransaction(entity.TypeDeposit, entity.StatusPending), nil).Once()

		rec := doRequest(router, http.MethodPost, "/api/transactions/deposit", "user-token",
			dto.TransactionRequest{Amount: "50.00", Description: "card"})

		assert.Equal(t, http.StatusAccepted, rec.Code)
		body := decode[dto.TransactionResponse](t, rec)
		assert.Equal(t, "Deposit", body.Type)
		assert.Equal(t, "Pending", body.Status)
		assert.Equal(t, "50.00", body.Amount)
	})

	t.Run("Deposit outside limits", func(t *testing.T) {
		txUC.EXPECT().RequestDeposit(mock.Anything, mock.Anything).Return(nil, domainerr.ErrAmountOutOfLimits).Once()
		rec := doRequest(router, http.MethodPost, "/api/transactions/deposit", "user-token", dto.TransactionRequest{Amount: "1.00"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.CodeAmountOutOfLimits, errorCode(t, rec))
	})

	t.Run("Missing amount", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/transactions/deposit", "user-token", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Withdrawal with insufficient balance", func(t *testing.T) {
		txUC.EXPECT().RequestWithdrawal(mock.Anything, mock.Anything).Return(nil, domainerr.ErrInsufficientBalance).Once()
		rec := doRequest(router, http.MethodPost, "/api/transactions/withdraw", "user-token", dto.TransactionRequest{Amount: "1000.00"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.CodeInsufficientBalance, errorCode(t, rec))
	})

	t.Run("Withdrawal while locked", func(t *testing.T) {
		txUC.EXPECT().RequestWithdrawal(mock.Anything, mock.Anything).Return(nil, domainerr.ErrUserLocked).Once()
		rec := doRequest(router, http.MethodPost, "/api/transactions/withdraw", "user-token", dto.TransactionRequest{Amount: "10.00"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Invest completes immediately", func(t *testing.T) {
		txUC.EXPECT().Invest(mock.Anything, usecase.TransactionRequest{UserID: testUserID, Amount: "50.00"}).
			Return(testTransaction(entity.TypeInvestment, entity.StatusCompleted), nil).Once()
		rec := doRequest(router, http.MethodPost, "/api/transactions/invest", "user-token", dto.TransactionRequest{Amount: "50.00"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Completed", decode[dto.TransactionResponse](t, rec).Status)
	})
}

func TestTransactionHandler_Listings(t *testing.T) {
	txUC := mockusecase.NewMockTransactionUseCase(t)
	h := NewTransactionHandler(txUC, logger.NewNoopLogger())
	router, authed := newTestRouter(t)
	authed.GET("/api/transactions", h.ListMine)
	authed.GET("/api/admin/transactions", h.ListAll)

	page := &entity.Page[*entity.Transaction]{
		Items:    []*entity.Transaction{testTransaction(entity.TypeDeposit, entity.StatusPending)},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}

	t.Run("Own transactions", func(t *testing.T) {
		filter := entity.TransactionFilter{Type: entity.TypeDeposit, Status: entity.StatusPending}
		txUC.EXPECT().ListUserTransactions(mock.Anything, testUserID, filter).Return(page, nil).Once()

		rec := doRequest(router, http.MethodGet, "/api/transactions?type=Deposit&status=Pending", "user-token", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[dto.PageResponse[dto.TransactionResponse]](t, rec)
		assert.Equal(t, int64(1), body.Total)
		assert.Equal(t, "tx-1", body.Items[0].TransactionID)
	})

	t.Run("Unknown type", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/transactions?type=Lottery", "user-token", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown status", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/transactions?status=Lost", "user-token", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Admin filter by user", func(t *testing.T) {
		txUC.EXPECT().ListTransactions(mock.Anything, entity.TransactionFilter{UserID: 42, Page: 3}).Return(page, nil).Once()
		rec := doRequest(router, http.MethodGet, "/api/admin/transactions?userId=42&page=3", "admin-token", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Admin bad user id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/admin/transactions?userId=x", "admin-token", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransactionHandler_AdminActions(t *testing.T) {
	txUC := mockusecase.NewMockTransactionUseCase(t)
	h := NewTransactionHandler(txUC, logger.NewNoopLogger())
	router, authed := newTestRouter(t)
	authed.POST("/api/admin/transactions/:transactionId/approve", h.Approve)
	authed.POST("/api/admin/transactions/:transactionId/reject", h.Reject)
	authed.POST("/api/admin/users/:userId/balance", h.AdjustBalance)

	t.Run("Approve", func(t *testing.T) {
		txUC.EXPECT().ApproveTransaction(mock.Anything, "tx-1", testAdminID).
			Return(testTransaction(entity.TypeDeposit, entity.StatusCompleted), nil).Once()
		rec := doRequest(router, http.MethodPost, "/api/admin/transactions/tx-1/approve", "admin-token", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Completed", decode[dto.TransactionResponse](t, rec).Status)
	})

	t.Run("Approve twice", func(t *testing.T) {
		txUC.EXPECT().ApproveTransaction(mock.Anything, "tx-1", testAdminID).Return(nil, domainerr.ErrInvalidState).Once()
		rec := doRequest(router, http.MethodPost, "/api/admin/transactions/tx-1/approve", "admin-token", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, domainerr.CodeInvalidTransactionState, errorCode(t, rec))
	})

	t.Run("Approve unknown", func(t *testing.T) {
		txUC.EXPECT().ApproveTransaction(mock.Anything, "missing", testAdminID).Return(nil, domainerr.ErrTransactionNotFound).Once()
		rec := doRequest(router, http.MethodPost, "/api/admin/transactions/missing/approve", "admin-token", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Reject with reason", func(t *testing.T) {
		txn := testTransaction(entity.TypeWithdrawal, entity.StatusFailed)
		txn.FailureReason = "wrong iban"
		txUC.EXPECT().RejectTransaction(mock.Anything, "tx-1", testAdminID, "wrong iban").Return(txn, nil).Once()

		rec := doRequest(router, http.MethodPost, "/api/admin/transactions/tx-1/reject", "admin-token", dto.RejectRequest{Reason: "wrong iban"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "wrong iban", decode[dto.TransactionResponse](t, rec).FailureReason)
	})

	t.Run("Reject without body", func(t *testing.T) {
		txUC.EXPECT().RejectTransaction(mock.Anything, "tx-1", testAdminID, "").
			Return(testTransaction(entity.TypeDeposit, entity.StatusFailed), nil).Once()
		rec := doRequest(router, http.MethodPost, "/api/admin/transactions/tx-1/reject", "admin-token", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Deduct balance", func(t *testing.T) {
		txUC.EXPECT().AdjustBalance(mock.Anything, usecase.AdjustmentRequest{
			UserID: 9, AdminID: testAdminID, Amount: "5.00", Add: false, Description: "chargeback",
		}).Return(testTransaction(entity.TypeAdminDeduct, entity.StatusCompleted), nil).Once()

		rec := doRequest(router, http.MethodPost, "/api/admin/users/9/balance", "admin-token",
			dto.AdjustBalanceRequest{Amount: "5.00", Operation: "deduct", Description: "chargeback"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Admin_Deduct", decode[dto.TransactionResponse](t, rec).Type)
	})

	t.Run("Unknown operation", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/admin/users/9/balance", "admin-token",
			dto.AdjustBalanceRequest{Amount: "5.00", Operation: "multiply"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

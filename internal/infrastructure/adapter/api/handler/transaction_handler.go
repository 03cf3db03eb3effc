package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionUseCase usecase.TransactionUseCase
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactionUseCase usecase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{transactionUseCase: transactionUseCase, logger: logger}
}

type requestFunc func(ctx context.Context, req usecase.TransactionRequest) (*entity.Transaction, error)

// userRequest runs a deposit, withdrawal or investment for the caller
func (h *TransactionHandler) userRequest(c *gin.Context, op requestFunc, status int) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := op(c.Request.Context(), usecase.TransactionRequest{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, dto.NewTransactionResponse(txn))
}

// Deposit handles POST /api/transactions/deposit
func (h *TransactionHandler) Deposit(c *gin.Context) {
	h.userRequest(c, h.transactionUseCase.RequestDeposit, http.StatusAccepted)
}

// Withdraw handles POST /api/transactions/withdraw
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	h.userRequest(c, h.transactionUseCase.RequestWithdrawal, http.StatusAccepted)
}

// Invest handles POST /api/transactions/invest
func (h *TransactionHandler) Invest(c *gin.Context) {
	h.userRequest(c, h.transactionUseCase.Invest, http.StatusOK)
}

func transactionFilter(c *gin.Context) (entity.TransactionFilter, error) {
	filter := entity.TransactionFilter{
		Type:   entity.TransactionType(c.Query("type")),
		Status: entity.TransactionStatus(c.Query("status")),
	}
	if filter.Type != "" && !entity.IsValidTransactionType(string(filter.Type)) {
		return filter, fmt.Errorf("%w: %s", domainerr.ErrInvalidTransactionType, filter.Type)
	}
	if filter.Status != "" && !entity.IsValidTransactionStatus(string(filter.Status)) {
		return filter, fmt.Errorf("%w: unknown status %q", domainerr.ErrInvalidRequest, filter.Status)
	}
	filter.Page, filter.PageSize = pageQuery(c)
	return filter, nil
}

// ListMine handles GET /api/transactions
func (h *TransactionHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter, err := transactionFilter(c)
	if err != nil {
		fail(c, err)
		return
	}

	page, err := h.transactionUseCase.ListUserTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewTransactionResponse))
}

// ListAll handles GET /api/admin/transactions
func (h *TransactionHandler) ListAll(c *gin.Context) {
	filter, err := transactionFilter(c)
	if err != nil {
		fail(c, err)
		return
	}
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fail(c, fmt.Errorf("%w: userId must be a positive integer", domainerr.ErrInvalidRequest))
			return
		}
		filter.UserID = userID
	}

	page, err := h.transactionUseCase.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewTransactionResponse))
}

// Approve handles POST /api/admin/transactions/:transactionId/approve
func (h *TransactionHandler) Approve(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionUseCase.ApproveTransaction(c.Request.Context(), c.Param("transactionId"), adminID)
	if err != nil {
		fail(c, err)
		return
	}

	h.logger.Info("Transaction approved", map[string]any{
		"transaction_id": txn.TransactionID,
		"admin_id":       adminID,
		"request_id":     middleware.RequestIDFrom(c),
	})
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// Reject handles POST /api/admin/transactions/:transactionId/reject
func (h *TransactionHandler) Reject(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionUseCase.RejectTransaction(c.Request.Context(), c.Param("transactionId"), adminID, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	h.logger.Info("Transaction rejected", map[string]any{
		"transaction_id": txn.TransactionID,
		"admin_id":       adminID,
		"request_id":     middleware.RequestIDFrom(c),
	})
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// AdjustBalance handles POST /api/admin/users/:userId/balance
func (h *TransactionHandler) AdjustBalance(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var req dto.AdjustBalanceRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionUseCase.AdjustBalance(c.Request.Context(), usecase.AdjustmentRequest{
		UserID:      userID,
		AdminID:     adminID,
		Amount:      req.Amount,
		Add:         req.Operation == "add",
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userUseCase usecase.UserUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, logger: logger}
}

// Me handles GET /api/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetBalance handles GET /api/me/balance
func (h *UserHandler) GetBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	balance, err := h.userUseCase.GetFormattedUserBalance(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting user balance", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  balance.UserID,
		Balance: balance.Balance,
	})
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := entity.UserFilter{
		Status: entity.UserStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if filter.Status != "" && !entity.IsValidUserStatus(filter.Status) {
		fail(c, fmt.Errorf("%w: unknown status %q", domainerr.ErrInvalidRequest, filter.Status))
		return
	}
	filter.Page, filter.PageSize = pageQuery(c)

	page, err := h.userUseCase.ListUsers(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewUserResponse))
}

// SetStatus handles PUT /api/admin/users/:userId/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUseCase.SetStatus(c.Request.Context(), userID, entity.UserStatus(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	mockusecase "github.com/amirhossein-jamali/referral-platform/mocks/port/usecase"
)

func TestAuthHandler_Register(t *testing.T) {
	users := mockusecase.NewMockUserUseCase(t)
	h := NewAuthHandler(users, logger.NewNoopLogger())
	router, _ := newTestRouter(t)
	router.POST("/api/auth/register", h.Register)

	t.Run("Success", func(t *testing.T) {
		users.EXPECT().Register(mock.Anything, usecase.RegisterRequest{
			Email:        "Alice@Example.com",
			Password:     "secret1",
			ReferralCode: "wxyz2345",
		}).Return(testUser(), nil).Once()

		rec := doRequest(router, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
			Email:        "Alice@Example.com",
			Password:     "secret1",
			ReferralCode: "wxyz2345",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decode[dto.UserResponse](t, rec)
		assert.Equal(t, "alice@example.com", body.Email)
		assert.Equal(t, "125.50", body.Balance)
		assert.Equal(t, "ABCD2345", body.ReferralCode)
		assert.Equal(t, uint64(3), *body.ReferrerID)
	})

	t.Run("Malformed body", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/auth/register", "", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.CodeInvalidRequest, errorCode(t, rec))
	})

	t.Run("Missing password", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/auth/register", "", `{"email":"a@b.co"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerr.ErrDuplicateUser).Once()
		rec := doRequest(router, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "a@b.co", Password: "secret1"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, domainerr.CodeDuplicateUser, errorCode(t, rec))
	})

	t.Run("Unknown referral code", func(t *testing.T) {
		users.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerr.ErrReferralCodeNotFound).Once()
		rec := doRequest(router, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "a@b.co", Password: "secret1", ReferralCode: "NOPE"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domainerr.CodeReferralCodeNotFound, errorCode(t, rec))
	})
}

func TestAuthHandler_Login(t *testing.T) {
	users := mockusecase.NewMockUserUseCase(t)
	h := NewAuthHandler(users, logger.NewNoopLogger())
	router, _ := newTestRouter(t)
	router.POST("/api/auth/login", h.Login)

	t.Run("Success", func(t *testing.T) {
		expiresAt := testNow.Add(24 * time.Hour)
		users.EXPECT().Login(mock.Anything, "alice@example.com", "secret1").
			Return(&usecase.AuthResult{Token: "jwt", ExpiresAt: expiresAt, User: testUser()}, nil).Once()

		rec := doRequest(router, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "alice@example.com", Password: "secret1"})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[dto.AuthResponse](t, rec)
		assert.Equal(t, "jwt", body.Token)
		assert.True(t, body.ExpiresAt.Equal(expiresAt))
		assert.Equal(t, testUserID, body.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users.EXPECT().Login(mock.Anything, "alice@example.com", "nope").Return(nil, domainerr.ErrInvalidCredentials).Once()
		rec := doRequest(router, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "alice@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, domainerr.CodeInvalidCredentials, errorCode(t, rec))
	})

	t.Run("Disabled", func(t *testing.T) {
		users.EXPECT().Login(mock.Anything, "alice@example.com", "secret1").Return(nil, domainerr.ErrUserDisabled).Once()
		rec := doRequest(router, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "alice@example.com", Password: "secret1"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/security"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/referral-platform/mocks/port/core"
	mocksecurity "github.com/amirhossein-jamali/referral-platform/mocks/port/security"
)

const (
	testUserID  uint64 = 7
	testAdminID uint64 = 1
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter returns a router with the production error handling and a
// group authenticated by the tokens "user-token" and "admin-token"
func newTestRouter(t *testing.T) (*gin.Engine, *gin.RouterGroup) {
	tokens := mocksecurity.NewMockTokenIssuer(t)
	tokens.EXPECT().Parse("user-token").Return(&security.Claims{UserID: testUserID, Role: entity.RoleUser}, nil).Maybe()
	tokens.EXPECT().Parse("admin-token").Return(&security.Claims{UserID: testAdminID, Role: entity.RoleAdmin}, nil).Maybe()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(logger.NewNoopLogger()))
	return router, router.Group("", middleware.Auth(tokens))
}

func doRequest(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	return decode[dto.ErrorResponse](t, rec).Code
}

func testUser() *entity.User {
	referrer := uint64(3)
	u := &entity.User{
		ID:           testUserID,
		Email:        "alice@example.com",
		Phone:        "+15550100",
		Status:       entity.UserActive,
		Role:         entity.RoleUser,
		ReferralCode: "ABCD2345",
		ReferrerID:   &referrer,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	u.RestoreBalance(12550)
	return u
}

func testTransaction(txType entity.TransactionType, status entity.TransactionStatus) *entity.Transaction {
	txn, _ := entity.NewTransaction(testUserID, "tx-1", txType, 5000, "", mockcore.FixedClock{At: testNow})
	txn.Status = status
	return txn
}

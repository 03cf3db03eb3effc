package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
	mockusecase "github.com/amirhossein-jamali/referral-platform/mocks/port/usecase"
)

func TestNotificationHandler(t *testing.T) {
	notifications := mockusecase.NewMockNotificationUseCase(t)
	h := NewNotificationHandler(notifications)
	router, authed := newTestRouter(t)
	authed.GET("/api/notifications", h.List)
	authed.POST("/api/notifications/:id/read", h.MarkRead)
	authed.POST("/api/notifications/read-all", h.MarkAllRead)

	t.Run("Unread only", func(t *testing.T) {
		items := []*entity.Notification{{
			ID: 3, UserID: testUserID, Kind: entity.NotifyDepositApproved,
			Title: "Deposit approved", Message: "50.00 was credited", CreatedAt: testNow,
		}}
		notifications.EXPECT().List(mock.Anything, testUserID, true).Return(items, nil).Once()
		notifications.EXPECT().UnreadCount(mock.Anything, testUserID).Return(int64(1), nil).Once()

		rec := doRequest(router, http.MethodGet, "/api/notifications?unread=true", "user-token", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[dto.NotificationListResponse](t, rec)
		assert.Equal(t, int64(1), body.Unread)
		assert.Equal(t, "deposit_approved", body.Items[0].Kind)
	})

	t.Run("Empty feed", func(t *testing.T) {
		notifications.EXPECT().List(mock.Anything, testUserID, false).Return(nil, nil).Once()
		notifications.EXPECT().UnreadCount(mock.Anything, testUserID).Return(int64(0), nil).Once()

		rec := doRequest(router, http.MethodGet, "/api/notifications", "user-token", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"unread":0}`, rec.Body.String())
	})

	t.Run("Store failure", func(t *testing.T) {
		notifications.EXPECT().List(mock.Anything, testUserID, false).Return(nil, errors.New("boom")).Once()
		rec := doRequest(router, http.MethodGet, "/api/notifications", "user-token", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, domainerr.CodeInternalServer, errorCode(t, rec))
	})

	t.Run("Mark read", func(t *testing.T) {
		notifications.EXPECT().MarkRead(mock.Anything, testUserID, uint64(3)).Return(nil).Once()
		rec := doRequest(router, http.MethodPost, "/api/notifications/3/read", "user-token", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Mark read of someone else's notification", func(t *testing.T) {
		notifications.EXPECT().MarkRead(mock.Anything, testUserID, uint64(4)).Return(domainerr.ErrNotificationNotFound).Once()
		rec := doRequest(router, http.MethodPost, "/api/notifications/4/read", "user-token", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Mark read bad id", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/notifications/0/read", "user-token", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Mark all read", func(t *testing.T) {
		notifications.EXPECT().MarkAllRead(mock.Anything, testUserID).Return(int64(5), nil).Once()
		rec := doRequest(router, http.MethodPost, "/api/notifications/read-all", "user-token", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"updated":5}`, rec.Body.String())
	})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
)

// NotificationHandler serves the caller's notification feed
type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
}

// NewNotificationHandler creates a new notification handler instance
func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

// List handles GET /api/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	ctx := c.Request.Context()

	notifications, err := h.notificationUseCase.List(ctx, userID, unreadOnly)
	if err != nil {
		fail(c, err)
		return
	}
	unread, err := h.notificationUseCase.UnreadCount(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{
		Items:  mapSlice(notifications, dto.NewNotificationResponse),
		Unread: unread,
	})
}

// MarkRead handles POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationUseCase.MarkRead(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.notificationUseCase.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

func mapSlice[E, T any](items []E, mapItem func(E) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, mapItem(item))
	}
	return out
}


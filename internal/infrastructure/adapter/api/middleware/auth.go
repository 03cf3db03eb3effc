package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/security"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/usecase"
)

const (
	userIDKey = "auth_user_id"
	roleKey   = "auth_role"
)

// Auth requires a valid bearer token and stores its subject in the context
func Auth(tokens security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			_ = c.Error(domainerr.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly re-reads the caller's role from storage. The role claim in the
// token is never trusted for authorization.
func AdminOnly(users usecase.UserUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			_ = c.Error(domainerr.ErrUnauthorized)
			c.Abort()
			return
		}

		isAdmin, err := users.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			if domainerr.IsUserNotFoundError(err) {
				err = domainerr.ErrUnauthorized
			}
			_ = c.Error(err)
			c.Abort()
			return
		}
		if !isAdmin {
			logger.Warn("Admin route denied", map[string]any{
				"user_id": userID,
				"path":    c.Request.URL.Path,
			})
			_ = c.Error(domainerr.ErrForbidden)
			c.Abort()
			return
		}
		c.Set(roleKey, entity.RoleAdmin)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by Auth
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok && id != 0
}

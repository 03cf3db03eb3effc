package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler recovers from panics and renders the last error a handler
// attached with c.Error as the standard error envelope
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": RequestIDFrom(c),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:      domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message:   "Internal server error",
					RequestID: RequestIDFrom(c),
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusFor(err)
		message := err.Error()

		fields := map[string]any{
			"error":      err.Error(),
			"status":     status,
			"path":       c.Request.URL.Path,
			"request_id": RequestIDFrom(c),
		}
		var detailed interface{ LogFields() map[string]any }
		if errors.As(err, &detailed) {
			for k, v := range detailed.LogFields() {
				fields[k] = v
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", fields)
			message = "Internal server error"
		} else {
			logger.Debug("Request rejected", fields)
		}

		c.JSON(status, dto.ErrorResponse{
			Code:      domainerr.ErrorCode(err),
			Message:   message,
			RequestID: RequestIDFrom(c),
		})
	}
}

// StatusFor maps domain errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrUnauthorized), errors.Is(err, domainerr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrForbidden), errors.Is(err, domainerr.ErrUserDisabled):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrRateLimited):
		return http.StatusTooManyRequests
	case domainerr.IsInsufficientBalanceError(err), domainerr.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrDuplicateUser),
		errors.Is(err, domainerr.ErrDuplicateTransaction),
		errors.Is(err, domainerr.ErrInvalidState),
		errors.Is(err, domainerr.ErrConstraintViolation),
		domainerr.IsUserLockedError(err):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrReferralCodeUnavailable), errors.Is(err, domainerr.ErrReferralCodeTaken),
		errors.Is(err, domainerr.ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

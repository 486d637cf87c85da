package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/response"
)

const (
	HeaderRequestID = "X-Request-ID"
	keyRequestID    = "request_id"
)

// RequestID propagates X-Request-ID or generates a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(keyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// Recovery turns a panic into an INTERNAL_ERROR picked up by ErrorHandler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		_ = c.Error(apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("panic: %v", recovered)))
		c.Abort()
	})
}

// ErrorHandler renders the last error pushed with c.Error as a response envelope. Outside
// production the envelope carries the error code, details and cause.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "Handler error occurred")
		}

		logError(c, appErr)

		message := appErr.Message
		if appErr.HTTPStatus() >= http.StatusInternalServerError && appErr.Code != apperrors.ErrCodeUpstream {
			message = "Internal server error"
		}

		body := response.Envelope{Success: false, Message: message}
		if !production {
			detail := gin.H{
				"code":       appErr.Code,
				"request_id": GetRequestID(c),
			}
			if len(appErr.Details) > 0 {
				detail["details"] = appErr.Details
			}
			if appErr.Cause != nil {
				detail["cause"] = appErr.Cause.Error()
			}
			body.Error = detail
		}

		c.AbortWithStatusJSON(appErr.HTTPStatus(), body)
	}
}

func logError(c *gin.Context, appErr *apperrors.AppError) {
	var event *zerolog.Event
	switch {
	case appErr.IsInternal():
		event = log.Error()
	case appErr.IsUnauthorized():
		event = log.Warn()
	default:
		event = log.Info()
	}

	event = event.
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code))
	if identity, ok := CurrentIdentity(c); ok {
		event = event.Str("user_id", identity.UserID)
	}
	if len(appErr.Details) > 0 {
		event = event.Interface("details", appErr.Details)
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}
	event.Msg(appErr.Message)
}

func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(keyRequestID); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "unknown"
}

package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/logger"
)

// ErrorBody is the error payload of every failed response:
//
//	{"status": "error", "error": {"code": "...", "message": "..."}}
func ErrorBody(code, message string) gin.H {
	return gin.H{
		"status": "error",
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// WriteError renders err as a JSON error response. AppErrors keep their
// status, code and message; anything else is logged and reported as a
// generic internal error.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorBody(appErr.Code, appErr.Message))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode,
		ErrorBody(apperrors.ErrInternalServer.Code, apperrors.ErrInternalServer.Message))
}

func abortWithError(c *gin.Context, err error) {
	WriteError(c, err)
	c.Abort()
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		WriteError(c, c.Errors.Last().Err)
	}
}

// NotFound renders unknown routes in the error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Route not found"))
	}
}

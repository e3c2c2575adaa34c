package middleware

import (
	stderrors "errors"
	"fmt"

	"github.com/envgov/feedback-api/errors"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the context as the failure
// envelope. Handlers only call c.Error; nothing else writes error bodies.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		ginErr := c.Errors.Last()
		err := ginErr.Err

		var appError *errors.AppError
		if !stderrors.As(err, &appError) {
			if ginErr.Type == gin.ErrorTypeBind {
				appError = errors.ValidationFailed("Invalid request body", err.Error())
			} else {
				appError = errors.InternalServerError("Internal server error", err)
			}
		}

		statusCode := appError.GetHTTPStatus()
		logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(statusCode, types.NewErrorResponse(appError.Message, appError.Details()))
	}
}

// NoRoute renders unknown paths through the error envelope.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(errors.NotFound("Endpoint not found"))
	}
}

// NoMethod renders known paths hit with the wrong verb.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(errors.MethodNotAllowed("Method not allowed"))
	}
}

package middleware

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/envgov/feedback-api/errors"
	"github.com/envgov/feedback-api/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a handler into a 500 envelope. It must be
// registered after ErrorHandler so the error is rendered on the way out.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		err := fmt.Errorf("%v", recovered)
		logger.LogError(c, err, "Recovered from panic", map[string]interface{}{
			"panic": string(debug.Stack()),
		})
		_ = c.Error(errors.InternalServerError("Internal server error", err))
		c.Abort()
	})
}

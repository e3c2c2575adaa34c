package middleware

import (
	"time"

	"github.com/envgov/feedback-api/logger"
	"github.com/gin-gonic/gin"
)

// quietPaths are logged at debug level; health checks and scrapers hit them constantly.
var quietPaths = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// RequestLogger writes one structured access log line per request.
func RequestLogger() gin.HandlerFunc {
	log := logger.GetLogger().Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"query", rawQuery,
			"ip", c.ClientIP(),
			"latency", time.Since(start),
			"size", c.Writer.Size(),
			"request_id", c.GetString(RequestIDKey),
			"user_agent", c.Request.UserAgent(),
		}

		switch {
		case status >= 500:
			log.Errorw("Request failed", fields...)
		case status >= 400:
			log.Warnw("Request rejected", fields...)
		case quietPaths[path]:
			log.Debugw("Request completed", fields...)
		default:
			log.Infow("Request completed", fields...)
		}
	}
}

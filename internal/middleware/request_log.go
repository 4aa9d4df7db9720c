package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/platform/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if id, ok := PractitionerID(c); ok {
			kv = append(kv, "practitioner_id", id.String())
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", kv...)
		case c.Writer.Status() >= 400:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
	}
}

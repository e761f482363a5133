package middleware

import (
	"therapy-scheduler/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CallerIDHeader carries the optional caller identity on queue reads.
const CallerIDHeader = "X-Caller-ID"

// CallerAudit logs the caller identity supplied via X-Caller-ID. The header
// is audit-only: it never filters or alters any queue view.
func CallerAudit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller := c.GetHeader(CallerIDHeader); caller != "" {
			logger.Logger.WithFields(logrus.Fields{
				"caller_id": caller,
				"method":    c.Request.Method,
				"path":      c.FullPath(),
			}).Info("Caller identified")
		}
		c.Next()
	}
}

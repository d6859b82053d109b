package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/service"
)

// Audit creates a middleware that records audit logs after successful requests.
func Audit(auditSvc *service.AuditService, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 || len(c.Errors) > 0 {
			return
		}

		entry := service.AuditEntry{
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID(c),
			Values: map[string]interface{}{
				"path":    c.FullPath(),
				"method":  c.Request.Method,
				"status":  c.Writer.Status(),
				"latency": time.Since(start).Milliseconds(),
			},
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if session := CurrentSession(c); session != nil {
			entry.UserID = session.User.ID
		}
		auditSvc.Record(c.Request.Context(), entry)
	}
}

func resourceID(c *gin.Context) string {
	for _, key := range []string{"id", "date", "code", "name"} {
		if value := c.Param(key); value != "" {
			return value
		}
	}
	return ""
}

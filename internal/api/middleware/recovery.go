package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/probelab/lanscope/internal/infrastructure/logging"
)

// Recovery converts handler panics into a static fallback payload instead
// of an aborted connection. The payload carries the failure message so the
// demo page can render it inline.
func Recovery(log *logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "Unknown error occurred"
		switch v := recovered.(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		}

		log.Error("handler panic",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", message),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":    "internal error",
			"message":  message,
			"fallback": true,
		})
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageLogEntry is one log record forwarded by the demo page. Errors the
// page catches (probe failures, permission rejections) are diagnostics
// only and must never affect control flow, so they land in the gateway
// log instead of an error response.
type PageLogEntry struct {
	ID        string                 `json:"id"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context"`
	Timestamp string                 `json:"timestamp"`
}

// PageLogBatch is a batch of page log entries
type PageLogBatch struct {
	Source    string         `json:"source"`
	Entries   []PageLogEntry `json:"entries"`
	Timestamp int64          `json:"timestamp"`
}

// StreamLogs ingests log batches from the demo page
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req PageLogBatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log batch format"})
		return
	}

	if req.Source != "page" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log source"})
		return
	}

	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no log entries provided"})
		return
	}

	for _, entry := range req.Entries {
		h.writePageLogEntry(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"entries_received": len(req.Entries),
		"timestamp":        time.Now().Unix(),
	})
}

// writePageLogEntry maps one page entry onto the gateway's structured log
func (h *Handlers) writePageLogEntry(entry PageLogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+3)
	fields = append(fields,
		zap.String("page_log_id", entry.ID),
		zap.String("source", "page"),
		zap.String("page_timestamp", entry.Timestamp),
	)

	for key, value := range entry.Context {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	switch entry.Level {
	case "error":
		h.log.Error(entry.Message, fields...)
	case "warn":
		h.log.Warn(entry.Message, fields...)
	case "debug":
		h.log.Debug(entry.Message, fields...)
	default:
		h.log.Info(entry.Message, fields...)
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/cdnflush/internal/domain/service"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// LogsHandler serves the refresh log history.
type LogsHandler struct {
	sink   service.AuditSink
	logger logger.Logger
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(sink service.AuditSink, log logger.Logger) *LogsHandler {
	return &LogsHandler{
		sink:   sink,
		logger: log.WithComponent("LogsHandler"),
	}
}

// List returns the most recent refresh logs, newest first.
func (h *LogsHandler) List(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	logs, err := h.sink.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to list refresh logs", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list refresh logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Delete removes one refresh log by id.
func (h *LogsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.sink.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error(c.Request.Context(), "failed to delete refresh log", err,
			logger.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete refresh log"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear removes all refresh logs.
func (h *LogsHandler) Clear(c *gin.Context) {
	if err := h.sink.Clear(c.Request.Context()); err != nil {
		h.logger.Error(c.Request.Context(), "failed to clear refresh logs", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear refresh logs"})
		return
	}
	c.Status(http.StatusNoContent)
}

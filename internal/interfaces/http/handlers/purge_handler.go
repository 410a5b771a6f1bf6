// Package handlers contains the gin HTTP handlers for the purge API.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/cdnflush/internal/application"
	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/internal/domain/service"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// PurgeHandler handles manual cache purge requests.
type PurgeHandler struct {
	manager  *application.RefreshManager
	settings service.SettingsSource
	logger   logger.Logger
}

// NewPurgeHandler creates a new PurgeHandler.
func NewPurgeHandler(manager *application.RefreshManager, settings service.SettingsSource, log logger.Logger) *PurgeHandler {
	return &PurgeHandler{
		manager:  manager,
		settings: settings,
		logger:   log.WithComponent("PurgeHandler"),
	}
}

type purgeRequest struct {
	// URLs are purged as given. Permalink is expanded through the configured
	// page-refresh policy (home, archive, category, tag, custom paths) and
	// purged alongside them.
	URLs      []string `json:"urls"`
	Permalink string   `json:"permalink"`
}

type purgeResponse struct {
	Success bool                          `json:"success"`
	Message string                        `json:"message"`
	Results []application.ProviderOutcome `json:"results"`
}

// Purge runs a synchronous purge of the submitted URLs on every enabled
// provider and reports each provider's outcome.
func (h *PurgeHandler) Purge(c *gin.Context) {
	var req purgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	urls := req.URLs
	if req.Permalink != "" {
		urls = append(urls, application.BuildContentTargets(h.settings.Snapshot(), req.Permalink)...)
	}

	outcomes, err := h.manager.RefreshSync(c.Request.Context(), urls, models.TriggerManual)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Result.Success {
			succeeded++
		}
	}

	h.logger.Info(c.Request.Context(), "manual purge finished",
		logger.Int("url_count", len(urls)),
		logger.Int("succeeded", succeeded),
		logger.Int("provider_count", len(outcomes)))

	c.JSON(http.StatusOK, purgeResponse{
		Success: succeeded == len(outcomes),
		Message: fmt.Sprintf("refreshed %d/%d providers", succeeded, len(outcomes)),
		Results: outcomes,
	})
}

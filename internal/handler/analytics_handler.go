package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/middleware"
	"taskflow/internal/service"
)

// AnalyticsHandler serves the analytics and dashboard aggregates.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Report returns the full analytics payload for the authenticated user.
func (h *AnalyticsHandler) Report(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	report, err := h.analytics.Report(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Dashboard returns the landing-page stats and upcoming tasks.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	dashboard, err := h.analytics.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

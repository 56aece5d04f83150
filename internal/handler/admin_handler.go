package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

// AdminHandler exposes maintenance operations that normally run on a
// schedule.
type AdminHandler struct {
	recurrence *service.RecurrenceService
}

func NewAdminHandler(recurrence *service.RecurrenceService) *AdminHandler {
	return &AdminHandler{recurrence: recurrence}
}

// GenerateRecurring runs the recurring-task sweep immediately and
// reports how many occurrences were created.
func (h *AdminHandler) GenerateRecurring(c *gin.Context) {
	result, err := h.recurrence.RunSweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated": result.Generated,
		"failed":    result.Failed,
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// TimeLogRequest records a work session against a task.
type TimeLogRequest struct {
	StartedAt       time.Time  `json:"started_at" binding:"required"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1"`
	Notes           string     `json:"notes"`
}

// TimeLogResponse mirrors one logged session.
type TimeLogResponse struct {
	ID              string  `json:"id"`
	TaskID          string  `json:"task_id"`
	StartedAt       string  `json:"started_at"`
	EndedAt         *string `json:"ended_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// TimeLogListResponse is all sessions for a task plus the running total.
type TimeLogListResponse struct {
	Entries      []TimeLogResponse `json:"entries"`
	TotalMinutes int64             `json:"total_minutes"`
}

func timeLogResponse(entry *model.TimeLog) TimeLogResponse {
	resp := TimeLogResponse{
		ID:              entry.ID.String(),
		TaskID:          entry.TaskID.String(),
		StartedAt:       entry.StartedAt.Format(time.RFC3339),
		DurationMinutes: entry.DurationMinutes,
		Notes:           entry.Notes,
	}
	if entry.EndedAt != nil {
		ended := entry.EndedAt.Format(time.RFC3339)
		resp.EndedAt = &ended
	}
	return resp
}

// TimeLogHandler handles time tracking HTTP requests.
type TimeLogHandler struct {
	timeLogRepo *repository.TimeLogRepository
	taskRepo    *repository.TaskRepository
}

func NewTimeLogHandler(timeLogRepo *repository.TimeLogRepository, taskRepo *repository.TaskRepository) *TimeLogHandler {
	return &TimeLogHandler{timeLogRepo: timeLogRepo, taskRepo: taskRepo}
}

// Create logs a work session on a task. Duration is derived from the
// start and end times when not given explicitly.
func (h *TimeLogHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	var req TimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.EndedAt != nil && req.EndedAt.Before(req.StartedAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End time must not be before start time"})
		return
	}

	entry := &model.TimeLog{
		UserID:          userID,
		TaskID:          taskID,
		StartedAt:       req.StartedAt,
		EndedAt:         req.EndedAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if entry.DurationMinutes == nil && req.EndedAt != nil {
		minutes := int(req.EndedAt.Sub(req.StartedAt) / time.Minute)
		entry.DurationMinutes = &minutes
	}

	if err := h.timeLogRepo.Create(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time log"})
		return
	}

	c.JSON(http.StatusCreated, timeLogResponse(entry))
}

// List returns all sessions logged on a task and their total.
func (h *TimeLogHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.timeLogRepo.ListByTask(c.Request.Context(), userID, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time logs"})
		return
	}
	total, err := h.timeLogRepo.TotalMinutes(c.Request.Context(), userID, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time logs"})
		return
	}

	resp := TimeLogListResponse{
		Entries:      make([]TimeLogResponse, 0, len(entries)),
		TotalMinutes: total,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, timeLogResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

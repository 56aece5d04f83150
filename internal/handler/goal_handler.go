package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/service"
)

// GoalRequest defines the expected request body for creating or
// updating a goal.
type GoalRequest struct {
	Title        string     `json:"title" binding:"required,max=255"`
	Description  string     `json:"description"`
	TargetYear   int        `json:"target_year" binding:"required"`
	TargetValue  float64    `json:"target_value" binding:"min=0"`
	CurrentValue float64    `json:"current_value" binding:"min=0"`
	Unit         string     `json:"unit"`
	Status       string     `json:"status" binding:"omitempty,oneof=in_progress completed"`
	StartDate    *time.Time `json:"start_date"`
	TargetDate   *time.Time `json:"target_date"`
}

// GoalProgressRequest updates only the goal's current value.
type GoalProgressRequest struct {
	CurrentValue float64 `json:"current_value" binding:"min=0"`
}

// GoalResponse mirrors a goal with its computed progress.
type GoalResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	TargetYear   int            `json:"target_year"`
	TargetValue  float64        `json:"target_value"`
	CurrentValue float64        `json:"current_value"`
	Unit         string         `json:"unit,omitempty"`
	Status       string         `json:"status"`
	Progress     float64        `json:"progress"`
	StartDate    *string        `json:"start_date,omitempty"`
	TargetDate   *string        `json:"target_date,omitempty"`
	CompletedAt  *string        `json:"completed_at,omitempty"`
	Tasks        []TaskResponse `json:"tasks,omitempty"`
	CreatedAt    string         `json:"created_at"`
}

func goalResponse(goal *model.Goal) GoalResponse {
	resp := GoalResponse{
		ID:           goal.ID.String(),
		Title:        goal.Title,
		Description:  goal.Description,
		TargetYear:   goal.TargetYear,
		TargetValue:  goal.TargetValue,
		CurrentValue: goal.CurrentValue,
		Unit:         goal.Unit,
		Status:       goal.Status,
		Progress:     goal.ProgressPercentage(),
		CreatedAt:    goal.CreatedAt.Format(time.RFC3339),
	}
	if goal.StartDate != nil {
		d := goal.StartDate.Format("2006-01-02")
		resp.StartDate = &d
	}
	if goal.TargetDate != nil {
		d := goal.TargetDate.Format("2006-01-02")
		resp.TargetDate = &d
	}
	if goal.CompletedAt != nil {
		d := goal.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &d
	}
	for i := range goal.Tasks {
		resp.Tasks = append(resp.Tasks, taskResponse(&goal.Tasks[i]))
	}
	return resp
}

func (r *GoalRequest) toInput() service.GoalInput {
	return service.GoalInput{
		Title:        r.Title,
		Description:  r.Description,
		TargetYear:   r.TargetYear,
		TargetValue:  r.TargetValue,
		CurrentValue: r.CurrentValue,
		Unit:         r.Unit,
		Status:       r.Status,
		StartDate:    r.StartDate,
		TargetDate:   r.TargetDate,
	}
}

// GoalHandler handles goal-related HTTP requests.
type GoalHandler struct {
	goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// Create creates a new goal for the authenticated user.
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	goal, err := h.goals.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goalResponse(goal))
}

// List returns all of the user's goals.
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	goals, err := h.goals.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		resp = append(resp, goalResponse(&goals[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID returns a goal with its linked tasks.
func (h *GoalHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
		return
	}

	goal, err := h.goals.Get(c.Request.Context(), userID, goalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goalResponse(goal))
}

// Update modifies an existing goal.
func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	goal, err := h.goals.Update(c.Request.Context(), userID, goalID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goalResponse(goal))
}

// UpdateProgress records new progress toward the goal. Reaching the
// target marks the goal completed.
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
		return
	}

	var req GoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	goal, err := h.goals.UpdateProgress(c.Request.Context(), userID, goalID, req.CurrentValue)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goalResponse(goal))
}

// Delete removes a goal.
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
		return
	}

	if err := h.goals.Delete(c.Request.Context(), userID, goalID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// SubtaskRequest is one checklist item in a task payload.
type SubtaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Order       *int   `json:"order"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskRequest represents a create or update task payload. Tags,
// subtasks and dependencies are only touched when the field is present.
type TaskRequest struct {
	Title            string     `json:"title" binding:"required,max=255"`
	Description      string     `json:"description"`
	Notes            string     `json:"notes"`
	Priority         string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status           string     `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	CategoryID       *string    `json:"category_id" binding:"omitempty,uuid"`
	GoalID           *string    `json:"goal_id" binding:"omitempty,uuid"`
	DueDate          *time.Time `json:"due_date"`
	DueTime          *string    `json:"due_time"`
	EstimatedMinutes *int       `json:"estimated_minutes" binding:"omitempty,min=0"`

	IsRecurring        bool       `json:"is_recurring"`
	RecurrenceType     *string    `json:"recurrence_type" binding:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceInterval *int       `json:"recurrence_interval" binding:"omitempty,min=1"`
	RecurrenceEndDate  *time.Time `json:"recurrence_end_date"`

	Tags         *[]string         `json:"tags"`
	Subtasks     *[]SubtaskRequest `json:"subtasks"`
	Dependencies *[]string         `json:"dependencies" binding:"omitempty,dive,uuid"`
}

// ExtendDueDateRequest asks for the due date to be pushed out by days.
type ExtendDueDateRequest struct {
	Days int `json:"days" binding:"required,min=1,max=365"`
}

// DependenciesRequest replaces a task's full "depends on" set.
type DependenciesRequest struct {
	Dependencies []string `json:"dependencies" binding:"dive,uuid"`
}

// SubtaskResponse mirrors one subtask.
type SubtaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Order       int    `json:"order"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskResponse mirrors a task with its tags and subtasks.
type TaskResponse struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Priority         string            `json:"priority"`
	Status           string            `json:"status"`
	CategoryID       *string           `json:"category_id,omitempty"`
	GoalID           *string           `json:"goal_id,omitempty"`
	DueDate          *string           `json:"due_date,omitempty"`
	DueTime          *string           `json:"due_time,omitempty"`
	EstimatedMinutes *int              `json:"estimated_minutes,omitempty"`
	CompletedAt      *string           `json:"completed_at,omitempty"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurrenceType   *string           `json:"recurrence_type,omitempty"`
	RecurrenceInterval *int            `json:"recurrence_interval,omitempty"`
	RecurrenceEndDate  *string         `json:"recurrence_end_date,omitempty"`
	Tags             []TagResponse     `json:"tags,omitempty"`
	Subtasks         []SubtaskResponse `json:"subtasks,omitempty"`
	CreatedAt        string            `json:"created_at"`
}

// TaskListResponse is one page of a task listing.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

func taskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:               task.ID.String(),
		Title:            task.Title,
		Description:      task.Description,
		Notes:            task.Notes,
		Priority:         task.Priority,
		Status:           task.Status,
		DueTime:          task.DueTime,
		EstimatedMinutes: task.EstimatedMinutes,
		IsRecurring:      task.IsRecurring,
		RecurrenceType:   task.RecurrenceType,
		RecurrenceInterval: task.RecurrenceInterval,
		CreatedAt:        task.CreatedAt.Format(time.RFC3339),
	}
	if task.CategoryID != nil {
		id := task.CategoryID.String()
		resp.CategoryID = &id
	}
	if task.GoalID != nil {
		id := task.GoalID.String()
		resp.GoalID = &id
	}
	if task.DueDate != nil {
		due := task.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	if task.RecurrenceEndDate != nil {
		end := task.RecurrenceEndDate.Format("2006-01-02")
		resp.RecurrenceEndDate = &end
	}
	if task.CompletedAt != nil {
		completed := task.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	for _, tag := range task.Tags {
		resp.Tags = append(resp.Tags, tagResponse(&tag))
	}
	for _, subtask := range task.Subtasks {
		resp.Subtasks = append(resp.Subtasks, SubtaskResponse{
			ID:          subtask.ID.String(),
			Title:       subtask.Title,
			Order:       subtask.Order,
			IsCompleted: subtask.IsCompleted,
		})
	}
	return resp
}

func (r *TaskRequest) toInput() (service.TaskInput, error) {
	input := service.TaskInput{
		Title:              r.Title,
		Description:        r.Description,
		Notes:              r.Notes,
		Priority:           r.Priority,
		Status:             r.Status,
		DueDate:            r.DueDate,
		DueTime:            r.DueTime,
		EstimatedMinutes:   r.EstimatedMinutes,
		IsRecurring:        r.IsRecurring,
		RecurrenceType:     r.RecurrenceType,
		RecurrenceInterval: r.RecurrenceInterval,
		RecurrenceEndDate:  r.RecurrenceEndDate,
	}

	if r.CategoryID != nil {
		id, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return input, err
		}
		input.CategoryID = &id
	}
	if r.GoalID != nil {
		id, err := uuid.Parse(*r.GoalID)
		if err != nil {
			return input, err
		}
		input.GoalID = &id
	}
	if r.Tags != nil {
		ids, err := parseUUIDs(*r.Tags)
		if err != nil {
			return input, err
		}
		input.Tags = ids
	}
	if r.Subtasks != nil {
		input.Subtasks = make([]service.SubtaskInput, 0, len(*r.Subtasks))
		for _, sub := range *r.Subtasks {
			input.Subtasks = append(input.Subtasks, service.SubtaskInput{
				Title:       sub.Title,
				Order:       sub.Order,
				IsCompleted: sub.IsCompleted,
			})
		}
	}
	if r.Dependencies != nil {
		ids, err := parseUUIDs(*r.Dependencies)
		if err != nil {
			return input, err
		}
		input.Dependencies = ids
	}

	return input, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create creates a new task for the authenticated user.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// List returns a filtered, sorted, paginated task listing.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	filter := repository.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		View:     c.Query("view"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sort"),
		SortDir:  c.Query("dir"),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("goal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
			return
		}
		filter.GoalID = &id
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
			return
		}
		filter.Page = page
	}

	page, err := h.tasks.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := TaskListResponse{
		Tasks:      make([]TaskResponse, 0, len(page.Tasks)),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	for i := range page.Tasks {
		resp.Tasks = append(resp.Tasks, taskResponse(&page.Tasks[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// GetByID returns a single task with its relations.
func (h *TaskHandler) GetByID(c *gin.Context) {
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

	task, err := h.tasks.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Update applies a full task update.
func (h *TaskHandler) Update(c *gin.Context) {
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

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, taskID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
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

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ToggleComplete flips a task between completed and pending.
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
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

	task, err := h.tasks.ToggleComplete(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Duplicate clones a task with its tags and subtasks.
func (h *TaskHandler) Duplicate(c *gin.Context) {
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

	task, err := h.tasks.Duplicate(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// ExtendDueDate pushes a task's due date out by N days.
func (h *TaskHandler) ExtendDueDate(c *gin.Context) {
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

	var req ExtendDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.ExtendDueDate(c.Request.Context(), userID, taskID, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// SetDependencies replaces the task's "depends on" set.
func (h *TaskHandler) SetDependencies(c *gin.Context) {
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

	var req DependenciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ids, err := parseUUIDs(req.Dependencies)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dependency ID format"})
		return
	}

	if err := h.tasks.SetDependencies(c.Request.Context(), userID, taskID, ids); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dependencies updated"})
}

// GetDependencies lists the tasks this task depends on.
func (h *TaskHandler) GetDependencies(c *gin.Context) {
	h.respondDependencyList(c, h.tasks.GetDependencies)
}

// GetDependents lists the tasks that depend on this task.
func (h *TaskHandler) GetDependents(c *gin.Context) {
	h.respondDependencyList(c, h.tasks.GetDependents)
}

func (h *TaskHandler) respondDependencyList(
	c *gin.Context,
	fetch func(ctx context.Context, userID, taskID uuid.UUID) ([]model.Task, error),
) {
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

	tasks, err := fetch(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, taskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

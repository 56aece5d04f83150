package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

// TemplateRequest defines the expected request body for creating or
// updating a task template.
type TemplateRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Description      string  `json:"description"`
	Priority         string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	CategoryID       *string `json:"category_id" binding:"omitempty,uuid"`
	EstimatedMinutes *int    `json:"estimated_minutes" binding:"omitempty,min=0"`
}

// TemplateResponse mirrors a task template.
type TemplateResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Priority         string  `json:"priority"`
	CategoryID       *string `json:"category_id,omitempty"`
	EstimatedMinutes *int    `json:"estimated_minutes,omitempty"`
}

func templateResponse(tmpl *model.TaskTemplate) TemplateResponse {
	resp := TemplateResponse{
		ID:               tmpl.ID.String(),
		Name:             tmpl.Name,
		Description:      tmpl.Description,
		Priority:         tmpl.Priority,
		EstimatedMinutes: tmpl.EstimatedMinutes,
	}
	if tmpl.CategoryID != nil {
		id := tmpl.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// TemplateHandler handles task template HTTP requests.
type TemplateHandler struct {
	templateRepo *repository.TemplateRepository
	tasks        *service.TaskService
}

func NewTemplateHandler(templateRepo *repository.TemplateRepository, tasks *service.TaskService) *TemplateHandler {
	return &TemplateHandler{templateRepo: templateRepo, tasks: tasks}
}

func (r *TemplateRequest) apply(tmpl *model.TaskTemplate) error {
	tmpl.Name = r.Name
	tmpl.Description = r.Description
	tmpl.Priority = model.PriorityMedium
	if r.Priority != "" {
		tmpl.Priority = r.Priority
	}
	tmpl.EstimatedMinutes = r.EstimatedMinutes
	tmpl.CategoryID = nil
	if r.CategoryID != nil {
		id, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return err
		}
		tmpl.CategoryID = &id
	}
	return nil
}

// Create creates a new task template.
func (h *TemplateHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tmpl := &model.TaskTemplate{UserID: userID}
	if err := req.apply(tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	if err := h.templateRepo.Create(c.Request.Context(), tmpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, templateResponse(tmpl))
}

// List returns all of the user's templates.
func (h *TemplateHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	templates, err := h.templateRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve templates"})
		return
	}

	resp := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		resp = append(resp, templateResponse(&templates[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Update modifies an existing template.
func (h *TemplateHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID format"})
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tmpl, err := h.templateRepo.GetByID(c.Request.Context(), userID, templateID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := req.apply(tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}
	if err := h.templateRepo.Update(c.Request.Context(), tmpl); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, templateResponse(tmpl))
}

// Delete removes a template.
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID format"})
		return
	}

	if err := h.templateRepo.Delete(c.Request.Context(), userID, templateID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// CreateTask instantiates a pending task from the template.
func (h *TemplateHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID format"})
		return
	}

	task, err := h.tasks.CreateFromTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// CreateFromTask extracts a reusable template from an existing task.
func (h *TemplateHandler) CreateFromTask(c *gin.Context) {
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

	tmpl, err := h.tasks.CreateTemplateFromTask(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, templateResponse(tmpl))
}

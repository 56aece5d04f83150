package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// CategoryRequest defines the expected request body for creating or
// updating a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// CategoryResponse mirrors a category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

func categoryResponse(category *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Color:       category.Color,
		Description: category.Description,
	}
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryHandler(categoryRepo *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

// Create creates a new category for the authenticated user.
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category := &model.Category{
		UserID:      userID,
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	}
	if err := h.categoryRepo.Create(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, categoryResponse(category))
}

// List returns all of the user's categories.
func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	categories, err := h.categoryRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, categoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID returns a single category.
func (h *CategoryHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	category, err := h.categoryRepo.GetByID(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse(category))
}

// Update modifies an existing category.
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category, err := h.categoryRepo.GetByID(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	category.Name = req.Name
	category.Color = req.Color
	category.Description = req.Description
	if err := h.categoryRepo.Update(c.Request.Context(), category); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse(category))
}

// Delete removes a category. Tasks keep working, their category
// reference is simply left dangling until edited.
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	if err := h.categoryRepo.Delete(c.Request.Context(), userID, categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

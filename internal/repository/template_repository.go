package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create adds a new template to the database
func (r *TemplateRepository) Create(ctx context.Context, tmpl *model.TaskTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

// GetByID retrieves a template owned by userID.
func (r *TemplateRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.TaskTemplate, error) {
	var tmpl model.TaskTemplate
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&tmpl, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, result.Error
	}
	return &tmpl, nil
}

// ListByUser retrieves all templates for a user, newest first.
func (r *TemplateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&templates)
	if result.Error != nil {
		return nil, result.Error
	}
	return templates, nil
}

// Update updates an existing template
func (r *TemplateRepository) Update(ctx context.Context, tmpl *model.TaskTemplate) error {
	result := r.db.WithContext(ctx).Save(tmpl)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Delete removes a template owned by userID.
func (r *TemplateRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.TaskTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create adds a new attachment record to the database
func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.TaskAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// GetByID retrieves an attachment by its ID.
func (r *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskAttachment, error) {
	var attachment model.TaskAttachment
	result := r.db.WithContext(ctx).First(&attachment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, result.Error
	}
	return &attachment, nil
}

// ListByTask retrieves all attachments of a task.
func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.TaskAttachment, error) {
	var attachments []model.TaskAttachment
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at").Find(&attachments)
	if result.Error != nil {
		return nil, result.Error
	}
	return attachments, nil
}

// Delete removes an attachment record.
func (r *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TaskAttachment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}

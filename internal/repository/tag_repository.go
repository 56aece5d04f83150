package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create adds a new tag to the database
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetByID retrieves a tag owned by userID.
func (r *TagRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&tag, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, result.Error
	}
	return &tag, nil
}

// ListByUser retrieves all tags for a user.
func (r *TagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// CountExisting returns how many of the given tag ids belong to userID.
func (r *TagRepository) CountExisting(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Count(&count).Error
	return count, err
}

// Update updates an existing tag
func (r *TagRepository) Update(ctx context.Context, tag *model.Tag) error {
	result := r.db.WithContext(ctx).Save(tag)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// Delete removes a tag and its task associations.
func (r *TagRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ?", userID).Delete(&model.Tag{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return tx.Exec("DELETE FROM task_tags WHERE tag_id = ?", id).Error
	})
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create adds a new goal to the database
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// GetByID retrieves a goal owned by userID.
func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, result.Error
	}
	return &goal, nil
}

// GetWithRelations retrieves a goal with milestones and tasks preloaded.
func (r *GoalRepository) GetWithRelations(ctx context.Context, userID, id uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	result := r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("quarter") }).
		Preload("Tasks").
		Where("user_id = ?", userID).
		First(&goal, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, result.Error
	}
	return &goal, nil
}

// ListByUser retrieves all goals for a user, newest first.
func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	result := r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("quarter") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// ListActive retrieves goals not yet completed.
func (r *GoalRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status != ?", userID, model.GoalCompleted).
		Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// Update updates an existing goal
func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	result := r.db.WithContext(ctx).Save(goal)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// Delete soft-deletes a goal owned by userID.
func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Goal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

// AnalyticsRepository runs the aggregate queries behind the analytics
// and dashboard pages.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// TaskTotals summarizes a user's tasks for dashboards.
type TaskTotals struct {
	Total      int64
	Completed  int64
	Pending    int64
	InProgress int64
	Overdue    int64
}

// GoalTotals summarizes a user's goals.
type GoalTotals struct {
	Total     int64
	Completed int64
	Active    int64
}

// NamedCount is a (label, count) pair for chart series.
type NamedCount struct {
	Name  string `gorm:"column:name"`
	Count int64  `gorm:"column:count"`
}

// CountTasksByStatus groups a user's tasks by status.
func (r *AnalyticsRepository) CountTasksByStatus(ctx context.Context, userID uuid.UUID) ([]NamedCount, error) {
	return r.countTasksGrouped(ctx, userID, "status")
}

// CountTasksByPriority groups a user's tasks by priority.
func (r *AnalyticsRepository) CountTasksByPriority(ctx context.Context, userID uuid.UUID) ([]NamedCount, error) {
	return r.countTasksGrouped(ctx, userID, "priority")
}

func (r *AnalyticsRepository) countTasksGrouped(ctx context.Context, userID uuid.UUID, column string) ([]NamedCount, error) {
	var counts []NamedCount
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(column+" AS name, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group(column).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// CountTasksByCategory groups a user's categorized tasks by category name.
func (r *AnalyticsRepository) CountTasksByCategory(ctx context.Context, userID uuid.UUID) ([]NamedCount, error) {
	var counts []NamedCount
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("categories.name AS name, COUNT(*) AS count").
		Joins("JOIN categories ON tasks.category_id = categories.id").
		Where("tasks.user_id = ?", userID).
		Group("categories.name").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// CountCreatedBetween counts tasks created within [from, to).
func (r *AnalyticsRepository) CountCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}

// CountCreatedThrough counts tasks created up to and including through.
func (r *AnalyticsRepository) CountCreatedThrough(ctx context.Context, userID uuid.UUID, through time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND created_at < ?", userID, through).
		Count(&count).Error
	return count, err
}

// CountCompletedThrough counts tasks completed up to and including through.
func (r *AnalyticsRepository) CountCompletedThrough(ctx context.Context, userID uuid.UUID, through time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND completed_at IS NOT NULL AND completed_at < ?", userID, through).
		Count(&count).Error
	return count, err
}

// CountCompletedBetween counts tasks completed within [from, to).
func (r *AnalyticsRepository) CountCompletedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}

// TaskTotals gathers summary task counts; overdue is relative to now.
func (r *AnalyticsRepository) TaskTotals(ctx context.Context, userID uuid.UUID, now time.Time) (*TaskTotals, error) {
	totals := &TaskTotals{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&totals.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", model.StatusCompleted).Count(&totals.Completed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", model.StatusPending).Count(&totals.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", model.StatusInProgress).Count(&totals.InProgress).Error; err != nil {
		return nil, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := base().Where("status != ? AND due_date < ?", model.StatusCompleted, today).Count(&totals.Overdue).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// GoalTotals gathers summary goal counts.
func (r *AnalyticsRepository) GoalTotals(ctx context.Context, userID uuid.UUID) (*GoalTotals, error) {
	totals := &GoalTotals{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Goal{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&totals.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", model.GoalCompleted).Count(&totals.Completed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", model.GoalInProgress).Count(&totals.Active).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// CountCategories counts a user's categories.
func (r *AnalyticsRepository) CountCategories(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountTags counts a user's tags.
func (r *AnalyticsRepository) CountTags(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

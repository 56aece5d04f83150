package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type TimeLogRepository struct {
	db *gorm.DB
}

func NewTimeLogRepository(db *gorm.DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

// Create adds a new time log entry to the database
func (r *TimeLogRepository) Create(ctx context.Context, entry *model.TimeLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByTask retrieves all time logs of a task, oldest first.
func (r *TimeLogRepository) ListByTask(ctx context.Context, userID, taskID uuid.UUID) ([]model.TimeLog, error) {
	var entries []model.TimeLog
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Order("started_at").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// TotalMinutes sums logged duration for a task.
func (r *TimeLogRepository) TotalMinutes(ctx context.Context, userID, taskID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.TimeLog{}).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return total, err
}

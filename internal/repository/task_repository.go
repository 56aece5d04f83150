package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

// TaskPageSize is the fixed page size for task listings.
const TaskPageSize = 50

// TaskFilter narrows a task listing. Zero values mean "not filtered".
// All predicates combine with AND; Search matches title, description
// or notes case-insensitively.
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID *uuid.UUID
	GoalID     *uuid.UUID
	View       string // today | week | month | year | overdue
	Search     string
	SortBy     string
	SortDir    string
	Page       int
}

// TaskPage is one page of a filtered task listing.
type TaskPage struct {
	Tasks      []model.Task
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}

// Sortable listing columns. Anything else falls back to created_at.
var taskSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"title":      true,
	"priority":   true,
	"status":     true,
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit("Tags", "Subtasks", "Dependencies", "Dependents").Create(task).Error
}

// GetByID retrieves a task owned by userID.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetWithRelations retrieves a task with tags and subtasks preloaded.
func (r *TaskRepository) GetWithRelations(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Where("user_id = ?", userID).
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Omit("Tags", "Subtasks", "Dependencies", "Dependents").Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete soft-deletes a task owned by userID. Subtasks and dependency
// edges on either side are removed as part of the same transaction.
func (r *TaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if err := tx.Exec(
			"DELETE FROM task_dependencies WHERE task_id = ? OR depends_on_task_id = ?",
			id, id,
		).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&model.Subtask{}).Error; err != nil {
			return err
		}

		return tx.Delete(&task).Error
	})
}

// List returns one page of userID's tasks matching the filter. Date
// views are resolved relative to now; weeks start on Monday.
func (r *TaskRepository) List(ctx context.Context, userID uuid.UUID, f TaskFilter, now time.Time) (*TaskPage, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.GoalID != nil {
		q = q.Where("goal_id = ?", *f.GoalID)
	}

	switch f.View {
	case "today":
		start := startOfDay(now)
		q = q.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 1))
	case "week":
		start := startOfWeek(now)
		q = q.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 7))
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 1, 0))
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("due_date >= ? AND due_date < ?", start, start.AddDate(1, 0, 0))
	case "overdue":
		// Due today is not overdue yet, only dates strictly before.
		q = q.Where("due_date < ? AND status != ?", startOfDay(now), model.StatusCompleted)
	}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(notes) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	sortBy := f.SortBy
	if !taskSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortDir := "desc"
	if strings.EqualFold(f.SortDir, "asc") {
		sortDir = "asc"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var tasks []model.Task
	err := q.
		Preload("Tags").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Order(fmt.Sprintf("%s %s", sortBy, sortDir)).
		Offset((page - 1) * TaskPageSize).
		Limit(TaskPageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + TaskPageSize - 1) / TaskPageSize)

	return &TaskPage{
		Tasks:      tasks,
		TotalCount: total,
		Page:       page,
		PageSize:   TaskPageSize,
		TotalPages: totalPages,
	}, nil
}

// ListRecurring retrieves every recurring definition across all users,
// with the relations the sweep clones preloaded.
func (r *TaskRepository) ListRecurring(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Where("is_recurring = ? AND recurrence_type IS NOT NULL", true).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// OccurrenceExists reports whether userID already has a task with the
// given title due on dueDate. This is the sweep's sole duplicate guard.
func (r *TaskRepository) OccurrenceExists(ctx context.Context, userID uuid.UUID, title string, dueDate time.Time) (bool, error) {
	var count int64
	start := startOfDay(dueDate)
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND title = ? AND due_date >= ? AND due_date < ?",
			userID, title, start, start.AddDate(0, 0, 1)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountExisting returns how many of the given task ids reference a live
// task row, regardless of owner.
func (r *TaskRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// ReplaceTags replaces the full tag set of a task (set-replace, not
// additive).
func (r *TaskRepository) ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", taskID).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := tx.Exec(
				"INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				taskID, tagID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceSubtasks deletes the existing subtask set and recreates it.
func (r *TaskRepository) ReplaceSubtasks(ctx context.Context, taskID uuid.UUID, subtasks []model.Subtask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Subtask{}).Error; err != nil {
			return err
		}
		for i := range subtasks {
			subtasks[i].ID = uuid.Nil
			subtasks[i].TaskID = taskID
			if err := tx.Create(&subtasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateSubtask appends a single subtask to a task.
func (r *TaskRepository) CreateSubtask(ctx context.Context, subtask *model.Subtask) error {
	return r.db.WithContext(ctx).Create(subtask).Error
}

// SetDependencies replaces all "depends on" edges of a task with
// exactly the given targets.
func (r *TaskRepository) SetDependencies(ctx context.Context, taskID uuid.UUID, dependsOn []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_dependencies WHERE task_id = ?", taskID).Error; err != nil {
			return err
		}
		for _, depID := range dependsOn {
			if err := tx.Exec(
				"INSERT INTO task_dependencies (task_id, depends_on_task_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				taskID, depID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetDependencies retrieves the tasks that must complete before taskID.
func (r *TaskRepository) GetDependencies(ctx context.Context, taskID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN task_dependencies ON task_dependencies.depends_on_task_id = tasks.id").
		Where("task_dependencies.task_id = ?", taskID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetDependents retrieves the tasks that require taskID to complete first.
func (r *TaskRepository) GetDependents(ctx context.Context, taskID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN task_dependencies ON task_dependencies.task_id = tasks.id").
		Where("task_dependencies.depends_on_task_id = ?", taskID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListUpcoming returns up to limit incomplete tasks due within [from, to),
// soonest first.
func (r *TaskRepository) ListUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ? AND status != ? AND due_date >= ? AND due_date < ?",
			userID, model.StatusCompleted, from, to).
		Order("due_date").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// startOfDay anchors t's calendar date at UTC midnight, matching how
// due dates are normalized on the way in.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Monday of t's week at midnight.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(t).AddDate(0, 0, -(weekday - 1))
}

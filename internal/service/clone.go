package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// CloneOptions selects what a task clone carries over. Dependency edges
// are never copied; a clone starts with none.
type CloneOptions struct {
	// Title overrides the source title when non-empty.
	Title string
	// DueDate overrides the source due date when set.
	DueDate *time.Time
	// CopyTags carries the source's tag associations verbatim.
	CopyTags bool
	// CopySubtasks carries the source's subtasks with completion reset.
	CopySubtasks bool
}

// CloneTask replicates src as a fresh pending task. It backs task
// duplication, recurrence spawning and template instantiation, which
// differ only in the options they pass. src must have Tags and Subtasks
// preloaded when the corresponding option is set.
func CloneTask(ctx context.Context, tasks *repository.TaskRepository, src *model.Task, opts CloneOptions) (*model.Task, error) {
	clone := &model.Task{
		UserID:             src.UserID,
		CategoryID:         src.CategoryID,
		GoalID:             src.GoalID,
		Title:              src.Title,
		Description:        src.Description,
		Notes:              src.Notes,
		Priority:           src.Priority,
		Status:             model.StatusPending,
		DueDate:            src.DueDate,
		DueTime:            src.DueTime,
		EstimatedMinutes:   src.EstimatedMinutes,
		CompletedAt:        nil,
		IsRecurring:        src.IsRecurring,
		RecurrenceType:     src.RecurrenceType,
		RecurrenceInterval: src.RecurrenceInterval,
		RecurrenceEndDate:  src.RecurrenceEndDate,
	}
	if opts.Title != "" {
		clone.Title = opts.Title
	}
	if opts.DueDate != nil {
		clone.DueDate = opts.DueDate
	}

	if err := tasks.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("create clone: %w", err)
	}

	if opts.CopyTags && len(src.Tags) > 0 {
		tagIDs := make([]uuid.UUID, 0, len(src.Tags))
		for _, tag := range src.Tags {
			tagIDs = append(tagIDs, tag.ID)
		}
		if err := tasks.ReplaceTags(ctx, clone.ID, tagIDs); err != nil {
			return nil, fmt.Errorf("copy tags: %w", err)
		}
	}

	if opts.CopySubtasks {
		for _, subtask := range src.Subtasks {
			dup := &model.Subtask{
				TaskID:      clone.ID,
				Title:       subtask.Title,
				Order:       subtask.Order,
				IsCompleted: false,
			}
			if err := tasks.CreateSubtask(ctx, dup); err != nil {
				return nil, fmt.Errorf("copy subtask: %w", err)
			}
		}
	}

	return clone, nil
}

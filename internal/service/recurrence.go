package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// SweepResult reports one pass of the recurrence sweep.
type SweepResult struct {
	Generated int
	Failed    int
}

// RecurrenceService spawns the next occurrence of recurring task
// definitions. It is meant to run as a singleton periodic job; repeat
// runs on the same day are harmless because an occurrence is only
// created once per (owner, title, due date).
type RecurrenceService struct {
	tasks *repository.TaskRepository
	now   func() time.Time
}

func NewRecurrenceService(tasks *repository.TaskRepository) *RecurrenceService {
	return &RecurrenceService{tasks: tasks, now: time.Now}
}

// RunSweep walks every recurring definition across all users and spawns
// the occurrences that are due. A failure on one definition is counted
// and logged but does not stop the sweep.
func (s *RecurrenceService) RunSweep(ctx context.Context) (SweepResult, error) {
	definitions, err := s.tasks.ListRecurring(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	today := DateOnly(s.now())
	var result SweepResult

	for i := range definitions {
		def := &definitions[i]
		generated, err := s.sweepOne(ctx, def, today)
		if err != nil {
			log.Error().Err(err).
				Str("task_id", def.ID.String()).
				Str("title", def.Title).
				Msg("failed to generate occurrence")
			result.Failed++
			continue
		}
		if generated {
			result.Generated++
		}
	}

	log.Info().
		Int("definitions", len(definitions)).
		Int("generated", result.Generated).
		Int("failed", result.Failed).
		Msg("recurrence sweep finished")

	return result, nil
}

// sweepOne decides whether def is due for a new occurrence and spawns
// it. It reports whether an occurrence was created.
func (s *RecurrenceService) sweepOne(ctx context.Context, def *model.Task, today time.Time) (bool, error) {
	// An end date in the past stops generation for good, regardless of
	// the definition's own due date.
	if def.RecurrenceEndDate != nil && DateOnly(*def.RecurrenceEndDate).Before(today) {
		return false, nil
	}

	// Without a due date there is nothing to advance from.
	if def.DueDate == nil || def.RecurrenceType == nil {
		return false, nil
	}

	interval := 1
	if def.RecurrenceInterval != nil {
		interval = *def.RecurrenceInterval
	}

	next, ok := NextOccurrence(DateOnly(*def.DueDate), *def.RecurrenceType, interval)
	if !ok {
		return false, nil
	}

	// Only spawn once the computed date is today or earlier.
	if next.After(today) {
		return false, nil
	}

	exists, err := s.tasks.OccurrenceExists(ctx, def.UserID, def.Title, next)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	occurrence, err := CloneTask(ctx, s.tasks, def, CloneOptions{
		DueDate:      &next,
		CopyTags:     true,
		CopySubtasks: true,
	})
	if err != nil {
		return false, err
	}

	log.Debug().
		Str("task_id", occurrence.ID.String()).
		Str("title", occurrence.Title).
		Time("due_date", next).
		Msg("created recurring occurrence")

	return true, nil
}

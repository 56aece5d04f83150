package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// SubtaskInput is one checklist item in a task payload.
type SubtaskInput struct {
	Title       string
	Order       *int
	IsCompleted bool
}

// TaskInput carries a validated create/update payload. The Tags,
// Subtasks and Dependencies slices use nil to mean "leave unchanged"
// and an empty slice to mean "clear".
type TaskInput struct {
	Title            string
	Description      string
	Notes            string
	Priority         string
	Status           string
	CategoryID       *uuid.UUID
	GoalID           *uuid.UUID
	DueDate          *time.Time
	DueTime          *string
	EstimatedMinutes *int

	IsRecurring        bool
	RecurrenceType     *string
	RecurrenceInterval *int
	RecurrenceEndDate  *time.Time

	Tags         []uuid.UUID
	Subtasks     []SubtaskInput
	Dependencies []uuid.UUID
}

// TaskService implements the task lifecycle: CRUD, duplication, status
// toggling, due-date extension, dependency management and template
// instantiation. Every operation is scoped to the owning user.
type TaskService struct {
	tasks      *repository.TaskRepository
	tags       *repository.TagRepository
	categories *repository.CategoryRepository
	goals      *repository.GoalRepository
	templates  *repository.TemplateRepository
	now        func() time.Time
}

func NewTaskService(
	tasks *repository.TaskRepository,
	tags *repository.TagRepository,
	categories *repository.CategoryRepository,
	goals *repository.GoalRepository,
	templates *repository.TemplateRepository,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		tags:       tags,
		categories: categories,
		goals:      goals,
		templates:  templates,
		now:        time.Now,
	}
}

func (s *TaskService) validate(input *TaskInput) error {
	if input.Title == "" {
		return invalidf("title is required")
	}
	if len(input.Title) > 255 {
		return invalidf("title must be at most 255 characters")
	}
	if input.Priority != "" && !model.ValidPriority(input.Priority) {
		return invalidf("unknown priority %q", input.Priority)
	}
	if input.Status != "" && !model.ValidStatus(input.Status) {
		return invalidf("unknown status %q", input.Status)
	}
	if input.EstimatedMinutes != nil && *input.EstimatedMinutes < 0 {
		return invalidf("estimated minutes must not be negative")
	}
	if input.IsRecurring {
		if input.RecurrenceType == nil {
			return invalidf("recurring task requires a recurrence type")
		}
		if !model.ValidRecurrenceType(*input.RecurrenceType) {
			return invalidf("unknown recurrence type %q", *input.RecurrenceType)
		}
	}
	if input.RecurrenceInterval != nil && *input.RecurrenceInterval < 1 {
		return invalidf("recurrence interval must be at least 1")
	}
	return nil
}

// checkReferences verifies category and goal ownership for the input.
func (s *TaskService) checkReferences(ctx context.Context, userID uuid.UUID, input *TaskInput) error {
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *input.CategoryID); err != nil {
			return err
		}
	}
	if input.GoalID != nil {
		if _, err := s.goals.GetByID(ctx, userID, *input.GoalID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) applyInput(task *model.Task, input *TaskInput) {
	task.Title = input.Title
	task.Description = input.Description
	task.Notes = input.Notes
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	task.CategoryID = input.CategoryID
	task.GoalID = input.GoalID
	if input.DueDate != nil {
		due := DateOnly(*input.DueDate)
		task.DueDate = &due
	} else {
		task.DueDate = nil
	}
	task.DueTime = input.DueTime
	task.EstimatedMinutes = input.EstimatedMinutes
	task.IsRecurring = input.IsRecurring
	task.RecurrenceType = input.RecurrenceType
	task.RecurrenceInterval = input.RecurrenceInterval
	if input.RecurrenceEndDate != nil {
		end := DateOnly(*input.RecurrenceEndDate)
		task.RecurrenceEndDate = &end
	} else {
		task.RecurrenceEndDate = nil
	}
}

// setStatus applies a status change with completed_at bookkeeping:
// the timestamp is set exactly when the task transitions to completed
// and cleared when it transitions away.
func (s *TaskService) setStatus(task *model.Task, status string) {
	if status == task.Status {
		return
	}
	if status == model.StatusCompleted {
		completedAt := s.now()
		task.CompletedAt = &completedAt
	} else {
		task.CompletedAt = nil
	}
	task.Status = status
}

// Create validates the payload and creates a task (with tags, subtasks
// and dependencies when provided) for userID. Nothing is persisted when
// validation fails.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, input TaskInput) (*model.Task, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, &input); err != nil {
		return nil, err
	}
	if err := s.checkTagOwnership(ctx, userID, input.Tags); err != nil {
		return nil, err
	}
	if err := s.checkDependencyRefs(ctx, input.Dependencies); err != nil {
		return nil, err
	}

	task := &model.Task{UserID: userID, Status: model.StatusPending, Priority: model.PriorityMedium}
	s.applyInput(task, &input)
	if input.Status != "" {
		s.setStatus(task, input.Status)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if input.Tags != nil {
		if err := s.tasks.ReplaceTags(ctx, task.ID, input.Tags); err != nil {
			return nil, err
		}
	}
	if input.Subtasks != nil {
		if err := s.tasks.ReplaceSubtasks(ctx, task.ID, subtaskRows(input.Subtasks, false)); err != nil {
			return nil, err
		}
	}
	if input.Dependencies != nil {
		if err := s.tasks.SetDependencies(ctx, task.ID, dedupe(input.Dependencies)); err != nil {
			return nil, err
		}
	}

	return s.tasks.GetWithRelations(ctx, userID, task.ID)
}

// Get retrieves a task with its relations.
func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	return s.tasks.GetWithRelations(ctx, userID, taskID)
}

// List returns a filtered, sorted, paginated page of the user's tasks.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, filter repository.TaskFilter) (*repository.TaskPage, error) {
	return s.tasks.List(ctx, userID, filter, s.now())
}

// Update validates and applies a full task update. Subtask sets are
// replaced wholesale, tag and dependency sets are synced.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, input TaskInput) (*model.Task, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, userID, &input); err != nil {
		return nil, err
	}
	if err := s.checkTagOwnership(ctx, userID, input.Tags); err != nil {
		return nil, err
	}
	if err := s.checkDependencyRefs(ctx, input.Dependencies); err != nil {
		return nil, err
	}

	s.applyInput(task, &input)
	if input.Status != "" {
		s.setStatus(task, input.Status)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if input.Tags != nil {
		if err := s.tasks.ReplaceTags(ctx, task.ID, input.Tags); err != nil {
			return nil, err
		}
	}
	if input.Subtasks != nil {
		if err := s.tasks.ReplaceSubtasks(ctx, task.ID, subtaskRows(input.Subtasks, true)); err != nil {
			return nil, err
		}
	}
	if input.Dependencies != nil {
		if err := s.tasks.SetDependencies(ctx, task.ID, dedupe(input.Dependencies)); err != nil {
			return nil, err
		}
	}

	return s.tasks.GetWithRelations(ctx, userID, task.ID)
}

// Delete removes a task together with its subtasks and dependency
// edges on both sides.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.tasks.Delete(ctx, userID, taskID)
}

// ToggleComplete flips a task between completed and pending.
func (s *TaskService) ToggleComplete(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == model.StatusCompleted {
		s.setStatus(task, model.StatusPending)
	} else {
		s.setStatus(task, model.StatusCompleted)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Duplicate clones a task (tags and subtasks carried over, subtasks
// reset to incomplete, no dependency edges) under a "(Copy)" title.
func (s *TaskService) Duplicate(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	src, err := s.tasks.GetWithRelations(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	dup, err := CloneTask(ctx, s.tasks, src, CloneOptions{
		Title:        src.Title + " (Copy)",
		CopyTags:     true,
		CopySubtasks: true,
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.GetWithRelations(ctx, userID, dup.ID)
}

// ExtendDueDate pushes the task's due date out by the given number of
// days. Tasks without a due date are returned unchanged.
func (s *TaskService) ExtendDueDate(ctx context.Context, userID, taskID uuid.UUID, days int) (*model.Task, error) {
	if days < 1 || days > 365 {
		return nil, invalidf("days must be between 1 and 365")
	}

	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.DueDate != nil {
		extended := AddDays(DateOnly(*task.DueDate), days)
		task.DueDate = &extended
		if err := s.tasks.Update(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// SetDependencies replaces the task's "depends on" set with exactly the
// given ids. Each id must reference an existing task; cycles and
// cross-owner edges are not rejected.
func (s *TaskService) SetDependencies(ctx context.Context, userID, taskID uuid.UUID, dependsOn []uuid.UUID) error {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return err
	}
	deps := dedupe(dependsOn)
	if err := s.checkDependencyRefs(ctx, deps); err != nil {
		return err
	}
	return s.tasks.SetDependencies(ctx, taskID, deps)
}

// GetDependencies lists the tasks that must complete before taskID.
func (s *TaskService) GetDependencies(ctx context.Context, userID, taskID uuid.UUID) ([]model.Task, error) {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.tasks.GetDependencies(ctx, taskID)
}

// GetDependents lists the tasks waiting on taskID.
func (s *TaskService) GetDependents(ctx context.Context, userID, taskID uuid.UUID) ([]model.Task, error) {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.tasks.GetDependents(ctx, taskID)
}

// CreateFromTemplate instantiates a pending task from a template.
func (s *TaskService) CreateFromTemplate(ctx context.Context, userID, templateID uuid.UUID) (*model.Task, error) {
	tmpl, err := s.templates.GetByID(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		UserID:           userID,
		CategoryID:       tmpl.CategoryID,
		Title:            tmpl.Name,
		Description:      tmpl.Description,
		Priority:         tmpl.Priority,
		Status:           model.StatusPending,
		EstimatedMinutes: tmpl.EstimatedMinutes,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTemplateFromTask saves an existing task's shape as a template.
func (s *TaskService) CreateTemplateFromTask(ctx context.Context, userID, taskID uuid.UUID) (*model.TaskTemplate, error) {
	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	tmpl := &model.TaskTemplate{
		UserID:           userID,
		CategoryID:       task.CategoryID,
		Name:             task.Title,
		Description:      task.Description,
		Priority:         task.Priority,
		EstimatedMinutes: task.EstimatedMinutes,
	}
	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *TaskService) checkTagOwnership(ctx context.Context, userID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	ids := dedupe(tagIDs)
	count, err := s.tags.CountExisting(ctx, userID, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return repository.ErrTagNotFound
	}
	return nil
}

// checkDependencyRefs verifies every dependency id references a live
// task. Ownership is not checked.
func (s *TaskService) checkDependencyRefs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	deps := dedupe(ids)
	count, err := s.tasks.CountExisting(ctx, deps)
	if err != nil {
		return err
	}
	if count != int64(len(deps)) {
		return invalidf("dependency references a task that does not exist")
	}
	return nil
}

// subtaskRows converts inputs to model rows, defaulting order to the
// list position. keepCompletion preserves the incoming completion flag
// (update semantics); otherwise every row starts incomplete.
func subtaskRows(inputs []SubtaskInput, keepCompletion bool) []model.Subtask {
	rows := make([]model.Subtask, 0, len(inputs))
	for i, in := range inputs {
		order := i
		if in.Order != nil {
			order = *in.Order
		}
		completed := false
		if keepCompletion {
			completed = in.IsCompleted
		}
		rows = append(rows, model.Subtask{
			Title:       in.Title,
			Order:       order,
			IsCompleted: completed,
		})
	}
	return rows
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

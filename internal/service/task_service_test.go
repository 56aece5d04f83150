package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

func TestTaskService_Create_Defaults(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	task, err := env.taskSvc.Create(context.Background(), env.user.ID, TaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Nil(t, task.CompletedAt)
	assert.Empty(t, task.Tags)
	assert.Empty(t, task.Subtasks)
}

func TestTaskService_Create_Validation(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	_, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.taskSvc.Create(ctx, env.user.ID, TaskInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.taskSvc.Create(ctx, env.user.ID, TaskInput{Title: "x", IsRecurring: true})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.taskSvc.Create(ctx, env.user.ID, TaskInput{
		Title:              "x",
		IsRecurring:        true,
		RecurrenceType:     strPtr(model.RecurrenceDaily),
		RecurrenceInterval: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_Create_RejectsForeignTag(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	foreign := env.createTag(t, env.otherUser.ID, "not yours")

	_, err := env.taskSvc.Create(context.Background(), env.user.ID, TaskInput{
		Title: "Tagged",
		Tags:  []uuid.UUID{foreign.ID},
	})
	assert.ErrorIs(t, err, repository.ErrTagNotFound)
}

func TestTaskService_Update_NilLeavesRelationsAlone(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	tag := env.createTag(t, env.user.ID, "keep me")
	task, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{
		Title: "Has a tag",
		Tags:  []uuid.UUID{tag.ID},
		Subtasks: []SubtaskInput{
			{Title: "step one"},
		},
	})
	require.NoError(t, err)
	require.Len(t, task.Tags, 1)
	require.Len(t, task.Subtasks, 1)

	// Nil slices mean "leave unchanged".
	updated, err := env.taskSvc.Update(ctx, env.user.ID, task.ID, TaskInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Len(t, updated.Tags, 1)
	assert.Len(t, updated.Subtasks, 1)

	// Empty slices mean "clear".
	cleared, err := env.taskSvc.Update(ctx, env.user.ID, task.ID, TaskInput{
		Title:    "Renamed",
		Tags:     []uuid.UUID{},
		Subtasks: []SubtaskInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
	assert.Empty(t, cleared.Subtasks)
}

func TestTaskService_Update_NotOwned(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{Title: "Private"})
	require.NoError(t, err)

	_, err = env.taskSvc.Update(ctx, env.otherUser.ID, task.ID, TaskInput{Title: "Stolen"})
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestTaskService_ToggleComplete(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{Title: "Flip me"})
	require.NoError(t, err)

	done, err := env.taskSvc.ToggleComplete(ctx, env.user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(now))

	back, err := env.taskSvc.ToggleComplete(ctx, env.user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, back.Status)
	assert.Nil(t, back.CompletedAt)
}

func TestTaskService_Duplicate(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	tag := env.createTag(t, env.user.ID, "shared")
	src, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{
		Title:   "Original",
		DueDate: datePtr(2024, time.March, 10),
		Tags:    []uuid.UUID{tag.ID},
		Subtasks: []SubtaskInput{
			{Title: "a"},
			{Title: "b"},
		},
		Status: model.StatusInProgress,
	})
	require.NoError(t, err)

	blocker := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "Blocker"})
	require.NoError(t, env.taskSvc.SetDependencies(ctx, env.user.ID, src.ID, []uuid.UUID{blocker.ID}))

	dup, err := env.taskSvc.Duplicate(ctx, env.user.ID, src.ID)
	require.NoError(t, err)

	assert.Equal(t, "Original (Copy)", dup.Title)
	assert.Equal(t, model.StatusPending, dup.Status)
	assert.Len(t, dup.Tags, 1)
	assert.Len(t, dup.Subtasks, 2)

	deps, err := env.taskSvc.GetDependencies(ctx, env.user.ID, dup.ID)
	require.NoError(t, err)
	assert.Empty(t, deps, "dependency edges must not be copied")
}

func TestTaskService_ExtendDueDate(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{
		Title:   "Push me out",
		DueDate: datePtr(2024, time.March, 4),
	})
	require.NoError(t, err)

	extended, err := env.taskSvc.ExtendDueDate(ctx, env.user.ID, task.ID, 10)
	require.NoError(t, err)
	require.NotNil(t, extended.DueDate)
	assert.True(t, extended.DueDate.Equal(time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)))

	_, err = env.taskSvc.ExtendDueDate(ctx, env.user.ID, task.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.taskSvc.ExtendDueDate(ctx, env.user.ID, task.ID, 400)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_ExtendDueDate_NoDueDate(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{Title: "Undated"})
	require.NoError(t, err)

	same, err := env.taskSvc.ExtendDueDate(ctx, env.user.ID, task.ID, 5)
	require.NoError(t, err)
	assert.Nil(t, same.DueDate)
}

func TestTaskService_SetDependencies_SetReplace(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "Dependent"})
	a := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "A"})
	b := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "B"})
	c := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "C"})

	require.NoError(t, env.taskSvc.SetDependencies(ctx, env.user.ID, task.ID, []uuid.UUID{a.ID, b.ID}))

	require.NoError(t, env.taskSvc.SetDependencies(ctx, env.user.ID, task.ID, []uuid.UUID{b.ID, c.ID}))

	deps, err := env.taskSvc.GetDependencies(ctx, env.user.ID, task.ID)
	require.NoError(t, err)
	got := make(map[string]bool, len(deps))
	for _, dep := range deps {
		got[dep.Title] = true
	}
	assert.Equal(t, map[string]bool{"B": true, "C": true}, got)

	dependents, err := env.taskSvc.GetDependents(ctx, env.user.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, dependents, 1)
	assert.Equal(t, "Dependent", dependents[0].Title)
}

func TestTaskService_SetDependencies_MissingReference(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "Dependent"})

	err := env.taskSvc.SetDependencies(ctx, env.user.ID, task.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_Delete_RemovesEdgesAndSubtasks(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{
		Title:    "Doomed",
		Subtasks: []SubtaskInput{{Title: "child"}},
	})
	require.NoError(t, err)

	other := env.createTask(t, &model.Task{UserID: env.user.ID, Title: "Survivor"})
	require.NoError(t, env.taskSvc.SetDependencies(ctx, env.user.ID, other.ID, []uuid.UUID{task.ID}))

	require.NoError(t, env.taskSvc.Delete(ctx, env.user.ID, task.ID))

	_, err = env.taskSvc.Get(ctx, env.user.ID, task.ID)
	assert.True(t, errors.Is(err, repository.ErrTaskNotFound))

	deps, err := env.taskSvc.GetDependencies(ctx, env.user.ID, other.ID)
	require.NoError(t, err)
	assert.Empty(t, deps)

	var subtaskCount int64
	require.NoError(t, env.db.Model(&model.Subtask{}).Where("task_id = ?", task.ID).Count(&subtaskCount).Error)
	assert.Equal(t, int64(0), subtaskCount)
}

func TestTaskService_TemplateRoundTrip(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	ctx := context.Background()

	src, err := env.taskSvc.Create(ctx, env.user.ID, TaskInput{
		Title:            "Morning routine",
		Description:      "stretch, coffee, plan",
		Priority:         model.PriorityHigh,
		EstimatedMinutes: intPtr(45),
	})
	require.NoError(t, err)

	tmpl, err := env.taskSvc.CreateTemplateFromTask(ctx, env.user.ID, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning routine", tmpl.Name)
	assert.Equal(t, model.PriorityHigh, tmpl.Priority)
	require.NotNil(t, tmpl.EstimatedMinutes)
	assert.Equal(t, 45, *tmpl.EstimatedMinutes)

	spawned, err := env.taskSvc.CreateFromTemplate(ctx, env.user.ID, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning routine", spawned.Title)
	assert.Equal(t, model.StatusPending, spawned.Status)
	assert.Equal(t, model.PriorityHigh, spawned.Priority)
	assert.Nil(t, spawned.DueDate)
}

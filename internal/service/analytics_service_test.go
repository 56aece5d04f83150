package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

func newAnalyticsService(t *testing.T, now time.Time) (*AnalyticsService, *testEnv) {
	t.Helper()
	env := newTestEnv(t, now)
	svc := NewAnalyticsService(
		repository.NewAnalyticsRepository(env.db),
		repository.NewGoalRepository(env.db),
		env.tasks,
	)
	svc.now = func() time.Time { return now }
	return svc, env
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)
	svc, env := newAnalyticsService(t, now)
	ctx := context.Background()

	env.createTask(t, &model.Task{UserID: env.user.ID, Title: "done", Status: model.StatusCompleted})
	env.createTask(t, &model.Task{UserID: env.user.ID, Title: "late", DueDate: datePtr(2024, time.March, 1)})
	env.createTask(t, &model.Task{UserID: env.user.ID, Title: "soon", DueDate: datePtr(2024, time.March, 8)})
	env.createTask(t, &model.Task{UserID: env.otherUser.ID, Title: "not mine"})

	require.NoError(t, env.db.Create(&model.Goal{
		UserID: env.user.ID, Title: "Active goal", TargetYear: 2024,
		TargetValue: 10, Status: model.GoalInProgress,
	}).Error)

	dashboard, err := svc.Dashboard(ctx, env.user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), dashboard.Stats.TotalTasks)
	assert.Equal(t, int64(1), dashboard.Stats.CompletedTasks)
	assert.Equal(t, int64(1), dashboard.Stats.OverdueTasks)
	assert.Equal(t, int64(1), dashboard.Stats.ActiveGoals)
	assert.Equal(t, 33, dashboard.Stats.CompletionRate)

	require.Len(t, dashboard.UpcomingTasks, 1)
	assert.Equal(t, "soon", dashboard.UpcomingTasks[0].Title)
}

func TestAnalyticsService_Report(t *testing.T) {
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)
	svc, env := newAnalyticsService(t, now)
	ctx := context.Background()

	env.createTask(t, &model.Task{UserID: env.user.ID, Title: "a", Priority: model.PriorityHigh})
	env.createTask(t, &model.Task{UserID: env.user.ID, Title: "b", Priority: model.PriorityHigh, Status: model.StatusCompleted})
	env.createTask(t, &model.Task{UserID: env.user.ID, Title: "c", Priority: model.PriorityLow})

	require.NoError(t, env.db.Create(&model.Goal{
		UserID: env.user.ID, Title: "Read", TargetYear: 2024,
		TargetValue: 10, CurrentValue: 4, Status: model.GoalInProgress,
	}).Error)

	report, err := svc.Report(ctx, env.user.ID)
	require.NoError(t, err)

	byPriority := map[string]int64{}
	for _, row := range report.TasksByPriority {
		byPriority[row.Name] = row.Count
	}
	assert.Equal(t, int64(2), byPriority[model.PriorityHigh])
	assert.Equal(t, int64(1), byPriority[model.PriorityLow])

	assert.Len(t, report.TasksOverTime, 7)
	assert.Len(t, report.CompletionRateOverTime, 7)
	assert.Len(t, report.MonthlyCompletion, 6)

	require.Len(t, report.GoalProgress, 1)
	assert.InDelta(t, 40.0, report.GoalProgress[0].Progress, 0.001)

	assert.Equal(t, int64(3), report.Stats.TotalTasks)
	assert.Equal(t, int64(1), report.Stats.CompletedTasks)
}

package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// SeriesPoint is one day on a count chart.
type SeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// RatePoint is one day on the completion-rate chart.
type RatePoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// MonthPoint is one month on the completion chart.
type MonthPoint struct {
	Month     string `json:"month"`
	Completed int64  `json:"completed"`
}

// GoalProgressPoint is one goal on the progress chart.
type GoalProgressPoint struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
}

// Report aggregates everything the analytics page renders.
type Report struct {
	TasksByStatus          []repository.NamedCount `json:"tasksByStatus"`
	TasksByPriority        []repository.NamedCount `json:"tasksByPriority"`
	TasksByCategory        []repository.NamedCount `json:"tasksByCategory"`
	TasksOverTime          []SeriesPoint           `json:"tasksOverTime"`
	CompletionRateOverTime []RatePoint             `json:"completionRateOverTime"`
	GoalProgress           []GoalProgressPoint     `json:"goalProgress"`
	MonthlyCompletion      []MonthPoint            `json:"monthlyCompletion"`
	Stats                  SummaryStats            `json:"stats"`
}

// SummaryStats are the headline numbers shared by the analytics and
// dashboard pages.
type SummaryStats struct {
	TotalTasks      int64 `json:"totalTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	PendingTasks    int64 `json:"pendingTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	OverdueTasks    int64 `json:"overdueTasks"`
	TotalGoals      int64 `json:"totalGoals"`
	CompletedGoals  int64 `json:"completedGoals"`
}

// Dashboard is the landing-page payload.
type Dashboard struct {
	Stats         DashboardStats `json:"stats"`
	UpcomingTasks []model.Task   `json:"upcomingTasks"`
}

type DashboardStats struct {
	SummaryStats
	ActiveGoals     int64 `json:"activeGoals"`
	TotalCategories int64 `json:"totalCategories"`
	TotalTags       int64 `json:"totalTags"`
	CompletionRate  int   `json:"completionRate"`
}

// AnalyticsService composes the aggregate queries into page payloads.
type AnalyticsService struct {
	analytics *repository.AnalyticsRepository
	goals     *repository.GoalRepository
	tasks     *repository.TaskRepository
	now       func() time.Time
}

func NewAnalyticsService(
	analytics *repository.AnalyticsRepository,
	goals *repository.GoalRepository,
	tasks *repository.TaskRepository,
) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, goals: goals, tasks: tasks, now: time.Now}
}

// Report builds the analytics page payload: distributions, the last
// seven days of activity, six months of completions and goal progress.
func (s *AnalyticsService) Report(ctx context.Context, userID uuid.UUID) (*Report, error) {
	now := s.now()
	report := &Report{}

	var err error
	if report.TasksByStatus, err = s.analytics.CountTasksByStatus(ctx, userID); err != nil {
		return nil, err
	}
	if report.TasksByPriority, err = s.analytics.CountTasksByPriority(ctx, userID); err != nil {
		return nil, err
	}
	if report.TasksByCategory, err = s.analytics.CountTasksByCategory(ctx, userID); err != nil {
		return nil, err
	}

	for i := 6; i >= 0; i-- {
		day := DateOnly(now.AddDate(0, 0, -i))
		created, err := s.analytics.CountCreatedBetween(ctx, userID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		report.TasksOverTime = append(report.TasksOverTime, SeriesPoint{
			Date:  day.Format("Jan 02"),
			Count: created,
		})

		endOfDay := day.AddDate(0, 0, 1)
		total, err := s.analytics.CountCreatedThrough(ctx, userID, endOfDay)
		if err != nil {
			return nil, err
		}
		completed, err := s.analytics.CountCompletedThrough(ctx, userID, endOfDay)
		if err != nil {
			return nil, err
		}
		rate := 0.0
		if total > 0 {
			rate = math.Round(float64(completed)/float64(total)*1000) / 10
		}
		report.CompletionRateOverTime = append(report.CompletionRateOverTime, RatePoint{
			Date: day.Format("Jan 02"),
			Rate: rate,
		})
	}

	for i := 5; i >= 0; i-- {
		month := AddMonths(now, -i)
		start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		completed, err := s.analytics.CountCompletedBetween(ctx, userID, start, start.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		report.MonthlyCompletion = append(report.MonthlyCompletion, MonthPoint{
			Month:     start.Format("Jan 2006"),
			Completed: completed,
		})
	}

	activeGoals, err := s.goals.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, goal := range activeGoals {
		report.GoalProgress = append(report.GoalProgress, GoalProgressPoint{
			Name:     goal.Title,
			Progress: math.Round(goal.ProgressPercentage()*10) / 10,
			Current:  goal.CurrentValue,
			Target:   goal.TargetValue,
		})
	}

	stats, err := s.summaryStats(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	report.Stats = *stats

	return report, nil
}

// Dashboard builds the landing-page payload with headline counts and
// the next week's tasks.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	now := s.now()

	stats, err := s.summaryStats(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	goalTotals, err := s.analytics.GoalTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.analytics.CountCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	tags, err := s.analytics.CountTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	completionRate := 0
	if stats.TotalTasks > 0 {
		completionRate = int(math.Round(float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100))
	}

	upcoming, err := s.tasks.ListUpcoming(ctx, userID, now, now.AddDate(0, 0, 7), 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats: DashboardStats{
			SummaryStats:    *stats,
			ActiveGoals:     goalTotals.Active,
			TotalCategories: categories,
			TotalTags:       tags,
			CompletionRate:  completionRate,
		},
		UpcomingTasks: upcoming,
	}, nil
}

func (s *AnalyticsService) summaryStats(ctx context.Context, userID uuid.UUID, now time.Time) (*SummaryStats, error) {
	taskTotals, err := s.analytics.TaskTotals(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	goalTotals, err := s.analytics.GoalTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SummaryStats{
		TotalTasks:      taskTotals.Total,
		CompletedTasks:  taskTotals.Completed,
		PendingTasks:    taskTotals.Pending,
		InProgressTasks: taskTotals.InProgress,
		OverdueTasks:    taskTotals.Overdue,
		TotalGoals:      goalTotals.Total,
		CompletedGoals:  goalTotals.Completed,
	}, nil
}

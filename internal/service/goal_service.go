package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// GoalInput carries a validated goal payload.
type GoalInput struct {
	Title        string
	Description  string
	TargetYear   int
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Status       string
	StartDate    *time.Time
	TargetDate   *time.Time
}

// GoalService manages yearly goals and their progress.
type GoalService struct {
	goals *repository.GoalRepository
	now   func() time.Time
}

func NewGoalService(goals *repository.GoalRepository) *GoalService {
	return &GoalService{goals: goals, now: time.Now}
}

func (s *GoalService) validate(input *GoalInput) error {
	if input.Title == "" {
		return invalidf("title is required")
	}
	if len(input.Title) > 255 {
		return invalidf("title must be at most 255 characters")
	}
	if input.TargetYear < 2020 || input.TargetYear > 2100 {
		return invalidf("target year must be between 2020 and 2100")
	}
	if input.TargetValue < 0 || input.CurrentValue < 0 {
		return invalidf("goal values must not be negative")
	}
	if input.Status != "" && input.Status != model.GoalInProgress && input.Status != model.GoalCompleted {
		return invalidf("unknown goal status %q", input.Status)
	}
	return nil
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, input GoalInput) (*model.Goal, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	goal := &model.Goal{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		TargetYear:   input.TargetYear,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Unit:         input.Unit,
		Status:       model.GoalInProgress,
		StartDate:    input.StartDate,
		TargetDate:   input.TargetDate,
	}
	if input.Status != "" {
		goal.Status = input.Status
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, userID, goalID uuid.UUID) (*model.Goal, error) {
	return s.goals.GetWithRelations(ctx, userID, goalID)
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, userID, goalID uuid.UUID, input GoalInput) (*model.Goal, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	goal, err := s.goals.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Title = input.Title
	goal.Description = input.Description
	goal.TargetYear = input.TargetYear
	goal.TargetValue = input.TargetValue
	goal.CurrentValue = input.CurrentValue
	goal.Unit = input.Unit
	if input.Status != "" {
		goal.Status = input.Status
	}
	goal.StartDate = input.StartDate
	goal.TargetDate = input.TargetDate

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	return s.goals.Delete(ctx, userID, goalID)
}

// UpdateProgress sets the goal's current value and marks the goal
// completed once the target is reached.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (*model.Goal, error) {
	if currentValue < 0 {
		return nil, invalidf("current value must not be negative")
	}

	goal, err := s.goals.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = currentValue
	if goal.CurrentValue >= goal.TargetValue && goal.Status != model.GoalCompleted {
		completedAt := s.now()
		goal.Status = model.GoalCompleted
		goal.CompletedAt = &completedAt
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Recurrence types
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

type Task struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	GoalID     *uuid.UUID `gorm:"type:uuid;index"`

	Title       string `gorm:"not null"`
	Description string
	Notes       string
	Priority    string `gorm:"not null;default:'medium'"`
	Status      string `gorm:"not null;default:'pending';index"`

	DueDate          *time.Time `gorm:"index"`
	DueTime          *string
	EstimatedMinutes *int
	CompletedAt      *time.Time

	IsRecurring        bool `gorm:"not null;default:false"`
	RecurrenceType     *string
	RecurrenceInterval *int
	RecurrenceEndDate  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User     User      `gorm:"foreignKey:UserID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
	Goal     *Goal     `gorm:"foreignKey:GoalID"`
	Tags     []Tag     `gorm:"many2many:task_tags"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID"`

	// Directed edges: Dependencies must be done before this task,
	// Dependents are waiting on it.
	Dependencies []Task `gorm:"many2many:task_dependencies;joinForeignKey:TaskID;joinReferences:DependsOnTaskID"`
	Dependents   []Task `gorm:"many2many:task_dependencies;joinForeignKey:DependsOnTaskID;joinReferences:TaskID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the task is past due and not completed.
// Due today does not count as overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	// Due dates are stored as UTC midnights; anchor today the same way.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidRecurrenceType reports whether rt is one of the four recurrence units.
func ValidRecurrenceType(rt string) bool {
	switch rt {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

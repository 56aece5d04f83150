package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal statuses
const (
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
)

type Goal struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"not null"`
	Description  string
	TargetYear   int     `gorm:"not null"`
	TargetValue  float64 `gorm:"not null"`
	CurrentValue float64 `gorm:"not null;default:0"`
	Unit         string
	Status       string `gorm:"not null;default:'in_progress'"`
	StartDate    *time.Time
	TargetDate   *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	User       User            `gorm:"foreignKey:UserID"`
	Tasks      []Task          `gorm:"foreignKey:GoalID"`
	Milestones []GoalMilestone `gorm:"foreignKey:GoalID"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// ProgressPercentage returns completion as a percentage, clamped to
// [0, 100]. A zero target always reads as 0.
func (g *Goal) ProgressPercentage() float64 {
	if g.TargetValue == 0 {
		return 0
	}
	p := g.CurrentValue / g.TargetValue * 100
	if p > 100 {
		return 100
	}
	return p
}

// GoalMilestone tracks quarterly progress toward a goal.
type GoalMilestone struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoalID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Quarter      int       `gorm:"not null"`
	TargetValue  float64   `gorm:"not null"`
	CurrentValue float64   `gorm:"not null;default:0"`
	Status       string    `gorm:"not null;default:'pending'"`
	Notes        string
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Goal Goal `gorm:"foreignKey:GoalID"`
}

func (m *GoalMilestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskTemplate is a reusable blueprint for creating tasks.
type TaskTemplate struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryID       *uuid.UUID `gorm:"type:uuid"`
	Name             string    `gorm:"not null"`
	Description      string
	Priority         string `gorm:"not null;default:'medium'"`
	EstimatedMinutes *int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User     User      `gorm:"foreignKey:UserID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (t *TaskTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeLog records time spent working on a task.
type TimeLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	TaskID          uuid.UUID `gorm:"type:uuid;not null;index"`
	StartedAt       time.Time `gorm:"not null"`
	EndedAt         *time.Time
	DurationMinutes *int
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User User `gorm:"foreignKey:UserID"`
	Task Task `gorm:"foreignKey:TaskID"`
}

func (l *TimeLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

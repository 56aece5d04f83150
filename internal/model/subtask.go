package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subtask is a checklist item under a task. The whole set is replaced
// on task update rather than merged.
type Subtask struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Order       int       `gorm:"column:sort_order;not null;default:0"`
	IsCompleted bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Task Task `gorm:"foreignKey:TaskID"`
}

func (s *Subtask) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskAttachment stores metadata for a file uploaded against a task.
// The bytes themselves live on disk under the configured upload dir.
type TaskAttachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename  string    `gorm:"not null"`
	FilePath  string    `gorm:"not null"`
	FileSize  int64     `gorm:"not null"`
	MimeType  string
	CreatedAt time.Time

	Task Task `gorm:"foreignKey:TaskID"`
}

func (a *TaskAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

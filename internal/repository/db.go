package repository

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskflow/internal/model"
)

// Open connects with the given dialector and migrates the schema.
// The dialector is injected so tests can run against in-memory SQLite
// while production uses Postgres.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Goal{},
		&model.GoalMilestone{},
		&model.Tag{},
		&model.Task{},
		&model.Subtask{},
		&model.TaskTemplate{},
		&model.TaskAttachment{},
		&model.TimeLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// newTestDB opens a fresh in-memory database with the full schema. Each
// test gets its own named database so state never leaks between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repository.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	return db
}

type testEnv struct {
	db        *gorm.DB
	tasks     *repository.TaskRepository
	tags      *repository.TagRepository
	taskSvc   *TaskService
	recurSvc  *RecurrenceService
	user      *model.User
	otherUser *model.User
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	db := newTestDB(t)

	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	taskSvc := NewTaskService(taskRepo, tagRepo, categoryRepo, goalRepo, templateRepo)
	taskSvc.now = func() time.Time { return now }

	recurSvc := NewRecurrenceService(taskRepo)
	recurSvc.now = func() time.Time { return now }

	env := &testEnv{
		db:       db,
		tasks:    taskRepo,
		tags:     tagRepo,
		taskSvc:  taskSvc,
		recurSvc: recurSvc,
	}
	env.user = env.createUser(t, "owner@example.com")
	env.otherUser = env.createUser(t, "other@example.com")
	return env
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: "Test User", HashedPassword: "x"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createTag(t *testing.T, userID uuid.UUID, name string) *model.Tag {
	t.Helper()
	tag := &model.Tag{UserID: userID, Name: name, Color: "#ff0000"}
	require.NoError(t, e.db.Create(tag).Error)
	return tag
}

func (e *testEnv) createTask(t *testing.T, task *model.Task) *model.Task {
	t.Helper()
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	require.NoError(t, e.db.Create(task).Error)
	return task
}

func datePtr(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found or
	// belongs to another user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTagNotFound is returned when a tag is not found
	ErrTagNotFound = errors.New("tag not found")

	// ErrCategoryNotFound is returned when a category is not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrGoalNotFound is returned when a goal is not found
	ErrGoalNotFound = errors.New("goal not found")

	// ErrTemplateNotFound is returned when a task template is not found
	ErrTemplateNotFound = errors.New("template not found")

	// ErrAttachmentNotFound is returned when an attachment is not found
	ErrAttachmentNotFound = errors.New("attachment not found")
)

package domain

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrNotOwner means the record exists but belongs to another user.
	ErrNotOwner = errors.New("record owned by another user")

	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrEmailTaken        = errors.New("email already registered")

	ErrReminderAfterDueDate = errors.New("reminder date must be before or equal to due date")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

package service

import "errors"

var (
	// ErrEmailTaken is returned when registering with an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrTitleTooLong is returned when a task title exceeds the length bound.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrDescriptionTooLong is returned when a description exceeds the length bound.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrTaskNotFound is returned when a task does not exist or is owned by
	// another user; the two cases are indistinguishable.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoUpdateFields is returned when an update supplies no fields.
	ErrNoUpdateFields = errors.New("at least one field must be provided")
)

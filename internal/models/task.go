package models

import (
	"time"

	"github.com/google/uuid"
)

// Limits on task fields, enforced by the task service.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Task represents a todo item owned by a single user.
type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Empty reports whether no fields were supplied.
func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Completed == nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskchat/internal/models"
)

// Repository provides database operations. Queries are written with ?
// placeholders and rebound for the active driver, so the same code runs
// against postgres and sqlite.
type Repository struct {
	db *sqlx.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user, assigning its id and timestamps.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserByEmail retrieves a user by exact email match. Returns (nil, nil) when
// no user exists.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := r.db.Rebind(`
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?`)
	err := r.db.GetContext(ctx, user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UserByID retrieves a user by id. Returns (nil, nil) when no user exists.
func (r *Repository) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := r.db.Rebind(`
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?`)
	err := r.db.GetContext(ctx, user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user. Tasks and conversations cascade at the schema
// level.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM users WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// CreateTask inserts a new task, assigning its id and timestamps.
func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	task.ID = uuid.New()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO tasks (id, user_id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// TasksByUserID retrieves all tasks owned by a user, oldest first.
func (r *Repository) TasksByUserID(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	tasks := []models.Task{}
	query := r.db.Rebind(`
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = ?
		ORDER BY created_at`)
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// TaskByID retrieves a task only when it is owned by userID. Nonexistence and
// ownership mismatch both return (nil, nil).
func (r *Repository) TaskByID(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	query := r.db.Rebind(`
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = ? AND user_id = ?`)
	err := r.db.GetContext(ctx, task, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask persists title, description, completed and updated_at for a task
// owned by userID. Returns (false, nil) when no matching row exists.
func (r *Repository) UpdateTask(ctx context.Context, task *models.Task) (bool, error) {
	task.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Completed, task.UpdatedAt, task.ID, task.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}
	return n > 0, nil
}

// DeleteTask removes a task owned by userID. Returns (false, nil) when no
// matching row exists.
func (r *Repository) DeleteTask(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return n > 0, nil
}

// CreateConversation inserts a new conversation with an empty message history.
func (r *Repository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.ID = uuid.New()
	if conv.Messages == "" {
		conv.Messages = "[]"
	}
	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO conversations (id, user_id, messages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		conv.ID, conv.UserID, conv.Messages, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// ConversationByID retrieves a conversation only when it is owned by userID.
// Nonexistence and ownership mismatch both return (nil, nil).
func (r *Repository) ConversationByID(ctx context.Context, id, userID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{}
	query := r.db.Rebind(`
		SELECT id, user_id, messages, created_at, updated_at
		FROM conversations
		WHERE id = ? AND user_id = ?`)
	err := r.db.GetContext(ctx, conv, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return conv, nil
}

// UpdateConversationMessages rewrites the full message history of a
// conversation and refreshes its updated_at.
func (r *Repository) UpdateConversationMessages(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE conversations
		SET messages = ?, updated_at = ?
		WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, conv.Messages, conv.UpdatedAt, conv.ID); err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

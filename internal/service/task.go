package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskchat/internal/models"
	"taskchat/internal/repository"
)

// TaskService handles task business logic, scoped to an owning user on every
// operation.
type TaskService struct {
	repo *repository.Repository
	log  *logrus.Logger
}

// NewTaskService initializes a new task service
func NewTaskService(repo *repository.Repository, log *logrus.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

// Create validates and persists a new task for the user. The title is trimmed
// before validation and storage.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %s created for user %s", task.ID, userID)
	return task, nil
}

// List returns all tasks owned by the user, oldest first.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	return s.repo.TasksByUserID(ctx, userID)
}

// Get returns the task only if it exists and is owned by the user. Ownership
// mismatch is reported identically to nonexistence.
func (s *TaskService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	task, err := s.repo.TaskByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Update applies the supplied fields to a task owned by the user. Unset
// fields keep their prior value; updated_at is always refreshed.
func (s *TaskService) Update(ctx context.Context, id, userID uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error) {
	if upd.Empty() {
		return nil, ErrNoUpdateFields
	}

	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		task.Title = title
	}
	if upd.Description != nil {
		if err := validateDescription(*upd.Description); err != nil {
			return nil, err
		}
		task.Description = *upd.Description
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}

	ok, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaskNotFound
	}

	s.log.Infof("Task %s updated for user %s", task.ID, userID)
	return task, nil
}

// Delete removes a task owned by the user. A missing or foreign task yields
// ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.repo.DeleteTask(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	s.log.Infof("Task %s deleted for user %s", id, userID)
	return nil
}

// ToggleCompletion flips the completion flag of a task owned by the user.
func (s *TaskService) ToggleCompletion(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	ok, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaskNotFound
	}

	s.log.Infof("Task %s completion toggled to %t", task.ID, task.Completed)
	return task, nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > models.MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), models.MaxTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > models.MaxDescriptionLength {
		return fmt.Errorf("%w: %d > %d", ErrDescriptionTooLong, len(description), models.MaxDescriptionLength)
	}
	return nil
}

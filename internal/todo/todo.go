// Package todo implements the in-memory task service behind the console
// todo CLI. It is independent of the HTTP backend and keeps no persistent
// state.
package todo

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrTaskNotFound is returned when no task has the given id.
	ErrTaskNotFound = errors.New("task not found")
)

// Task is a single console todo item.
type Task struct {
	ID          int
	Title       string
	Description string
	Completed   bool
}

// Service stores tasks in memory, keyed by an auto-incrementing id starting
// at 1.
type Service struct {
	tasks  map[int]*Task
	nextID int
}

// NewService returns an empty task service.
func NewService() *Service {
	return &Service{tasks: make(map[int]*Task), nextID: 1}
}

// Add creates a task and returns its id. Title and description are trimmed.
func (s *Service) Add(title, description string) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}

	id := s.nextID
	s.nextID++
	s.tasks[id] = &Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	return id, nil
}

// Tasks returns all tasks ordered by id.
func (s *Service) Tasks() []Task {
	tasks := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// Get returns the task with the given id.
func (s *Service) Get(id int) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// Update changes the supplied fields of a task. Nil fields are left
// unchanged; a supplied title must be non-empty after trimming.
func (s *Service) Update(id int, title, description *string) error {
	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return ErrEmptyTitle
		}
		t.Title = trimmed
	}
	if description != nil {
		t.Description = strings.TrimSpace(*description)
	}
	return nil
}

// Delete removes a task.
func (s *Service) Delete(id int) error {
	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Toggle flips a task's completion flag and returns the new value.
func (s *Service) Toggle(id int) (bool, error) {
	t, ok := s.tasks[id]
	if !ok {
		return false, ErrTaskNotFound
	}
	t.Completed = !t.Completed
	return t.Completed, nil
}

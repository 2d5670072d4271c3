// Package tools maps symbolic operation names to handlers bound to a
// (task service, user) pair, so the chat layer can invoke task operations
// without reaching into the store directly.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskchat/internal/models"
	"taskchat/internal/service"
)

// Tool names.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
	ToolUpdateTask   = "update_task"
)

var (
	// ErrUnknownTool is returned when calling a name with no registered tool.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidParams is returned when a tool's required parameters are
	// missing or malformed.
	ErrInvalidParams = errors.New("invalid parameters")
)

// Tool is a named, parameter-validated operation.
type Tool interface {
	Name() string
	Invoke(ctx context.Context, params map[string]any) (string, error)
}

// Registry holds the tools available to one request. It is constructed fresh
// per request, bound to the calling user; there is no shared dispatch state.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds the registry of task tools bound to the given user.
func NewRegistry(tasks *service.TaskService, userID uuid.UUID) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		&addTask{tasks: tasks, userID: userID},
		&listTasks{tasks: tasks, userID: userID},
		&completeTask{tasks: tasks, userID: userID},
		&deleteTask{tasks: tasks, userID: userID},
		&updateTask{tasks: tasks, userID: userID},
	} {
		r.tools[t.Name()] = t
	}
	return r
}

// Call invokes the named tool. Unregistered names fail with ErrUnknownTool.
func (r *Registry) Call(ctx context.Context, name string, params map[string]any) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Invoke(ctx, params)
}

// Names returns the registered tool names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

type addTask struct {
	tasks  *service.TaskService
	userID uuid.UUID
}

func (t *addTask) Name() string { return ToolAddTask }

func (t *addTask) Invoke(ctx context.Context, params map[string]any) (string, error) {
	title, _ := params["title"].(string)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidParams)
	}
	description, _ := params["description"].(string)

	task, err := t.tasks.Create(ctx, t.userID, title, description)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Task %q has been created successfully.", task.Title), nil
}

type listTasks struct {
	tasks  *service.TaskService
	userID uuid.UUID
}

func (t *listTasks) Name() string { return ToolListTasks }

func (t *listTasks) Invoke(ctx context.Context, _ map[string]any) (string, error) {
	tasks, err := t.tasks.List(ctx, t.userID)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "You have no tasks at the moment.", nil
	}

	var b strings.Builder
	for i, task := range tasks {
		status := "○"
		if task.Completed {
			status = "✓"
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, status, task.Title)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type completeTask struct {
	tasks  *service.TaskService
	userID uuid.UUID
}

func (t *completeTask) Name() string { return ToolCompleteTask }

func (t *completeTask) Invoke(ctx context.Context, params map[string]any) (string, error) {
	id, err := taskIDParam(params)
	if err != nil {
		return "", err
	}

	var task *models.Task
	if completed, ok := params["completed"].(bool); ok {
		task, err = t.tasks.Update(ctx, id, t.userID, models.UpdateTaskRequest{Completed: &completed})
	} else {
		task, err = t.tasks.ToggleCompletion(ctx, id, t.userID)
	}
	if err != nil {
		return "", err
	}

	status := "incomplete"
	if task.Completed {
		status = "completed"
	}
	return fmt.Sprintf("Task %q has been marked as %s.", task.Title, status), nil
}

type deleteTask struct {
	tasks  *service.TaskService
	userID uuid.UUID
}

func (t *deleteTask) Name() string { return ToolDeleteTask }

func (t *deleteTask) Invoke(ctx context.Context, params map[string]any) (string, error) {
	id, err := taskIDParam(params)
	if err != nil {
		return "", err
	}

	task, err := t.tasks.Get(ctx, id, t.userID)
	if err != nil {
		return "", err
	}
	if err := t.tasks.Delete(ctx, id, t.userID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Task %q has been deleted successfully.", task.Title), nil
}

type updateTask struct {
	tasks  *service.TaskService
	userID uuid.UUID
}

func (t *updateTask) Name() string { return ToolUpdateTask }

func (t *updateTask) Invoke(ctx context.Context, params map[string]any) (string, error) {
	id, err := taskIDParam(params)
	if err != nil {
		return "", err
	}

	var upd models.UpdateTaskRequest
	if title, ok := params["title"].(string); ok {
		upd.Title = &title
	}
	if description, ok := params["description"].(string); ok {
		upd.Description = &description
	}
	if completed, ok := params["completed"].(bool); ok {
		upd.Completed = &completed
	}
	if upd.Empty() {
		return "", fmt.Errorf("%w: at least one of title, description or completed is required", ErrInvalidParams)
	}

	task, err := t.tasks.Update(ctx, id, t.userID, upd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Task %q has been updated successfully.", task.Title), nil
}

func taskIDParam(params map[string]any) (uuid.UUID, error) {
	raw, ok := params["task_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("%w: task_id is required", ErrInvalidParams)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: task_id must be a valid id", ErrInvalidParams)
	}
	return id, nil
}

// Package chat turns free-text messages into task operations via the tool
// registry and records each exchange in a per-user conversation.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskchat/internal/models"
	"taskchat/internal/repository"
	"taskchat/internal/service"
	"taskchat/internal/tools"
)

// ErrConversationNotFound is returned when a supplied conversation id does
// not exist or belongs to another user.
var ErrConversationNotFound = errors.New("conversation not found")

const fallbackReply = "I understand you're looking for help with your tasks. " +
	"You can ask me to add, list, update, or complete tasks."

// The matcher does not extract titles or ids from the text; placeholder
// values are substituted. Documented behavior, not a feature.
const (
	placeholderTitle  = "New task"
	placeholderTaskID = "unknown"
)

// Processor handles one chat turn at a time. It is stateless between calls;
// all history lives in the conversation record.
type Processor struct {
	repo  *repository.Repository
	tasks *service.TaskService
	log   *logrus.Logger
}

// NewProcessor initializes a new chat processor
func NewProcessor(repo *repository.Repository, tasks *service.TaskService, log *logrus.Logger) *Processor {
	return &Processor{repo: repo, tasks: tasks, log: log}
}

// Process appends the user message, dispatches the matched tool (if any) and
// appends the assistant reply, then persists the full message sequence. Tool
// failures do not fail the turn; the reply carries the error text.
func (p *Processor) Process(ctx context.Context, userID uuid.UUID, message string, conversationID *uuid.UUID) (*models.ChatResponse, error) {
	conv, err := p.conversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	messages := conv.ParsedMessages()
	messages = append(messages, models.Message{
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	reply, toolUsed := p.respond(ctx, userID, message)

	messages = append(messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err := conv.SetMessages(messages); err != nil {
		return nil, err
	}
	if err := p.repo.UpdateConversationMessages(ctx, conv); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Response:       reply,
		ConversationID: conv.ID,
		ToolUsed:       toolUsed,
	}, nil
}

func (p *Processor) conversation(ctx context.Context, userID uuid.UUID, id *uuid.UUID) (*models.Conversation, error) {
	if id != nil {
		conv, err := p.repo.ConversationByID(ctx, *id, userID)
		if err != nil {
			return nil, err
		}
		if conv == nil {
			return nil, ErrConversationNotFound
		}
		return conv, nil
	}

	conv := &models.Conversation{UserID: userID}
	if err := p.repo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *Processor) respond(ctx context.Context, userID uuid.UUID, message string) (reply, toolUsed string) {
	toolName, ok := MatchTool(message)
	if !ok {
		return fallbackReply, ""
	}

	registry := tools.NewRegistry(p.tasks, userID)
	result, err := registry.Call(ctx, toolName, toolParams(toolName))
	if err != nil {
		p.log.Infof("Tool %s failed for user %s: %v", toolName, userID, err)
		return "I ran into a problem with that: " + err.Error(), toolName
	}
	return result, toolName
}

func toolParams(toolName string) map[string]any {
	switch toolName {
	case tools.ToolAddTask:
		return map[string]any{"title": placeholderTitle}
	case tools.ToolUpdateTask:
		return map[string]any{"task_id": placeholderTaskID, "title": "Updated task"}
	case tools.ToolCompleteTask, tools.ToolDeleteTask:
		return map[string]any{"task_id": placeholderTaskID}
	default:
		return map[string]any{}
	}
}

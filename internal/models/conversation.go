package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Conversation holds an ordered message history for one user. Messages are
// stored as a JSON array and rewritten in full on every turn.
type Conversation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Messages  string    `json:"messages" db:"messages"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ParsedMessages decodes the stored message history. Malformed history is
// treated as empty rather than failing the turn.
func (c *Conversation) ParsedMessages() []Message {
	var msgs []Message
	if err := json.Unmarshal([]byte(c.Messages), &msgs); err != nil {
		return nil
	}
	return msgs
}

// SetMessages re-serializes the full message sequence.
func (c *Conversation) SetMessages(msgs []Message) error {
	data, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	c.Messages = string(data)
	return nil
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message        string     `json:"message"`
	ConversationID *uuid.UUID `json:"conversation_id"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	Response       string    `json:"response"`
	ConversationID uuid.UUID `json:"conversation_id"`
	ToolUsed       string    `json:"tool_used,omitempty"`
}

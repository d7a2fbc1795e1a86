// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the append-only chat history for one session.
//
// The conversation controller is the sole writer; every other component gets
// a read-only snapshot via History. Entries are never mutated or removed.
// Nothing here persists: a conversation lives for the lifetime of the view.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	messages []*ChatMessage
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: time.Now(),
		messages:  make([]*ChatMessage, 0),
	}
}

// =============================================================================
// APPEND OPERATIONS
// =============================================================================

// Append adds a message to the end of the history and returns it.
// Append is the only permitted mutation.
func (c *Conversation) Append(msg *ChatMessage) *ChatMessage {
	c.messages = append(c.messages, msg)
	return msg
}

// AppendUser creates and appends a user turn.
func (c *Conversation) AppendUser(text string) *ChatMessage {
	return c.Append(NewUserMessage(text))
}

// AppendAnswer creates and appends a structured assistant turn.
func (c *Conversation) AppendAnswer(answer *AgentAnswer) *ChatMessage {
	return c.Append(NewAnswerMessage(answer))
}

// AppendError creates and appends an assistant error turn.
func (c *Conversation) AppendError(text string) *ChatMessage {
	return c.Append(NewErrorMessage(text))
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty reports whether the history has no entries.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}

// Last returns the most recent message, or nil when empty.
func (c *Conversation) Last() *ChatMessage {
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// LastAnswer returns the most recent assistant turn carrying a structured
// answer, or nil if there is none.
func (c *Conversation) LastAnswer() *ChatMessage {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant && c.messages[i].HasAnswer() {
			return c.messages[i]
		}
	}
	return nil
}

// History returns the messages in order. The returned slice is a copy of the
// slice header; callers must treat the entries as read-only.
func (c *Conversation) History() []*ChatMessage {
	out := make([]*ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

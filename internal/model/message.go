// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE REFERENCES
// =============================================================================

// PageNotSpecified is the sentinel the backend sends when a source has no
// usable page label. Renderers omit the page line entirely for this value.
const PageNotSpecified = "Not specified"

// SourceReference is one cited excerpt supporting part of an answer.
type SourceReference struct {
	Document string `json:"document"`
	Page     string `json:"page"`
	Excerpt  string `json:"excerpt"`
}

// HasPage reports whether the page label should be displayed.
func (s SourceReference) HasPage() bool {
	return s.Page != "" && s.Page != PageNotSpecified
}

// =============================================================================
// AGENT ANSWER
// =============================================================================

// AgentAnswer is the structured payload of a successful assistant turn.
// Sources keep the backend's citation order; nothing here re-sorts them.
type AgentAnswer struct {
	Text           string            `json:"answer"`
	Sources        []SourceReference `json:"sources"`
	Confidence     float64           `json:"confidence"`
	RetrievedCount int               `json:"retrieved_passages"`
	Interpretation string            `json:"query_interpretation,omitempty"`
}

// HighConfidenceThreshold separates the "high" confidence tier from the
// lower one. The boundary is inclusive: 0.70 renders as high.
const HighConfidenceThreshold = 0.7

// IsHighConfidence reports whether the answer lands in the high tier.
func (a *AgentAnswer) IsHighConfidence() bool {
	return a.Confidence >= HighConfidenceThreshold
}

// HasSources reports whether there is anything to cite.
func (a *AgentAnswer) HasSources() bool {
	return len(a.Sources) > 0
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// FallbackAnswerText is shown when the backend reports success but returns
// an empty answer string. A soft success, not an error.
const FallbackAnswerText = "No answer was provided for this question."

// ChatMessage represents a single turn in a conversation.
//
// For assistant messages exactly one of the following holds at render time:
// IsError is set (plain error turn), Answer is non-nil (structured answer
// turn), or neither (plain text turn). Constructors below are the only way
// messages are created, which keeps that invariant.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Answer is present only on successful assistant turns.
	Answer *AgentAnswer `json:"answer,omitempty"`

	// IsError marks an assistant turn that represents a failure.
	IsError bool `json:"is_error,omitempty"`
}

// NewUserMessage creates a user turn carrying the literal query text.
func NewUserMessage(text string) *ChatMessage {
	return &ChatMessage{
		ID:        generateID(),
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAnswerMessage creates an assistant turn from a structured answer.
// An empty answer text falls back to FallbackAnswerText.
func NewAnswerMessage(answer *AgentAnswer) *ChatMessage {
	text := FallbackAnswerText
	if answer != nil && answer.Text != "" {
		text = answer.Text
	}
	return &ChatMessage{
		ID:        generateID(),
		Role:      RoleAssistant,
		Text:      text,
		CreatedAt: time.Now(),
		Answer:    answer,
	}
}

// NewErrorMessage creates an assistant turn describing a failure.
func NewErrorMessage(text string) *ChatMessage {
	return &ChatMessage{
		ID:        generateID(),
		Role:      RoleAssistant,
		Text:      text,
		CreatedAt: time.Now(),
		IsError:   true,
	}
}

// HasAnswer reports whether this turn carries a structured answer.
func (m *ChatMessage) HasAnswer() bool {
	return m.Answer != nil
}

// Preview returns a truncated preview of the message text.
// Rune-based so multi-byte text truncates cleanly. Limits too small to
// carry an ellipsis hard-cut instead.
func (m *ChatMessage) Preview(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}

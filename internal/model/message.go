// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
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
		return "Doc Talk"
	default:
		return string(r)
	}
}

// ParseRole converts a stored role string back into a Role.
// Older transcripts may call the assistant "bot"; both spellings load.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "assistant", "bot":
		return RoleAssistant, true
	default:
		return "", false
	}
}

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status is the delivery state of a user message.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// rank orders statuses so transitions can be checked for monotonicity.
func (s Status) rank() int {
	switch s {
	case StatusSent:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	default:
		return 0
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.rank() > 0
}

// Ticks returns the check marks shown next to a user message.
func (s Status) Ticks() string {
	switch s {
	case StatusSent:
		return "✓"
	case StatusDelivered, StatusRead:
		return "✓✓"
	default:
		return ""
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single chat bubble.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Image is an attached picture carried as a data URI
	// ("data:image/jpeg;base64,..."). Empty when there is no attachment.
	Image string `json:"image,omitempty"`

	Status Status `json:"status"`
}

// NewMessage creates a new message with a generated ID and the current time.
func NewMessage(role Role, text string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
		Status:    StatusSent,
	}
}

// NewUserMessage creates a user message, optionally carrying an image.
func NewUserMessage(text, image string) *Message {
	msg := NewMessage(RoleUser, text)
	msg.Image = image
	return msg
}

// NewAssistantMessage creates an assistant reply.
func NewAssistantMessage(text string) *Message {
	return NewMessage(RoleAssistant, text)
}

// HasImage reports whether the message carries an attachment.
func (m *Message) HasImage() bool {
	return m.Image != ""
}

// IsEmpty returns true if the message has neither text nor image.
func (m *Message) IsEmpty() bool {
	return strings.TrimSpace(m.Text) == "" && m.Image == ""
}

// Advance moves a user message to status next. Backwards or unknown
// transitions are ignored and reported as false, as are changes to
// assistant messages.
func (m *Message) Advance(next Status) bool {
	if m.Role != RoleUser || !next.Valid() {
		return false
	}
	if next.rank() <= m.Status.rank() {
		return false
	}
	m.Status = next
	return true
}

// FormatTime returns the bubble timestamp, e.g. "03:04 PM".
func (m *Message) FormatTime() string {
	return m.Timestamp.Format("03:04 PM")
}

// Preview returns a truncated single-line preview of the message text.
func (m *Message) Preview(maxLen int) string {
	text := strings.Join(strings.Fields(m.Text), " ")
	if text == "" && m.HasImage() {
		text = "[image]"
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// MaxMessages is the maximum number of messages kept in memory.
// When exceeded, the oldest messages are pruned.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the chat screen state: the ordered message log plus the
// "assistant is composing" and connectivity flags. It is owned by the
// presentation layer and is not safe for concurrent use.
type Conversation struct {
	Messages  []*Message
	Typing    bool
	Connected bool
	UpdatedAt time.Time
}

// NewConversation creates an empty conversation that starts out connected.
func NewConversation() *Conversation {
	return &Conversation{
		Messages:  make([]*Message, 0),
		Connected: true,
		UpdatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the log.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// AddUserMessage creates and appends a user message in status sent.
func (c *Conversation) AddUserMessage(text, image string) *Message {
	msg := NewUserMessage(text, image)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and appends an assistant reply.
func (c *Conversation) AddAssistantMessage(text string) *Message {
	msg := NewAssistantMessage(text)
	c.AddMessage(msg)
	return msg
}

// Get returns a message by its ID, or nil.
func (c *Conversation) Get(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// Last returns the most recent message, or nil if empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAssistant returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistant() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}

// MarkDelivered advances the user message id to delivered.
func (c *Conversation) MarkDelivered(id string) bool {
	return c.advance(id, StatusDelivered)
}

// MarkRead advances the user message id to read.
func (c *Conversation) MarkRead(id string) bool {
	return c.advance(id, StatusRead)
}

func (c *Conversation) advance(id string, status Status) bool {
	msg := c.Get(id)
	if msg == nil {
		return false
	}
	if !msg.Advance(status) {
		return false
	}
	c.UpdatedAt = time.Now()
	return true
}

// SetTyping sets the "assistant is composing" flag.
func (c *Conversation) SetTyping(typing bool) {
	c.Typing = typing
}

// SetConnected sets the connectivity flag.
func (c *Conversation) SetConnected(connected bool) {
	c.Connected = connected
}

// Clear removes all messages and resets the typing flag.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.Typing = false
	c.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// pruneOldMessages drops the oldest messages beyond MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	excess := len(c.Messages) - MaxMessages
	kept := make([]*Message, MaxMessages)
	copy(kept, c.Messages[excess:])
	c.Messages = kept
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("hi", "")
		require.NotEmpty(t, msg.ID)
		require.False(t, seen[msg.ID], "duplicate ID %s", msg.ID)
		seen[msg.ID] = true
	}
}

func TestNewUserMessage_StartsSent(t *testing.T) {
	msg := NewUserMessage("hello", "data:image/png;base64,AAAA")
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, StatusSent, msg.Status)
	assert.True(t, msg.HasImage())
	assert.False(t, msg.Timestamp.IsZero())
}

func TestMessage_AdvanceIsMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		steps []Status
		want  Status
	}{
		{"forward", []Status{StatusDelivered, StatusRead}, StatusRead},
		{"skip to read", []Status{StatusRead}, StatusRead},
		{"no regression from read", []Status{StatusRead, StatusDelivered, StatusSent}, StatusRead},
		{"no regression from delivered", []Status{StatusDelivered, StatusSent}, StatusDelivered},
		{"unknown ignored", []Status{Status("lost")}, StatusSent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewUserMessage("x", "")
			for _, s := range tt.steps {
				msg.Advance(s)
			}
			assert.Equal(t, tt.want, msg.Status)
		})
	}
}

func TestMessage_AdvanceIgnoresAssistant(t *testing.T) {
	msg := NewAssistantMessage("reply")
	assert.False(t, msg.Advance(StatusRead))
	assert.Equal(t, StatusSent, msg.Status)
}

func TestStatus_Ticks(t *testing.T) {
	assert.Equal(t, "✓", StatusSent.Ticks())
	assert.Equal(t, "✓✓", StatusDelivered.Ticks())
	assert.Equal(t, "✓✓", StatusRead.Ticks())
	assert.Equal(t, "", Status("").Ticks())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"user", RoleUser, true},
		{"assistant", RoleAssistant, true},
		{"bot", RoleAssistant, true},
		{" USER ", RoleUser, true},
		{"system", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMessage_FormatTime(t *testing.T) {
	msg := &Message{Timestamp: time.Date(2025, 3, 1, 15, 4, 0, 0, time.UTC)}
	assert.Equal(t, "03:04 PM", msg.FormatTime())
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("a very\nlong message body", "")
	assert.Equal(t, "a very...", msg.Preview(9))
	assert.Equal(t, "a very long message body", msg.Preview(100))

	img := NewUserMessage("", "data:image/png;base64,AAAA")
	assert.Equal(t, "[image]", img.Preview(20))
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_Flow(t *testing.T) {
	conv := NewConversation()
	require.True(t, conv.Connected)
	require.True(t, conv.IsEmpty())

	user := conv.AddUserMessage("Hello", "")
	conv.SetTyping(true)
	require.True(t, conv.MarkDelivered(user.ID))
	require.True(t, conv.MarkRead(user.ID))
	require.False(t, conv.MarkDelivered(user.ID), "status must not regress")

	reply := conv.AddAssistantMessage("Hi there")
	conv.SetTyping(false)

	assert.Equal(t, 2, conv.Len())
	assert.Equal(t, reply, conv.Last())
	assert.Equal(t, reply, conv.LastAssistant())
	assert.Equal(t, StatusRead, conv.Get(user.ID).Status)
	assert.False(t, conv.Typing)
}

func TestConversation_MarkUnknownID(t *testing.T) {
	conv := NewConversation()
	assert.False(t, conv.MarkRead("missing"))
}

func TestConversation_Prune(t *testing.T) {
	conv := NewConversation()
	first := conv.AddUserMessage("first", "")
	for i := 0; i < MaxMessages; i++ {
		conv.AddAssistantMessage("x")
	}
	assert.Equal(t, MaxMessages, conv.Len())
	assert.Nil(t, conv.Get(first.ID))
}

func TestConversation_Clear(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("one", "")
	conv.SetTyping(true)
	conv.Clear()
	assert.True(t, conv.IsEmpty())
	assert.False(t, conv.Typing)
	assert.Nil(t, conv.LastAssistant())
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat message log.
//
// # Key Types
//
//   - Message: one chat bubble with role, text, optional image and delivery status
//   - Role: who sent a message (user or assistant)
//   - Status: delivery lifecycle of a user message (sent, delivered, read)
//   - Conversation: the ordered message log plus typing and connectivity flags
//
// # Usage
//
//	conv := model.NewConversation()
//	msg := conv.AddUserMessage("Is ibuprofen safe with coffee?", "")
//	conv.SetTyping(true)
//	...
//	conv.MarkRead(msg.ID)
//	conv.AddAssistantMessage(reply)
//	conv.SetTyping(false)
//
// Status only ever moves forward: sent -> delivered -> read. Assistant
// messages have no lifecycle and ignore status changes.
package model

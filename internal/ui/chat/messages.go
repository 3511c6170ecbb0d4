// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/doctalk/internal/config"
	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/reply"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// ReplyMsg carries the outcome of one provider round-trip.
type ReplyMsg struct {
	// UserMessageID is the message the reply answers.
	UserMessageID string
	Reply         reply.Reply
}

// AttachResultMsg is sent when /attach finished reading a file.
type AttachResultMsg struct {
	Path  string
	Image string
	Err   error
}

// HistoryLoadedMsg carries the restored transcript.
type HistoryLoadedMsg struct {
	Messages []*model.Message
	Err      error
}

// ConfigReloadedMsg is sent by the config watcher. Assistant is rebuilt
// for the new gemini settings; nil keeps the current one.
type ConfigReloadedMsg struct {
	Config    *config.Config
	Assistant Assistant
	Err       error
}

// ClipboardMsg reports the result of /copy.
type ClipboardMsg struct {
	Err error
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat screen for doctalk.
//
// The Model owns the conversation state. Each send becomes one tea.Cmd
// that performs a single provider round-trip through the assistant
// service and comes back as a ReplyMsg; everything else (status ticks,
// the typing indicator, the key modal) is updated inside Update, so no
// locking is needed.
//
// # Key Bindings
//
//	enter      send the message or run a /command
//	ctrl+k     open the API key form
//	pgup/pgdn  scroll the transcript
//	ctrl+c     quit
//
// # Commands
//
//	/attach PATH  attach an image to the next message
//	/detach       drop the pending image
//	/reset        forget the stored API key
//	/clear        clear the transcript
//	/copy         copy the last reply to the clipboard
//	/help         list commands
//	/quit         exit
package chat

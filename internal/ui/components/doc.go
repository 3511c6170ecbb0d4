// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the doctalk chat screen.

Each component is a small value with a View method; the interactive ones
(KeyModal, InputBar) also have an Update method in the Bubble Tea style and
are driven by the chat model.

# Components

Header (header.go) - Title bar with presence line: online, typing... or offline.
MessageBubble (message.go) - Markdown bubble with image label, time and ticks.
KeyModal (keymodal.go) - Centered API key form with password echo.
InputBar (input.go) - Text input with pending-attachment preview.
MarkdownRenderer (markdown.go) - Width-keyed glamour renderer cache.
*/
package components

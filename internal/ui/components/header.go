// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/ui/styles"
)

// Title is the chat partner's display name.
const Title = "Doc Talk 🩺"

// Presence strings shown under the title.
const (
	PresenceOnline  = "online"
	PresenceTyping  = "typing..."
	PresenceOffline = "offline"
)

// Header is the top bar of the chat screen.
type Header struct {
	Typing    bool
	Connected bool
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Connected: true, Width: 80, theme: theme}
}

// Presence returns the presence line. Typing wins over connectivity.
func (h *Header) Presence() string {
	switch {
	case h.Typing:
		return PresenceTyping
	case h.Connected:
		return PresenceOnline
	default:
		return PresenceOffline
	}
}

// View renders the two-line header across the full width.
func (h *Header) View() string {
	t := h.theme
	width := h.Width
	if width < 20 {
		width = 20
	}

	var presence string
	switch h.Presence() {
	case PresenceTyping:
		presence = t.HeaderTyping.Render(PresenceTyping)
	case PresenceOnline:
		presence = t.HeaderPresence.Render("● " + PresenceOnline)
	default:
		presence = t.HeaderOffline.Render("○ " + PresenceOffline)
	}

	hint := t.HeaderHint.Render("ctrl+k key")
	title := t.HeaderTitle.Render(Title)

	inner := width - t.Header.GetHorizontalPadding()
	gap := inner - lipgloss.Width(title) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	top := title + t.HeaderTitle.Render(strings.Repeat(" ", gap)) + hint

	block := lipgloss.JoinVertical(lipgloss.Left, top, presence)
	return t.Header.Width(width).Render(block)
}

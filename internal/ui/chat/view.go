// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/ui/components"
	"github.com/jeranaias/doctalk/internal/util"
)

// View renders the screen: header, transcript, status line, input. The
// key form replaces the transcript while open.
func (m Model) View() string {
	if !m.ready {
		return "Loading Doc Talk..."
	}

	header := m.header.View()

	if m.keyModal.IsOpen() {
		bodyHeight := m.height - lipgloss.Height(header)
		return lipgloss.JoinVertical(lipgloss.Left, header, m.keyModal.View(m.width, bodyHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.statusLine(),
		m.input.View(),
	)
}

// statusLine shows the typing indicator or the current notice.
func (m Model) statusLine() string {
	switch {
	case m.conversation.Typing:
		return m.spinner.View() + m.theme.Notice.Render(" Doc Talk is typing...")
	case m.notice != "":
		return m.theme.Notice.Render(util.TruncateWidth(m.notice, m.width))
	case m.conversation.IsEmpty():
		return m.theme.Help.Render("Ask a health question, or /help for commands.")
	default:
		return ""
	}
}

// refreshViewport re-renders every bubble and scrolls to the newest.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m Model) renderMessages() string {
	if m.conversation.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for i, msg := range m.conversation.Messages {
		bubble := components.NewMessageBubble(msg, m.theme, m.md)
		bubble.Width = m.viewport.Width
		bubble.ShowTimestamp = m.showTimestamps
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(bubble.View())
	}
	return b.String()
}

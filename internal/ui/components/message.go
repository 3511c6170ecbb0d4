// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/attachment"
	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message. User bubbles sit on the right,
// assistant bubbles on the left.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
	md            *MarkdownRenderer
}

// NewMessageBubble creates a bubble for msg. md may be nil, in which case
// text is wrapped but not formatted.
func NewMessageBubble(msg *model.Message, theme *styles.Theme, md *MarkdownRenderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		md:            md,
	}
}

// View renders the bubble across Width columns.
func (b *MessageBubble) View() string {
	if b.Message == nil {
		return ""
	}
	isUser := b.Message.Role == model.RoleUser

	style := b.theme.AssistantBubble
	if isUser {
		style = b.theme.UserBubble
	}

	maxWidth := b.Width * 3 / 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	contentWidth := maxWidth - style.GetHorizontalFrameSize()

	var parts []string
	if b.Message.HasImage() {
		parts = append(parts, b.theme.ImageLabel.Render("📷 "+attachment.Describe(b.Message.Image)))
	}
	if text := b.renderText(contentWidth); text != "" {
		parts = append(parts, text)
	}

	meta := b.renderMeta()
	body := strings.Join(parts, "\n")

	innerWidth := lipgloss.Width(body)
	if w := lipgloss.Width(meta); w > innerWidth {
		innerWidth = w
	}
	if innerWidth > contentWidth {
		innerWidth = contentWidth
	}

	if meta != "" {
		metaLine := lipgloss.PlaceHorizontal(innerWidth, lipgloss.Right, meta)
		if body == "" {
			body = metaLine
		} else {
			body += "\n" + metaLine
		}
	}

	bubble := style.Width(innerWidth + style.GetHorizontalPadding()).Render(body)

	align := lipgloss.Left
	if isUser {
		align = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(b.Width, align, bubble)
}

// renderText formats the message body. Both roles get markdown, matching
// how replies and prompts are displayed alike.
func (b *MessageBubble) renderText(width int) string {
	text := b.Message.Text
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if b.md != nil {
		return b.md.Render(text, width)
	}
	return wrapPlain(text, width)
}

// renderMeta is the footer: time, plus ticks for user messages.
func (b *MessageBubble) renderMeta() string {
	var parts []string
	if b.ShowTimestamp {
		parts = append(parts, b.theme.BubbleMeta.Render(b.Message.FormatTime()))
	}
	if b.Message.Role == model.RoleUser {
		if ticks := b.Message.Status.Ticks(); ticks != "" {
			tickStyle := b.theme.TickUnread
			if b.Message.Status == model.StatusRead {
				tickStyle = b.theme.TickRead
			}
			parts = append(parts, tickStyle.Render(ticks))
		}
	}
	return strings.Join(parts, " ")
}

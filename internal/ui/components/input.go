// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/attachment"
	"github.com/jeranaias/doctalk/internal/ui/styles"
	"github.com/jeranaias/doctalk/internal/util"
)

// Input placeholders.
const (
	PlaceholderText    = "Type a message"
	PlaceholderCaption = "Add a caption..."
)

// InputBar is the message composer at the bottom of the screen. It holds
// at most one pending image as a data URI.
type InputBar struct {
	input    textinput.Model
	image    string
	disabled bool
	width    int
	theme    *styles.Theme
}

// NewInputBar creates a focused input bar.
func NewInputBar(theme *styles.Theme) InputBar {
	ti := textinput.New()
	ti.Placeholder = PlaceholderText
	ti.Prompt = "❯ "
	ti.PromptStyle = theme.InputPrompt
	ti.CharLimit = 8000
	ti.Focus()

	return InputBar{input: ti, width: 80, theme: theme}
}

// SetWidth sets the bar width.
func (b *InputBar) SetWidth(width int) {
	b.width = width
	inner := width - b.theme.InputContainer.GetHorizontalFrameSize() - lipgloss.Width(b.input.Prompt) - 1
	if inner < 10 {
		inner = 10
	}
	b.input.Width = inner
}

// SetDisabled blocks typing while a reply is pending.
func (b *InputBar) SetDisabled(disabled bool) {
	b.disabled = disabled
	if disabled {
		b.input.Blur()
	} else {
		b.input.Focus()
	}
}

// Disabled reports whether the bar accepts input.
func (b *InputBar) Disabled() bool { return b.disabled }

// Value returns the typed text as-is.
func (b *InputBar) Value() string { return b.input.Value() }

// SetValue replaces the typed text.
func (b *InputBar) SetValue(s string) { b.input.SetValue(s) }

// Image returns the pending attachment, or "".
func (b *InputBar) Image() string { return b.image }

// Attach sets the pending image and switches to the caption placeholder.
func (b *InputBar) Attach(dataURI string) {
	b.image = dataURI
	b.input.Placeholder = PlaceholderCaption
}

// Detach drops the pending image.
func (b *InputBar) Detach() {
	b.image = ""
	b.input.Placeholder = PlaceholderText
}

// Placeholder returns the current placeholder text.
func (b *InputBar) Placeholder() string { return b.input.Placeholder }

// Reset clears text and attachment after a send.
func (b *InputBar) Reset() {
	b.input.Reset()
	b.Detach()
}

// Update forwards key events unless disabled.
func (b InputBar) Update(msg tea.Msg) (InputBar, tea.Cmd) {
	if b.disabled {
		return b, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

// View renders the optional attachment line and the input box.
func (b InputBar) View() string {
	style := b.theme.InputContainer
	if b.disabled {
		style = b.theme.InputDisabled
	}
	box := style.Width(b.width - style.GetHorizontalBorderSize()).Render(b.input.View())

	if b.image == "" {
		return box
	}
	label := "📎 " + attachment.Describe(b.image) + "  (/detach to remove)"
	preview := b.theme.Attachment.Render(util.TruncateWidth(label, b.width-2))
	return lipgloss.JoinVertical(lipgloss.Left, preview, box)
}

// Height is the number of rows View occupies.
func (b InputBar) Height() int {
	h := 1 + b.theme.InputContainer.GetVerticalFrameSize()
	if b.image != "" {
		h++
	}
	return h
}

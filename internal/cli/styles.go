// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/ui/styles"
)

// init picks the lipgloss profile for plain CLI output; the chat screen
// sets its own.
func init() {
	lipgloss.SetColorProfile(ColorProfile())
}

// =============================================================================
// SHARED STYLES FOR CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TealBright)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Width(10)

	// SuccessStyle is used for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Green).
			Bold(true)

	// ErrorStyle is used for error messages and failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarningStyle is used for notices that need attention
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// PromptStyle is the chat REPL prompt
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.TealBright).
			Bold(true)

	// UserStyle and AssistantStyle label speakers in history output
	UserStyle      = lipgloss.NewStyle().Foreground(styles.Green).Bold(true)
	AssistantStyle = lipgloss.NewStyle().Foreground(styles.Blue).Bold(true)
)

// RenderLabel renders a fixed-width field label.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderPresence lipgloss.Style
	HeaderTyping   lipgloss.Style
	HeaderOffline  lipgloss.Style
	HeaderHint     lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	BubbleMeta      lipgloss.Style
	TickUnread      lipgloss.Style
	TickRead        lipgloss.Style
	ImageLabel      lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputDisabled  lipgloss.Style
	Attachment     lipgloss.Style

	// ==========================================================================
	// KEY MODAL STYLES
	// ==========================================================================

	ModalBox            lipgloss.Style
	ModalTitle          lipgloss.Style
	ModalText           lipgloss.Style
	ModalNotice         lipgloss.Style
	ModalButton         lipgloss.Style
	ModalButtonDisabled lipgloss.Style
	Link                lipgloss.Style

	// ==========================================================================
	// MISC
	// ==========================================================================

	Spinner lipgloss.Style
	Notice  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewTheme creates a theme. mode is "auto", "dark" or "light"; auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Foreground(TextOnTeal).
		Background(Teal).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextOnTeal).
		Background(Teal)

	t.HeaderPresence = lipgloss.NewStyle().
		Foreground(Green).
		Background(Teal)

	t.HeaderTyping = lipgloss.NewStyle().
		Foreground(TextOnTeal).
		Background(Teal).
		Italic(true)

	t.HeaderOffline = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Teal)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Teal)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		Padding(0, 1)

	t.BubbleMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TickUnread = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TickRead = lipgloss.NewStyle().
		Foreground(Blue)

	t.ImageLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(TealBright).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(TealBright).
		Bold(true)

	t.InputDisabled = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Foreground(TextMuted).
		Padding(0, 1)

	t.Attachment = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(1)

	// Key modal
	t.ModalBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(TealBright).
		Padding(1, 3).
		Width(56)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TealBright)

	t.ModalText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ModalNotice = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ModalButton = lipgloss.NewStyle().
		Foreground(TextOnTeal).
		Background(TealBright).
		Bold(true).
		Padding(0, 2)

	t.ModalButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	t.Link = lipgloss.NewStyle().
		Foreground(Blue).
		Underline(true)

	// Misc
	t.Spinner = lipgloss.NewStyle().Foreground(TealBright)
	t.Notice = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted)
}

// GlamourStyle names the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

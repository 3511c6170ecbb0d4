// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/ui/styles"
)

// KeyPageURL is where users create a Gemini API key.
const KeyPageURL = "https://aistudio.google.com/app/apikey"

// QuotaNotice is shown when the current key ran out of quota.
const QuotaNotice = "Quota exhausted for this key. Enter a different key to continue."

// KeyModal is the API key form. It stays open until a non-blank key is
// submitted or, when a key already exists, the user dismisses it.
type KeyModal struct {
	input       textinput.Model
	open        bool
	dismissable bool
	notice      string
	theme       *styles.Theme
}

// NewKeyModal creates a closed modal.
func NewKeyModal(theme *styles.Theme) KeyModal {
	ti := textinput.New()
	ti.Placeholder = "Paste your API Key here"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = "🔒 "
	ti.CharLimit = 256
	ti.Width = 40

	return KeyModal{input: ti, theme: theme}
}

// Open shows the modal with an optional notice line. dismissable allows
// Esc to close it without entering a key.
func (k *KeyModal) Open(notice string, dismissable bool) tea.Cmd {
	k.open = true
	k.dismissable = dismissable
	k.notice = notice
	k.input.Reset()
	return k.input.Focus()
}

// Close hides the modal and clears the input.
func (k *KeyModal) Close() {
	k.open = false
	k.notice = ""
	k.input.Reset()
	k.input.Blur()
}

// IsOpen reports whether the modal is visible.
func (k *KeyModal) IsOpen() bool { return k.open }

// Dismissable reports whether Esc may close the modal.
func (k *KeyModal) Dismissable() bool { return k.dismissable }

// Notice returns the current notice line.
func (k *KeyModal) Notice() string { return k.notice }

// Value returns the trimmed key typed so far.
func (k *KeyModal) Value() string {
	return strings.TrimSpace(k.input.Value())
}

// CanSubmit reports whether "Start Chatting" is enabled.
func (k *KeyModal) CanSubmit() bool {
	return k.Value() != ""
}

// Update forwards input events to the text field.
func (k KeyModal) Update(msg tea.Msg) (KeyModal, tea.Cmd) {
	if !k.open {
		return k, nil
	}
	var cmd tea.Cmd
	k.input, cmd = k.input.Update(msg)
	return k, cmd
}

// View renders the modal centered in a width x height area.
func (k KeyModal) View(width, height int) string {
	t := k.theme

	button := t.ModalButtonDisabled.Render("Start Chatting →")
	if k.CanSubmit() {
		button = t.ModalButton.Render("Start Chatting →")
	}

	lines := []string{
		t.ModalTitle.Render("🔑 Enter Access Key"),
		"",
		t.ModalText.Render("To use Doc Talk without a backend server, enter your own Google Gemini API Key."),
		"",
	}
	if k.notice != "" {
		lines = append(lines, t.ModalNotice.Render(k.notice), "")
	}
	lines = append(lines,
		k.input.View(),
		"",
		button,
		"",
		t.Link.Render("Get a free API Key from Google AI Studio"),
		t.Help.Render(KeyPageURL),
		t.Help.Render("Your key is stored only on this machine (~/.doctalk/credential)."),
	)
	if k.dismissable {
		lines = append(lines, t.Help.Render("esc cancel"))
	}

	box := t.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

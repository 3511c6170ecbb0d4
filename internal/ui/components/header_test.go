// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/doctalk/internal/ui/styles"
)

func TestHeaderPresence(t *testing.T) {
	tests := []struct {
		name      string
		typing    bool
		connected bool
		want      string
	}{
		{"online", false, true, PresenceOnline},
		{"typing wins", true, true, PresenceTyping},
		{"typing while offline", true, false, PresenceTyping},
		{"offline", false, false, PresenceOffline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(styles.NewTheme("light"))
			h.Typing = tt.typing
			h.Connected = tt.connected
			if got := h.Presence(); got != tt.want {
				t.Errorf("Presence() = %q, want %q", got, tt.want)
			}
			if view := h.View(); !strings.Contains(view, tt.want) {
				t.Errorf("View() missing %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestHeaderView_FillsWidth(t *testing.T) {
	h := NewHeader(styles.NewTheme("light"))
	h.Width = 60
	view := h.View()

	if !strings.Contains(view, Title) {
		t.Errorf("View() missing title:\n%s", view)
	}
	if !strings.Contains(view, "ctrl+k") {
		t.Errorf("View() missing key hint:\n%s", view)
	}
	if w := lipgloss.Width(view); w != 60 {
		t.Errorf("View() width = %d, want 60", w)
	}
}

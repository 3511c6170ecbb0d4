// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/doctalk/internal/ui/styles"
)

const pngURI = "data:image/png;base64,iVBORw0KGgo="

func TestInputBar_Placeholder(t *testing.T) {
	b := NewInputBar(styles.NewTheme("light"))
	assert.Equal(t, PlaceholderText, b.Placeholder())

	b.Attach(pngURI)
	assert.Equal(t, PlaceholderCaption, b.Placeholder())
	assert.Equal(t, pngURI, b.Image())
	assert.Contains(t, b.View(), "image/png")

	b.Detach()
	assert.Equal(t, PlaceholderText, b.Placeholder())
	assert.Empty(t, b.Image())
}

func TestInputBar_DisabledIgnoresKeys(t *testing.T) {
	b := NewInputBar(styles.NewTheme("light"))
	b.SetDisabled(true)
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	assert.Empty(t, b.Value())

	b.SetDisabled(false)
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	assert.Equal(t, "hi", b.Value())
}

func TestInputBar_ResetClearsEverything(t *testing.T) {
	b := NewInputBar(styles.NewTheme("light"))
	b.SetValue("caption")
	b.Attach(pngURI)
	h := b.Height()

	b.Reset()
	assert.Empty(t, b.Value())
	assert.Empty(t, b.Image())
	assert.Equal(t, h-1, b.Height())
}

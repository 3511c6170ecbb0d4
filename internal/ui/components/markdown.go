// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"
)

// MarkdownRenderer renders message text with glamour, keeping one
// renderer per wrap width. Not safe for concurrent use; the chat model
// only touches it from View.
type MarkdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer using a glamour standard style
// ("dark" or "light").
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render returns text formatted to fit width columns. If glamour
// fails the plain text is returned.
func (r *MarkdownRenderer) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if width < 10 {
		width = 10
	}

	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			log.Debug().Err(err).Msg("markdown renderer unavailable")
			return text
		}
		r.renderers[width] = tr
	}

	out, err := tr.Render(text)
	if err != nil {
		log.Debug().Err(err).Msg("markdown render failed")
		return text
	}
	return trimPadding(out)
}

// trimPadding drops the blank margin lines glamour adds around a
// document, the styled spaces it pads every line with up to the wrap width,
// and the left margin shared by all lines.
func trimPadding(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	lines = lines[start:end]

	indent := -1
	for i, line := range lines {
		visible := strings.TrimRight(ansi.Strip(line), " ")
		lines[i] = ansi.Truncate(line, ansi.StringWidth(visible), "")
		if visible == "" {
			continue
		}
		if n := len(visible) - len(strings.TrimLeft(visible, " ")); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent > 0 {
		for i, line := range lines {
			lines[i] = ansi.TruncateLeft(line, indent, "")
		}
	}
	return strings.Join(lines, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}

// wrapPlain wraps text to width without padding short lines.
func wrapPlain(text string, width int) string {
	lines := strings.Split(ansi.Wrap(text, width, ""), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

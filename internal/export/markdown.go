// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/doctalk/internal/attachment"
	"github.com/jeranaias/doctalk/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a transcript to Markdown. Images are summarized, never
// embedded.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", escapeYAML(t.Title()))
	if t.Model != "" {
		fmt.Fprintf(&sb, "model: %s\n", t.Model)
	}
	fmt.Fprintf(&sb, "date: %s\n", t.Started().Format(time.RFC3339))
	fmt.Fprintf(&sb, "messages: %d\n", len(t.Messages))
	sb.WriteString("generator: doctalk\n")
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(t.Title()))
	fmt.Fprintf(&sb, "*Started %s*\n\n", formatTimestamp(t.Started()))

	for i, msg := range t.Messages {
		label := msg.Role.DisplayName()
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, msg.FormatTime())
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		if msg.HasImage() {
			fmt.Fprintf(&sb, "_[image: %s]_\n\n", attachment.Describe(msg.Image))
		}
		if text := strings.TrimSpace(msg.Text); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
		if msg.Role == model.RoleUser && msg.Status == model.StatusRead {
			sb.WriteString("<sub>read</sub>\n\n")
		}

		if i < len(t.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Doc Talk gives general information, not medical advice.*\n")
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break a heading.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes a front matter value when it contains special
// characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return "\"" + s + "\""
	}
	return s
}
